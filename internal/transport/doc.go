// Package transport binds a plugin to a host over a pair of byte streams
// using JSON lines: one JSON object per line in each direction.
//
// # Inbound frames
//
//	{"id":1,"hook":"on_load"}
//	{"id":2,"hook":"on_ui_render","target":"root"}
//	{"id":3,"hook":"on_ui_event","event_id":"mac","interaction":"input","payload":"AA:BB"}
//	{"id":4,"hook":"on_event","event_type":"timer","payload":""}
//	{"id":5,"hook":"on_card_render","card_id":"c1"}
//
// # Outbound frames
//
//	{"type":"render","target":"root","tree":{...}}
//	{"type":"ack","id":3,"result":""}
//	{"type":"error","id":9,"error":"transport error [frame=9, hook=on_bogus]: ..."}
//
// Every inbound frame gets exactly one ack or error frame. Render frames
// caused by a hook are written before that hook's ack. Error frames are a
// transport concern only: the plugin core never fails a hook.
package transport
