// Package plugin is the guest side of the host boundary: it turns host hook
// calls into session state transitions and element trees.
//
// # Main Types
//
//   - [Plugin]: the host hooks, each acknowledging exactly once
//   - [Processor]: the UI event dispatcher and renderer entry point
//
// # Flow
//
// A UI event goes through [Processor.HandleUIEvent], which classifies it into
// one of a closed set of actions, applies the action to the session state and
// then re-renders into the last target the host asked for. A render request
// goes through [Processor.Render], which records the target, snapshots the
// state, builds [MainView] and delivers it to the [host.Surface].
//
// Unknown events, and calculate requests whose preconditions fail, are silent
// no-ops. Nothing in this package returns an error to the host.
package plugin
