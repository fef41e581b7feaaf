package ui

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/gowebpki/jcs"
)

// Canonical returns the RFC 8785 canonical JSON encoding of the tree.
func Canonical(el Element) ([]byte, error) {
	raw, err := json.Marshal(el)
	if err != nil {
		return nil, fmt.Errorf("failed to encode element tree: %w", err)
	}
	out, err := jcs.Transform(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize element tree: %w", err)
	}
	return out, nil
}

// Fingerprint returns the hex SHA-256 of the canonical encoding.
// Structurally identical trees always share a fingerprint.
func Fingerprint(el Element) string {
	data, err := Canonical(el)
	if err != nil {
		// Element only holds strings, ints, bools and finite floats, all of
		// which encode; reaching this means the type itself changed.
		panic(err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Walk visits el and its descendants depth-first in rendering order.
// Returning false from fn stops the walk.
func Walk(el Element, fn func(el Element, depth int) bool) {
	walk(el, 0, fn)
}

func walk(el Element, depth int, fn func(Element, int) bool) bool {
	if !fn(el, depth) {
		return false
	}
	for _, c := range el.Children {
		if !walk(c, depth+1, fn) {
			return false
		}
	}
	return true
}

// FindByEvent returns the first element that binds any interaction to event.
func FindByEvent(root Element, event string) (Element, bool) {
	var found Element
	var ok bool
	Walk(root, func(el Element, _ int) bool {
		for _, name := range el.Bindings {
			if name == event {
				found, ok = el, true
				return false
			}
		}
		return true
	})
	return found, ok
}
