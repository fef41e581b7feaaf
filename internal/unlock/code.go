// Package unlock derives device unlock codes from a MAC address and a serial
// number.
//
// The derivation is deterministic: the same pair always yields the same
// code. Codes are not unique and make no attempt to be.
package unlock

import (
	"crypto/sha256"
	"strings"
)

const (
	// CodeLength is the number of decimal digits in a derived code.
	CodeLength = 10
	// Salt is appended to the identifiers before hashing.
	Salt = "XIAOMI"
)

// Derive computes the unlock code for a MAC address and serial number.
//
// The digest is SHA-256 over mac, serial and [Salt] concatenated. Each of the
// first [CodeLength] digest bytes contributes one digit, byte % 10, in byte
// order. Colons are stripped from mac and both values are trimmed first;
// case is left untouched, so callers normalize with [NormalizeMAC] and
// [NormalizeSerial] when they want case-insensitive input.
func Derive(mac, serial string) string {
	mac = strings.TrimSpace(strings.ReplaceAll(mac, ":", ""))
	serial = strings.TrimSpace(serial)

	h := sha256.New()
	h.Write([]byte(mac))
	h.Write([]byte(serial))
	h.Write([]byte(Salt))
	sum := h.Sum(nil)

	var b strings.Builder
	b.Grow(CodeLength)
	for _, v := range sum[:CodeLength] {
		b.WriteByte('0' + v%10)
	}
	return b.String()
}

// NormalizeMAC strips colon delimiters and surrounding whitespace and
// uppercases the result: "aa:bb:cc:dd:ee:ff " becomes "AABBCCDDEEFF".
func NormalizeMAC(mac string) string {
	return strings.ToUpper(strings.TrimSpace(strings.ReplaceAll(mac, ":", "")))
}

// NormalizeSerial trims and uppercases a serial number.
func NormalizeSerial(serial string) string {
	return strings.ToUpper(strings.TrimSpace(serial))
}

// Valid reports whether code has the shape Derive produces.
func Valid(code string) bool {
	if len(code) != CodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}
