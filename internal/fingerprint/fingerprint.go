// Package fingerprint computes the content addresses used as document keys.
//
// A fingerprint is the MD5 digest of the content's UTF-8 bytes rendered as 32
// uppercase hexadecimal characters. Clients that compute fingerprints locally
// must use the same encoding to hit existing documents.
package fingerprint

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// Size is the length of a fingerprint string.
const Size = md5.Size * 2

// Of returns the fingerprint of content.
func Of(content string) string {
	return OfBytes([]byte(content))
}

// OfBytes returns the fingerprint of raw UTF-8 bytes.
func OfBytes(b []byte) string {
	sum := md5.Sum(b)
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// Valid reports whether fp has the shape of a fingerprint.
// It does not tell whether any document is stored under it.
func Valid(fp string) bool {
	if len(fp) != Size {
		return false
	}
	for i := 0; i < len(fp); i++ {
		c := fp[i]
		if (c < '0' || c > '9') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}

// Matches reports whether fp is the fingerprint of content.
func Matches(fp, content string) bool {
	return fp == Of(content)
}
