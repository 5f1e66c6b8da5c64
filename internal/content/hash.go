package content

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/inful/mdfp"
)

// DefaultHashLength is the number of hex characters kept for short hashes.
const DefaultHashLength = 8

// Fingerprint derives an item's content hash from its serialized frontmatter
// and Markdown body. The mdfp fingerprint is re-hashed so the short form does
// not depend on mdfp's output encoding.
func Fingerprint(frontmatter, body string, length int) string {
	fp := mdfp.CalculateFingerprintFromParts(frontmatter, body)
	return ShortHash([]byte(fp), length)
}

// ShortHash returns the first length hex characters of sha256(data).
// length <= 0 selects DefaultHashLength; values above 64 return the full digest.
func ShortHash(data []byte, length int) string {
	sum := sha256.Sum256(data)
	full := hex.EncodeToString(sum[:])
	if length <= 0 {
		length = DefaultHashLength
	}
	if length > len(full) {
		length = len(full)
	}
	return full[:length]
}
