package record

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
)

// DomainResult separates result-set digests from any other hash use.
const DomainResult = "idxstore/result/v1"

// Digest returns a content hash of a result set that does not depend on the
// order of recs. Format: SHA256(domain + 0x00 + canonical JSON sorted by ID).
func Digest(recs []Record) (string, error) {
	sorted := slices.Clone(recs)
	SortByID(sorted)

	canonical, err := MarshalCanonical(sorted)
	if err != nil {
		return "", fmt.Errorf("digest: %w", err)
	}

	h := sha256.New()
	h.Write([]byte(DomainResult))
	h.Write([]byte{0x00})
	h.Write(canonical)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// MustDigest is like Digest but panics on error.
// Records always marshal, so this only panics on programmer error.
func MustDigest(recs []Record) string {
	d, err := Digest(recs)
	if err != nil {
		panic(err)
	}
	return d
}
