// Package links holds the pure share-link domain logic: the fingerprint
// id derivation, the canonical field serialization it hashes, and the
// error taxonomy shared by every handler.
package links

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base32"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// IDLength is the length of a deterministic share-link id.
const IDLength = 8

// ShareLinkFields is the registerable field set for one share link. The
// integer fields are pointers so that "absent" and "zero" serialize
// differently — presence of an optional field changes the fingerprint.
type ShareLinkFields struct {
	URL         string `json:"url"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	ImageHeight *int   `json:"imageHeight,omitempty"`
	ImageWidth  *int   `json:"imageWidth,omitempty"`
}

// Canonicalize returns the stable serialization of f used as the
// fingerprint seed. Key order is fixed by the struct declaration, values
// keep their JSON types, and absent optionals are omitted entirely, so two
// field sets canonicalize equally iff they are equal.
func Canonicalize(f ShareLinkFields) string {
	b, err := json.Marshal(f)
	if err != nil {
		// ShareLinkFields contains only marshalable types.
		panic(fmt.Sprintf("canonicalize share link fields: %v", err))
	}
	return string(b)
}

// ComputeID derives the deterministic share-link id for a seed: the
// SHA-256 digest of the seed, base-32 encoded (A-Z, 2-7), truncated to
// IDLength characters. Same seed, same id, on every call in every process.
func ComputeID(seed string) string {
	sum := sha256.Sum256([]byte(seed))
	return base32.StdEncoding.EncodeToString(sum[:])[:IDLength]
}

// NewRandomID returns a non-reproducible id in the same alphabet as
// ComputeID, from 6 bytes of cryptographic entropy, for uses that want
// stand-alone identifiers such as API key material. Uniqueness is not
// checked here; the deterministic path never draws randomly.
func NewRandomID() (string, error) {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read random id bytes: %w", err)
	}
	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(b), nil
}

var protocolRe = regexp.MustCompile(`^https?://?`)

// StripURL normalizes a destination URL into the secondary lookup key:
// the scheme prefix and every slash are removed, so lookups match across
// protocol and trailing-slash variants of the same destination.
func StripURL(url string) string {
	return strings.ReplaceAll(protocolRe.ReplaceAllString(url, ""), "/", "")
}
