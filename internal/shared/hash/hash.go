// Package hash computes content digests of raw sample files and rendered
// artifacts, so repeated runs can be compared byte for byte.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
)

// Algorithm represents the hashing algorithm to use
type Algorithm string

const (
	SHA256 Algorithm = "sha256"
)

// Hasher computes hex-encoded digests.
type Hasher struct {
	algorithm Algorithm
}

// NewHasher creates a new hasher with the specified algorithm
func NewHasher(algorithm Algorithm) *Hasher {
	return &Hasher{
		algorithm: algorithm,
	}
}

// DefaultHasher returns a hasher with the default algorithm
func DefaultHasher() *Hasher {
	return NewHasher(SHA256)
}

// Algorithm reports the algorithm name, used as the digest label in manifests.
func (h *Hasher) Algorithm() Algorithm {
	return h.algorithm
}

func (h *Hasher) newHash() hash.Hash {
	switch h.algorithm {
	case SHA256:
		return sha256.New()
	default:
		// Fallback to SHA256
		return sha256.New()
	}
}

// HashReader digests everything readable from r.
func (h *Hasher) HashReader(r io.Reader) (string, error) {
	d := h.newHash()
	if _, err := io.Copy(d, r); err != nil {
		return "", fmt.Errorf("failed to hash stream: %w", err)
	}
	return hex.EncodeToString(d.Sum(nil)), nil
}

// HashFile digests the file at path.
func (h *Hasher) HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	sum, err := h.HashReader(f)
	if err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return sum, nil
}

// Short returns the 8-character prefix of a digest for display.
func Short(digest string) string {
	if len(digest) < 8 {
		return digest
	}
	return digest[:8]
}
