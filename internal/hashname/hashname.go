// Package hashname derives content-addressed file names: a streamed digest
// of the full file content encoded with the base58 alphabet, which has no
// padding and omits look-alike characters (0, O, I, l).
package hashname

import (
	"crypto/sha256"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/zeebo/xxh3"
)

const (
	AlgorithmSHA256 = "sha256"
	AlgorithmXXH3   = "xxh3"

	DefaultAlgorithm = AlgorithmSHA256
)

// Namer maps content to a deterministic, filesystem-safe token.
type Namer struct {
	algorithm string
	newHash   func() hash.Hash
}

// New returns a Namer for the named algorithm. An empty name selects sha256.
func New(algorithm string) (*Namer, error) {
	algorithm = strings.ToLower(strings.TrimSpace(algorithm))
	if algorithm == "" {
		algorithm = DefaultAlgorithm
	}
	n := &Namer{algorithm: algorithm}
	switch algorithm {
	case AlgorithmSHA256:
		n.newHash = sha256.New
	case AlgorithmXXH3:
		n.newHash = func() hash.Hash { return &xxh3Sum128{h: xxh3.New()} }
	default:
		return nil, fmt.Errorf("unsupported hash algorithm %q (want %s or %s)", algorithm, AlgorithmSHA256, AlgorithmXXH3)
	}
	return n, nil
}

// Algorithm returns the configured digest name.
func (n *Namer) Algorithm() string {
	return n.algorithm
}

// Name streams r through the digest and returns the encoded fingerprint.
func (n *Namer) Name(r io.Reader) (string, error) {
	h := n.newHash()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("hash content: %w", err)
	}
	return base58.Encode(h.Sum(nil)), nil
}

// NameFile opens path and names its content.
func (n *Namer) NameFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return n.Name(f)
}

// xxh3Sum128 exposes the 128-bit xxh3 digest through hash.Hash.
type xxh3Sum128 struct {
	h *xxh3.Hasher
}

func (x *xxh3Sum128) Write(p []byte) (int, error) { return x.h.Write(p) }

func (x *xxh3Sum128) Sum(b []byte) []byte {
	sum := x.h.Sum128().Bytes()
	return append(b, sum[:]...)
}

func (x *xxh3Sum128) Reset() { x.h.Reset() }

func (x *xxh3Sum128) Size() int { return 16 }

func (x *xxh3Sum128) BlockSize() int { return 64 }
