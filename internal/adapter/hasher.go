package adapter

import (
	"context"
	"crypto/md5" //nolint:gosec // content addressing, not security
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// DefaultChunkSize bounds how much of a file is held in memory while hashing.
const DefaultChunkSize = 64 * 1024

// Supported digest names.
const (
	AlgorithmMD5    = "md5"
	AlgorithmSHA256 = "sha256"
	AlgorithmXXHash = "xxhash"

	DefaultAlgorithm = AlgorithmMD5
)

// ErrUnknownAlgorithm is returned by NewHasher for unsupported digest names.
var ErrUnknownAlgorithm = errors.New("unknown hash algorithm")

var digests = map[string]func() hash.Hash{
	AlgorithmMD5:    md5.New,
	AlgorithmSHA256: sha256.New,
	AlgorithmXXHash: func() hash.Hash { return xxhash.New() },
}

// Hasher computes content fingerprints.
type Hasher interface {
	// Algorithm returns the digest name.
	Algorithm() string
	// Hash streams r and returns the hex fingerprint and the number of bytes read.
	Hash(ctx context.Context, r io.Reader) (fingerprint string, size int64, err error)
}

// StreamHasher hashes readers chunk by chunk with a fixed-size buffer.
type StreamHasher struct {
	name      string
	newDigest func() hash.Hash
	chunkSize int
}

// Algorithms lists the supported digest names in sorted order.
func Algorithms() []string {
	names := make([]string, 0, len(digests))
	for name := range digests {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// NewHasher returns a StreamHasher for the named digest.
func NewHasher(algorithm string) (*StreamHasher, error) {
	name := strings.ToLower(strings.TrimSpace(algorithm))
	if name == "" {
		name = DefaultAlgorithm
	}

	newDigest, ok := digests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnknownAlgorithm, algorithm, strings.Join(Algorithms(), ", "))
	}

	return &StreamHasher{
		name:      name,
		newDigest: newDigest,
		chunkSize: DefaultChunkSize,
	}, nil
}

// Algorithm implements Hasher.
func (h *StreamHasher) Algorithm() string {
	return h.name
}

// Hash implements Hasher.
func (h *StreamHasher) Hash(ctx context.Context, r io.Reader) (string, int64, error) {
	digest := h.newDigest()
	buf := make([]byte, h.chunkSize)

	n, err := io.CopyBuffer(digest, &contextReader{ctx: ctx, r: r}, buf)
	if err != nil {
		return "", n, err
	}

	return hex.EncodeToString(digest.Sum(nil)), n, nil
}

// contextReader stops a long copy once ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}

	return c.r.Read(p)
}
