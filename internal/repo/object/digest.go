package object

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/multiformats/go-multihash"
)

// Kinds separate the digest domains of stored records.
const (
	KindBlob   = "blob"
	KindCommit = "commit"
)

func tag(kind string) string { return kind + "\x00" }

func encode(mh multihash.Multihash) (string, error) {
	dm, err := multihash.Decode(mh)
	if err != nil {
		return "", fmt.Errorf("failed to decode multihash: %w", err)
	}
	return hex.EncodeToString(dm.Digest), nil
}

// Digest returns the hex digest of data in the given kind's domain.
func Digest(code uint64, kind string, data []byte) (string, error) {
	var buf bytes.Buffer
	buf.Grow(len(kind) + 1 + len(data))
	buf.WriteString(tag(kind))
	buf.Write(data)

	mh, err := multihash.Sum(buf.Bytes(), code, -1)
	if err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", kind, err)
	}
	return encode(mh)
}

// DigestReader is Digest over a stream.
func DigestReader(code uint64, kind string, r io.Reader) (string, error) {
	mh, err := multihash.SumStream(io.MultiReader(strings.NewReader(tag(kind)), r), code, -1)
	if err != nil {
		return "", fmt.Errorf("failed to hash %s stream: %w", kind, err)
	}
	return encode(mh)
}

// DigestLen returns the hex length of IDs produced by code.
func DigestLen(code uint64) (int, error) {
	mh, err := multihash.Sum(nil, code, -1)
	if err != nil {
		return 0, err
	}
	dm, err := multihash.Decode(mh)
	if err != nil {
		return 0, err
	}
	return 2 * dm.Length, nil
}

// IsID reports whether s looks like an ID of length n.
func IsID(s string, n int) bool {
	if len(s) != n {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil && strings.ToLower(s) == s
}
