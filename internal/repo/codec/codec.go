// Package codec frames repository records (commits, state) in a versioned
// JSON envelope with an xxh3 checksum over the payload.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zeebo/xxh3"
)

var (
	ErrChecksum           = errors.New("record checksum mismatch")
	ErrUnsupportedVersion = errors.New("unsupported record version")
	ErrKindMismatch       = errors.New("unexpected record kind")
)

// Envelope is the on-disk frame of every structured record.
type Envelope struct {
	Kind     string          `json:"kind"`
	Version  int             `json:"version"`
	Checksum string          `json:"checksum"`
	Payload  json.RawMessage `json:"payload"`
}

// Checksum returns the hex xxh3-128 sum of data.
func Checksum(data []byte) string {
	return fmt.Sprintf("%x", xxh3.Hash128(data).Bytes())
}

// Encode wraps v in an envelope of the given kind and version.
func Encode(kind string, version int, v any) ([]byte, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s payload: %w", kind, err)
	}
	data, err := json.MarshalIndent(Envelope{
		Kind:     kind,
		Version:  version,
		Checksum: Checksum(payload),
		Payload:  payload,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s envelope: %w", kind, err)
	}
	return data, nil
}

// Decode verifies the envelope and unmarshals its payload into v.
// Versions newer than maxVersion are rejected.
func Decode(data []byte, kind string, maxVersion int, v any) (int, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return 0, fmt.Errorf("failed to parse %s envelope: %w", kind, err)
	}
	if env.Kind != kind {
		return 0, fmt.Errorf("%w: want %q, got %q", ErrKindMismatch, kind, env.Kind)
	}
	if env.Version < 1 || env.Version > maxVersion {
		return 0, fmt.Errorf("%w: %s v%d", ErrUnsupportedVersion, kind, env.Version)
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, env.Payload); err != nil {
		return 0, fmt.Errorf("failed to parse %s payload: %w", kind, err)
	}
	if sum := Checksum(compact.Bytes()); sum != env.Checksum {
		return 0, fmt.Errorf("%w: %s has %s, computed %s", ErrChecksum, kind, env.Checksum, sum)
	}
	if err := json.Unmarshal(compact.Bytes(), v); err != nil {
		return 0, fmt.Errorf("failed to decode %s payload: %w", kind, err)
	}
	return env.Version, nil
}
