package project

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

// Sum hashes raw bytes.
func Sum(data []byte) Digest {
	return sha256.Sum256(data)
}

// Combine строит составной хеш: H( base || part1 || part2 ... ).
// Порядок частей должен быть детерминированным.
func Combine(base Digest, parts ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(base[:])
	for _, d := range parts {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

func (d Digest) IsZero() bool {
	return d == Digest{}
}

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}
