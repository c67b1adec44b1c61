package cmpby

import (
	"hash/maphash"
	"slices"
)

// Hasher is implemented by types with a generated Hash method.
type Hasher interface {
	Hash(h *maphash.Hash)
}

// Comparer is implemented by types with a generated Compare method.
type Comparer[T any] interface {
	Compare(y T) int
}

// CompareBool orders false before true.
func CompareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

// ComparePtr compares optional values. A nil pointer sorts before any
// non-nil one; non-nil pointers compare their targets with compare.
func ComparePtr[T any](a, b *T, compare func(a, b T) int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return compare(*a, *b)
	}
}

// HashBool writes one byte for b.
func HashBool(h *maphash.Hash, b bool) {
	if b {
		_ = h.WriteByte(1)
	} else {
		_ = h.WriteByte(0)
	}
}

// HashPtr writes a presence byte followed by the target, if any.
func HashPtr[T any](h *maphash.Hash, p *T, hash func(*maphash.Hash, T)) {
	if p == nil {
		_ = h.WriteByte(0)
		return
	}

	_ = h.WriteByte(1)
	hash(h, *p)
}

// HashSlice writes the length of s followed by each element.
func HashSlice[T any](h *maphash.Hash, s []T, hash func(*maphash.Hash, T)) {
	maphash.WriteComparable(h, len(s))

	for _, v := range s {
		hash(h, v)
	}
}

// Sum64 hashes v with a fresh maphash.Hash using seed.
func Sum64(seed maphash.Seed, v Hasher) uint64 {
	var h maphash.Hash

	h.SetSeed(seed)
	v.Hash(&h)

	return h.Sum64()
}

// Sort orders s in place using the generated Compare method.
func Sort[T Comparer[T]](s []T) {
	slices.SortFunc(s, func(a, b T) int { return a.Compare(b) })
}
