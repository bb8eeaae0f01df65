package ecs

import (
	"encoding/binary"
	"math/bits"

	"github.com/cespare/xxhash/v2"
)

// Bitmask is a capability set of component types, one bit per ComponentType.
type Bitmask []uint64

// MaskOf builds a bitmask with the given types set. Duplicates collapse.
func MaskOf(types ...ComponentType) Bitmask {
	var b Bitmask
	for _, t := range types {
		b = b.Set(t)
	}
	return b
}

// Set returns the mask with bit t set, growing it as needed.
func (b Bitmask) Set(t ComponentType) Bitmask {
	word, pos := int(t)/64, uint(t)%64
	for len(b) <= word {
		b = append(b, 0)
	}
	b[word] |= 1 << pos
	return b
}

// Has reports whether bit t is set.
func (b Bitmask) Has(t ComponentType) bool {
	word, pos := int(t)/64, uint(t)%64
	if word >= len(b) {
		return false
	}
	return b[word]&(1<<pos) != 0
}

// Contains reports whether b is a superset of required.
func (b Bitmask) Contains(required Bitmask) bool {
	for i, w := range required {
		if w == 0 {
			continue
		}
		if i >= len(b) || b[i]&w != w {
			return false
		}
	}
	return true
}

// Count returns the number of set bits.
func (b Bitmask) Count() int {
	n := 0
	for _, w := range b {
		n += bits.OnesCount64(w)
	}
	return n
}

// IsEmpty reports whether no bit is set.
func (b Bitmask) IsEmpty() bool {
	for _, w := range b {
		if w != 0 {
			return false
		}
	}
	return true
}

// Types returns the set bits in ascending order.
func (b Bitmask) Types() []ComponentType {
	out := make([]ComponentType, 0, b.Count())
	for wordIdx, word := range b {
		for word != 0 {
			pos := bits.TrailingZeros64(word)
			out = append(out, ComponentType(wordIdx*64+pos))
			word &^= 1 << pos
		}
	}
	return out
}

// Hash returns a 64-bit hash of the mask. Trailing zero words are ignored so
// equal sets hash equally regardless of how far the slice was grown.
func (b Bitmask) Hash() uint64 {
	n := len(b)
	for n > 0 && b[n-1] == 0 {
		n--
	}
	d := xxhash.New()
	var buf [8]byte
	for _, w := range b[:n] {
		binary.LittleEndian.PutUint64(buf[:], w)
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

// Equal reports whether both masks hold the same set.
func (b Bitmask) Equal(other Bitmask) bool {
	return b.Contains(other) && other.Contains(b)
}
