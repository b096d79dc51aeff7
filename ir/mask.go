package ir

import (
	"math/bits"

	"golang.org/x/exp/constraints"
)

// HasBit reports whether bit is set in mask.
func HasBit[T constraints.Unsigned](mask T, bit int) bool {
	return mask&(T(1)<<bit) != 0
}

// SetBit returns mask with bit set.
func SetBit[T constraints.Unsigned](mask T, bit int) T {
	return mask | T(1)<<bit
}

// BitIndices returns the indices of the set bits in ascending order.
func BitIndices[T constraints.Unsigned](mask T) []int {
	var out []int
	for i := 0; mask != 0; i++ {
		if mask&1 != 0 {
			out = append(out, i)
		}
		mask >>= 1
	}
	return out
}

// ComponentMask is a 128-bit mask indexed by location*4+component.
type ComponentMask struct {
	Lo, Hi uint64
}

// AllComponents has every component of every user location set.
var AllComponents = ComponentMask{Lo: ^uint64(0), Hi: ^uint64(0)}

// Set returns m with bit i set.
func (m ComponentMask) Set(i int) ComponentMask {
	if i < 64 {
		m.Lo |= 1 << i
	} else {
		m.Hi |= 1 << (i - 64)
	}
	return m
}

// SetComponent returns m with the bit for (location, component) set.
func (m ComponentMask) SetComponent(location, component int) ComponentMask {
	return m.Set(location*4 + component)
}

// Has reports whether bit i is set.
func (m ComponentMask) Has(i int) bool {
	if i < 64 {
		return m.Lo&(1<<i) != 0
	}
	return m.Hi&(1<<(i-64)) != 0
}

// HasComponent reports whether (location, component) is set.
func (m ComponentMask) HasComponent(location, component int) bool {
	return m.Has(location*4 + component)
}

// Or returns the union of m and o.
func (m ComponentMask) Or(o ComponentMask) ComponentMask {
	return ComponentMask{Lo: m.Lo | o.Lo, Hi: m.Hi | o.Hi}
}

// IsZero reports whether no bit is set.
func (m ComponentMask) IsZero() bool {
	return m.Lo == 0 && m.Hi == 0
}

// Count returns the number of set bits.
func (m ComponentMask) Count() int {
	return bits.OnesCount64(m.Lo) + bits.OnesCount64(m.Hi)
}

// LocationMask folds the mask down to one bit per location.
func (m ComponentMask) LocationMask() uint32 {
	var out uint32
	for loc := 0; loc < UserAttributesCount; loc++ {
		var nibble uint64
		if loc < 16 {
			nibble = m.Lo >> (loc * 4)
		} else {
			nibble = m.Hi >> ((loc - 16) * 4)
		}
		if nibble&0xf != 0 {
			out |= 1 << loc
		}
	}
	return out
}
