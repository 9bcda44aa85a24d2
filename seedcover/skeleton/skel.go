// Copyright © 2023-2024 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package skeleton

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidSkel means the parameters of a Skel are out of range.
var ErrInvalidSkel = errors.New("skeleton: invalid skel")

// Skel copies a contiguous range of bits from a packed word to
// a destination range of a seed hash.
//
// Bits are bases of one bit plane, the most recent base being bit 0.
// The source range is [FinalPosition(), Position()], the destination
// range is [Rename()-Length()+1, Rename()].
type Skel struct {
	position int // highest source bit
	length   int
	rename   int // highest destination bit

	final int    // lowest source bit
	shift int    // lowest destination bit
	mask  uint64 // length bits
}

// NewSkel creates a Skel.
func NewSkel(position, length, rename int) (Skel, error) {
	if position < 0 || position > 63 {
		return Skel{}, errors.Wrapf(ErrInvalidSkel, "position out of range [0, 63]: %d", position)
	}
	if length < 1 {
		return Skel{}, errors.Wrapf(ErrInvalidSkel, "length should be positive: %d", length)
	}
	if position-length+1 < 0 {
		return Skel{}, errors.Wrapf(ErrInvalidSkel, "range exceeds bit 0: position %d, length %d", position, length)
	}
	if rename < length-1 || rename > 63 {
		return Skel{}, errors.Wrapf(ErrInvalidSkel, "destination out of range [%d, 63]: %d", length-1, rename)
	}

	var mask uint64
	if length == 64 {
		mask = ^uint64(0)
	} else {
		mask = 1<<uint(length) - 1
	}
	return Skel{
		position: position,
		length:   length,
		rename:   rename,
		final:    position - length + 1,
		shift:    rename - length + 1,
		mask:     mask,
	}, nil
}

// MustSkel is like NewSkel but panics on invalid parameters.
func MustSkel(position, length, rename int) Skel {
	s, err := NewSkel(position, length, rename)
	if err != nil {
		panic(err)
	}
	return s
}

// Position returns the highest source bit.
func (s Skel) Position() int { return s.position }

// Length returns the number of bits (bases) copied.
func (s Skel) Length() int { return s.length }

// FinalPosition returns the lowest source bit.
func (s Skel) FinalPosition() int { return s.final }

// Rename returns the highest destination bit.
func (s Skel) Rename() int { return s.rename }

// Shift returns the lowest destination bit.
func (s Skel) Shift() int { return s.shift }

// Extract copies the source range of x to the destination range.
func (s Skel) Extract(x uint64) uint64 {
	return (x >> uint(s.final) & s.mask) << uint(s.shift)
}

// ExtractDelta is like Extract, with the source range moved up by delta bases
// (down for a negative delta). Bits beyond the word are read as zeros.
func (s Skel) ExtractDelta(x uint64, delta int) uint64 {
	from := s.final + delta
	if from < 0 {
		return (x << uint(-from) & s.mask) << uint(s.shift)
	}
	return (x >> uint(from) & s.mask) << uint(s.shift)
}

// Covered returns the source bits of the skel.
func (s Skel) Covered() uint64 {
	return s.mask << uint(s.final)
}

func (s Skel) String() string {
	return fmt.Sprintf("[%d..%d]->[%d..%d]", s.position, s.final, s.rename, s.shift)
}
