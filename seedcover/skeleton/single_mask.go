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
	"strings"

	"github.com/pkg/errors"
)

// ErrFrozen means a piece is added to, or freezing is repeated on,
// a mask that has already been frozen.
var ErrFrozen = errors.New("skeleton: mask already frozen")

// MaskBuilder collects the pieces of one seed window.
type MaskBuilder struct {
	skels []Skel

	windowLength int
	indels       int
	indelLength  int

	frozen bool
}

// NewMaskBuilder creates a MaskBuilder for a window of windowLength bases
// (per bit plane).
func NewMaskBuilder(windowLength, indels, indelLength int) *MaskBuilder {
	return &MaskBuilder{
		skels:        make([]Skel, 0, 4),
		windowLength: windowLength,
		indels:       indels,
		indelLength:  indelLength,
	}
}

// Add appends a piece.
func (b *MaskBuilder) Add(s Skel) error {
	if b.frozen {
		return errors.Wrapf(ErrFrozen, "adding skel %s", s)
	}
	b.skels = append(b.skels, s)
	return nil
}

// Freeze locks the piece list and returns the read-only mask.
// Pieces are expected in ascending source order.
func (b *MaskBuilder) Freeze() (*SingleMask, error) {
	if b.frozen {
		return nil, errors.Wrap(ErrFrozen, "freezing twice")
	}
	b.frozen = true

	m := &SingleMask{
		skels:        b.skels,
		windowLength: b.windowLength,
		indels:       b.indels,
		indelLength:  b.indelLength,
	}
	b.skels = nil

	// bases skipped between consecutive pieces
	m.gaps = make([]int, 0, len(m.skels))
	var covered uint64
	for i, s := range m.skels {
		covered |= s.Covered()
		if i == 0 {
			continue
		}
		m.gaps = append(m.gaps, s.FinalPosition()-m.skels[i-1].Position()-1)
	}
	m.covered = covered

	m.indelCount = 1
	if m.indels > 0 {
		var closing int
		for _, g := range m.gaps {
			closing = g
			if closing > m.indelLength {
				closing = m.indelLength
			}
			m.indelCount += m.indelLength + closing
		}
	}
	return m, nil
}

// SingleMask is a frozen seed window definition.
type SingleMask struct {
	skels []Skel
	gaps  []int

	windowLength int
	indels       int
	indelLength  int

	covered    uint64
	indelCount int
}

// Size returns the number of pieces.
func (m *SingleMask) Size() int { return len(m.skels) }

// Skel returns the i-th piece.
func (m *SingleMask) Skel(i int) Skel { return m.skels[i] }

// Gaps returns the number of bases skipped between piece i and piece i+1.
func (m *SingleMask) Gaps(i int) int { return m.gaps[i] }

// WindowLength returns the number of bases per bit plane in the seed.
func (m *SingleMask) WindowLength() int { return m.windowLength }

// Covered returns the source bits read by the mask.
func (m *SingleMask) Covered() uint64 { return m.covered }

// IndelCount returns the number of candidates MaskIndel produces.
func (m *SingleMask) IndelCount() int { return m.indelCount }

// Mask computes the exact seed hash from the two bit planes.
func (m *SingleMask) Mask(v0, v1 uint64) uint64 {
	var h0, h1 uint64
	for _, s := range m.skels {
		h0 |= s.Extract(v0)
		h1 |= s.Extract(v1)
	}
	return h1<<uint(m.windowLength) | h0
}

// MaskIndel calls fn for the exact seed hash and for every
// single-indel variant: all pieces above a gap are moved by
// +1..+indelLength bases, or by -1..-min(indelLength, gap) bases.
func (m *SingleMask) MaskIndel(v0, v1 uint64, fn func(h uint64)) {
	wl := uint(m.windowLength)

	// lower part, shared by all variants of a gap
	var l0, l1 uint64
	var u0, u1 uint64
	var s Skel
	var i, j, d, closing int

	fn(m.Mask(v0, v1))
	if m.indels == 0 {
		return
	}

	for i = 0; i < len(m.gaps); i++ {
		s = m.skels[i]
		l0 |= s.Extract(v0)
		l1 |= s.Extract(v1)

		closing = m.gaps[i]
		if closing > m.indelLength {
			closing = m.indelLength
		}
		for d = -closing; d <= m.indelLength; d++ {
			if d == 0 {
				continue
			}
			u0, u1 = l0, l1
			for j = i + 1; j < len(m.skels); j++ {
				u0 |= m.skels[j].ExtractDelta(v0, d)
				u1 |= m.skels[j].ExtractDelta(v1, d)
			}
			fn(u1<<wl | u0)
		}
	}
}

// Dump renders the mask over readLength bases, first base first.
func (m *SingleMask) Dump(readLength int) string {
	var sb strings.Builder
	for i := readLength - 1; i >= 0; i-- {
		if m.covered>>uint(i)&1 == 1 {
			sb.WriteByte('x')
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

func (m *SingleMask) String() string {
	var sb strings.Builder
	sb.WriteString("SingleMask[")
	for i, s := range m.skels {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(s.String())
	}
	sb.WriteString("]")
	return sb.String()
}
