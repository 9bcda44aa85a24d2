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

package extract

import (
	"testing"

	"github.com/RealTimeGenomics/rtg-core-sub041/seedcover/skeleton"
)

func TestEmit(t *testing.T) {
	sk := skeleton.New(6, 3, 3, 1, 2)
	masks, err := sk.Masks()
	if err != nil {
		t.Error(err)
		return
	}

	var v0, v1 uint64 = 0b101101, 0b011011
	var total int
	for _, m := range masks {
		var hashes []uint64
		e := New(m, func(h uint64) { hashes = append(hashes, h) })

		e.Emit(v0, v1)
		if len(hashes) != 1 {
			t.Errorf("%s: expected one hash, returned: %d", m, len(hashes))
			return
		}
		if hashes[0] != m.Mask(v0, v1) {
			t.Errorf("%s: expected: %b, returned: %b", m, m.Mask(v0, v1), hashes[0])
		}

		hashes = hashes[:0]
		e.EmitIndelVariants(v0, v1)
		if len(hashes) != m.IndelCount() {
			t.Errorf("%s: expected %d candidates, returned: %d", m, m.IndelCount(), len(hashes))
		}
		if hashes[0] != m.Mask(v0, v1) {
			t.Errorf("%s: the first candidate should be the exact hash", m)
		}
		total += len(hashes)
	}
	if total != 88 {
		t.Errorf("expected 88 candidates, returned: %d", total)
	}
}

func TestIndelVariantMatchesShiftedRead(t *testing.T) {
	// one piece above a gap: moving it by d equals reading the planes with
	// that part of the read shifted by d bases.
	b := skeleton.NewMaskBuilder(4, 1, 1)
	if err := b.Add(skeleton.MustSkel(1, 2, 1)); err != nil {
		t.Error(err)
		return
	}
	if err := b.Add(skeleton.MustSkel(5, 2, 3)); err != nil {
		t.Error(err)
		return
	}
	m, err := b.Freeze()
	if err != nil {
		t.Error(err)
		return
	}

	var v0, v1 uint64 = 0b1101011, 0b0110110
	var hashes []uint64
	e := New(m, func(h uint64) { hashes = append(hashes, h) })
	e.EmitIndelVariants(v0, v1)
	if len(hashes) != 3 {
		t.Errorf("expected 3 candidates, returned: %d", len(hashes))
		return
	}

	// an extra base inserted below the upper piece moves it up by one
	low := uint64(0b11)
	ins0 := v0&low | (v0&^low)<<1
	ins1 := v1&low | (v1&^low)<<1
	var found bool
	for _, h := range hashes[1:] {
		if h == m.Mask(ins0, ins1) {
			found = true
		}
	}
	if !found {
		t.Errorf("no candidate matches the read with an insertion")
	}
}

func TestTransform(t *testing.T) {
	sk := skeleton.New(4, 4, 0, 0, 1)
	masks, _ := sk.Masks()
	var got uint64
	e := New(masks[0], func(h uint64) { got = h })
	e.SetTransform(func(h uint64) uint64 { return h ^ 1 })
	e.Emit(0b1010, 0b1100)
	if got != 0b11001011 {
		t.Errorf("expected: %08b, returned: %08b", 0b11001011, got)
	}
	e.SetTransform(nil)
	e.Emit(0b1010, 0b1100)
	if got != 0b11001010 {
		t.Errorf("expected: %08b, returned: %08b", 0b11001010, got)
	}
}
