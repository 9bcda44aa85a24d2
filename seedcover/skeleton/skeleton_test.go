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
	"math/bits"
	"math/rand"
	"strings"
	"testing"

	"github.com/RealTimeGenomics/rtg-core-sub041/seedcover/combin"
	"github.com/pkg/errors"
	gcombin "gonum.org/v1/gonum/stat/combin"
)

func TestSkelExtract(t *testing.T) {
	s := MustSkel(7, 4, 6)
	if v := s.Extract(0xAF); v != 0x50 {
		t.Errorf("expected: %#x, returned: %#x", 0x50, v)
	}
	if v := s.ExtractDelta(0xAF, 1); v != 0x28 {
		t.Errorf("expected: %#x, returned: %#x", 0x28, v)
	}
	if v := s.ExtractDelta(0xAF, 0); v != 0x50 {
		t.Errorf("expected: %#x, returned: %#x", 0x50, v)
	}
	if v := s.ExtractDelta(0xAF, -2); v != 0x58 {
		t.Errorf("expected: %#x, returned: %#x", 0x58, v)
	}
	if v := MustSkel(0, 1, 0).Extract(^uint64(0)); v != 1 {
		t.Errorf("expected: 1, returned: %#x", v)
	}
	if v := MustSkel(63, 1, 63).Extract(^uint64(0)); v != 1<<63 {
		t.Errorf("expected: %#x, returned: %#x", uint64(1<<63), v)
	}
	if v := MustSkel(63, 64, 63).Extract(0x1234); v != 0x1234 {
		t.Errorf("expected: %#x, returned: %#x", 0x1234, v)
	}
}

func TestSkelInvalid(t *testing.T) {
	tests := [][3]int{
		{-1, 1, 0},
		{64, 1, 0},
		{3, 0, 3},
		{2, 4, 3},
		{3, 4, 2},
		{3, 4, 64},
	}
	for _, test := range tests {
		_, err := NewSkel(test[0], test[1], test[2])
		if errors.Cause(err) != ErrInvalidSkel {
			t.Errorf("Skel(%d,%d,%d): expected ErrInvalidSkel, returned: %v", test[0], test[1], test[2], err)
		}
	}
}

func TestMaskBuilderFrozen(t *testing.T) {
	b := NewMaskBuilder(4, 0, 1)
	if err := b.Add(MustSkel(0, 1, 0)); err != nil {
		t.Error(err)
		return
	}
	if err := b.Add(MustSkel(3, 2, 2)); err != nil {
		t.Error(err)
		return
	}
	m, err := b.Freeze()
	if err != nil {
		t.Error(err)
		return
	}
	if m.Size() != 2 || m.Gaps(0) != 1 {
		t.Errorf("unexpected pieces: %d, gap: %d", m.Size(), m.Gaps(0))
	}

	err = b.Add(MustSkel(5, 1, 3))
	if errors.Cause(err) != ErrFrozen {
		t.Errorf("expected ErrFrozen, returned: %v", err)
	}
	if !strings.Contains(err.Error(), "frozen") {
		t.Errorf("unexpected message: %s", err)
	}
	if _, err = b.Freeze(); errors.Cause(err) != ErrFrozen {
		t.Errorf("expected ErrFrozen, returned: %v", err)
	}
}

func TestIndelCounts(t *testing.T) {
	tests := [][6]int{
		// read, window, substitutions, indels, indel length, candidates
		{5, 3, 2, 1, 1, 26},
		{5, 3, 2, 0, 1, 10},
		{1, 1, 0, 0, 1, 1},
		{6, 3, 3, 0, 1, 20},
		{6, 3, 3, 1, 1, 60},
		{6, 3, 3, 1, 2, 88},
	}
	for _, test := range tests {
		sk := New(test[0], test[1], test[2], test[3], test[4])
		if !sk.Valid() {
			t.Errorf("%s: should be valid", sk)
			continue
		}
		masks, err := sk.Masks()
		if err != nil {
			t.Error(err)
			return
		}
		var total, emitted int
		for _, m := range masks {
			total += m.IndelCount()
			m.MaskIndel(0x2D, 0x1B, func(h uint64) { emitted++ })
		}
		if total != test[5] {
			t.Errorf("%v: expected: %d, returned: %d", test[:5], test[5], total)
		}
		if emitted != total {
			t.Errorf("%v: %d candidates emitted, %d counted", test[:5], emitted, total)
		}
		if n := sk.IndelCount(); n != int64(total) {
			t.Errorf("%v: expected: %d, returned: %d", test[:5], total, n)
		}
	}
}

func TestSkeletonFields(t *testing.T) {
	sk := New(5, 3, 2, 1, 1)
	if sk.ChunkLength() != 1 || sk.NumberChunks() != 5 || sk.WindowActual() != 3 ||
		sk.ReadActual() != 5 || sk.NumberMasks() != 10 || sk.WindowBits() != 6 {
		t.Errorf("unexpected plan: %s", sk)
	}

	sk = New(36, 12, 2, 0, 1)
	if !sk.Valid() {
		t.Errorf("%s: should be valid", sk)
		return
	}
	if sk.WindowActual() != 12 || sk.ReadActual() > 36 {
		t.Errorf("unexpected plan: %s", sk)
	}
	masks, err := sk.Masks()
	if err != nil {
		t.Error(err)
		return
	}
	if len(masks) != sk.NumberMasks() {
		t.Errorf("expected %d masks, returned: %d", sk.NumberMasks(), len(masks))
	}
	for _, m := range masks {
		if bits.OnesCount64(m.Covered()) != sk.WindowActual() {
			t.Errorf("mask %s covers %d bases", m, bits.OnesCount64(m.Covered()))
		}
	}
	masks2, _ := sk.Masks()
	if &masks[0] != &masks2[0] {
		t.Errorf("masks should be cached")
	}
}

func TestValidity(t *testing.T) {
	for r := 1; r <= MaxReadLength; r++ {
		for w := 1; w < 32 && w < r; w++ {
			max := 32 - w
			if r-w < max {
				max = r - w
			}
			for s := 0; s <= max; s++ {
				if !New(r, w, s, 0, 1).Valid() {
					t.Errorf("Skeleton(%d,%d,%d) should be valid", r, w, s)
				}
				if !NewAlt(r, w, s, 0).Valid() {
					t.Errorf("SkeletonAlt(%d,%d,%d) should be valid", r, w, s)
				}
			}
		}
	}

	invalids := [][5]int{
		{65, 31, 0, 0, 1},
		{0, 1, 0, 0, 1},
		{10, 0, 0, 0, 1},
		{40, 33, 0, 0, 1},
		{10, 11, 0, 0, 1},
		{10, 8, 3, 0, 1},
		{10, 8, -1, 0, 1},
		{10, 8, 1, -1, 1},
		{10, 8, 1, 0, 0},
		{10, 8, 1, 1, 3},
	}
	for _, test := range invalids {
		sk := New(test[0], test[1], test[2], test[3], test[4])
		if sk.Valid() {
			t.Errorf("%s: should be invalid", sk)
		}
		if !strings.HasSuffix(sk.String(), ":invalid") {
			t.Errorf("unexpected report: %s", sk)
		}
		if _, err := sk.Masks(); errors.Cause(err) != ErrInvalidSkeleton {
			t.Errorf("expected ErrInvalidSkeleton, returned: %v", err)
		}
	}
}

// every placement of up to s substitutions leaves one mask untouched.
func checkComplete(t *testing.T, p Planner) {
	masks, err := p.Masks()
	if err != nil {
		t.Error(err)
		return
	}
	r := p.ReadLength()
	var errs uint64
	var ok bool
	var pos []int
	for s := 0; s <= p.Substitutions(); s++ {
		gen := gcombin.NewCombinationGenerator(r, s)
		pos = make([]int, s)
		for gen.Next() {
			gen.Combination(pos)
			errs = 0
			for _, i := range pos {
				errs |= 1 << uint(i)
			}
			ok = false
			for _, m := range masks {
				if m.Covered()&errs == 0 {
					ok = true
					break
				}
			}
			if !ok {
				t.Errorf("%s: no mask free of substitutions at %v", p, pos)
				return
			}
		}
	}
}

func TestCompleteness(t *testing.T) {
	for r := 1; r <= 14; r++ {
		for w := 1; w < r; w++ {
			for s := 0; s <= r-w && s <= 4; s++ {
				checkComplete(t, New(r, w, s, 0, 1))
				checkComplete(t, NewAlt(r, w, s, 0))
			}
		}
	}
	checkComplete(t, New(36, 12, 2, 1, 1))
	checkComplete(t, New(64, 20, 3, 0, 1))
	checkComplete(t, NewAlt(64, 20, 3, 1))
}

// random placements of exactly s substitutions, which is the hardest case.
func checkCompleteRandom(t *testing.T, p Planner, rnd *rand.Rand, trials int) {
	masks, err := p.Masks()
	if err != nil {
		t.Error(err)
		return
	}
	r := p.ReadLength()
	var errs uint64
	var ok bool
	for i := 0; i < trials; i++ {
		errs = 0
		for _, j := range rnd.Perm(r)[:p.Substitutions()] {
			errs |= 1 << uint(j)
		}
		ok = false
		for _, m := range masks {
			if m.Covered()&errs == 0 {
				ok = true
				break
			}
		}
		if !ok {
			t.Errorf("%s: no mask free of substitutions at %064b", p, errs)
			return
		}
	}
}

func TestCompletenessLongReads(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))
	var max int
	var sk Planner
	for _, r := range []int{32, 48, 64} {
		for w := 1; w < 32; w += 3 {
			max = 32 - w
			if r-w < max {
				max = r - w
			}
			for s := 0; s <= max; s += 2 {
				for _, sk = range []Planner{New(r, w, s, 0, 1), NewAlt(r, w, s, 0)} {
					if n, _ := combin.Binomial(r, s); n <= 2000 {
						checkComplete(t, sk)
					} else {
						checkCompleteRandom(t, sk, rnd, 100)
					}
				}
			}
		}
	}
}

func TestMaskBudget(t *testing.T) {
	var max int
	var masks []*SingleMask
	var err error
	var total int64
	for r := 1; r <= MaxReadLength; r++ {
		if testing.Short() && r > 16 && r%16 != 0 {
			continue
		}
		for w := 1; w < 32 && w < r; w++ {
			max = 32 - w
			if r-w < max {
				max = r - w
			}
			for s := 0; s <= max; s++ {
				for _, sk := range []Planner{New(r, w, s, 1, 1), NewAlt(r, w, s, 1)} {
					if !sk.Valid() {
						t.Errorf("%s: should be valid", sk)
						continue
					}
					if sk.NumberMasks() > MaxMasks || sk.WindowActual() < 1 || sk.ReadActual() > r {
						t.Errorf("unexpected plan: %s", sk)
						continue
					}
					if n := combin.MustBinomial(sk.NumberChunks(), sk.Substitutions()); n != uint64(sk.NumberMasks()) {
						t.Errorf("%s: expected %d masks, returned: %d", sk, n, sk.NumberMasks())
					}
					if masks, err = sk.Masks(); err != nil {
						t.Error(err)
						return
					}
					if len(masks) != sk.NumberMasks() {
						t.Errorf("%s: expected %d masks, returned: %d", sk, sk.NumberMasks(), len(masks))
					}
					total = 0
					for _, m := range masks {
						total += int64(m.IndelCount())
					}
					if total != sk.IndelCount() {
						t.Errorf("%s: expected %d candidates, returned: %d", sk, total, sk.IndelCount())
					}
				}
			}
		}
	}

	// C(32,16) masks without the budget
	sk := New(32, 16, 16, 0, 1)
	if !sk.Valid() || sk.NumberMasks() > MaxMasks {
		t.Errorf("unexpected plan: %s", sk)
		return
	}
	if sk.WindowActual() != 3 || sk.ChunkLength() != 1 || sk.NumberMasks() != 969 {
		t.Errorf("unexpected plan: %s", sk)
	}
	checkCompleteRandom(t, sk, rand.New(rand.NewSource(1)), 200)
}

func TestDumpMasks(t *testing.T) {
	sk := New(5, 3, 2, 0, 1)
	lines := strings.Split(strings.TrimRight(sk.DumpMasks(), "\n"), "\n")
	if len(lines) != 10 {
		t.Errorf("expected 10 lines, returned: %d", len(lines))
		return
	}
	for _, line := range lines {
		if len(line) != 5 || strings.Count(line, "x") != 3 {
			t.Errorf("unexpected line: %s", line)
		}
	}
	if lines[0] != "..xxx" {
		t.Errorf("unexpected first line: %s", lines[0])
	}
}

func TestEndToEndMask(t *testing.T) {
	sk := New(4, 4, 0, 0, 1)
	masks, err := sk.Masks()
	if err != nil {
		t.Error(err)
		return
	}
	if len(masks) != 1 {
		t.Errorf("expected one mask, returned: %d", len(masks))
		return
	}
	// TGCA: low bits 1010, high bits 1100
	if h := masks[0].Mask(0b1010, 0b1100); h != 0b11001010 {
		t.Errorf("expected: %08b, returned: %08b", 0b11001010, h)
	}
}
