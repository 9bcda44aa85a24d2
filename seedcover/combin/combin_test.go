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

package combin

import (
	"math"
	"testing"

	"github.com/pkg/errors"
)

func TestBinomial(t *testing.T) {
	tests := [][3]uint64{
		{0, 0, 1},
		{1, 0, 1},
		{1, 1, 1},
		{5, 2, 10},
		{6, 3, 20},
		{4, 5, 0},
		{32, 16, 601080390},
		{64, 32, 1832624140942590534},
		{64, 64, 1},
	}
	for _, test := range tests {
		v, err := Binomial(int(test[0]), int(test[1]))
		if err != nil {
			t.Error(err)
			return
		}
		if v != test[2] {
			t.Errorf("C(%d,%d), expected: %d, returned: %d", test[0], test[1], test[2], v)
		}
	}
}

func TestBinomialRange(t *testing.T) {
	_, err := Binomial(65, 1)
	if errors.Cause(err) != ErrBinomialRange {
		t.Errorf("expected ErrBinomialRange for n=65, returned: %v", err)
	}
	_, err = Binomial(-1, 0)
	if errors.Cause(err) != ErrBinomialRange {
		t.Errorf("expected ErrBinomialRange for n=-1, returned: %v", err)
	}
}

func TestRandomizeInvertible(t *testing.T) {
	for bits := 1; bits <= 64; bits++ {
		max := Mask(bits)
		if Prime(bits)&1 == 0 {
			t.Errorf("bits %d: even multiplier %d", bits, Prime(bits))
		}
		if Prime(bits)*Inverse(bits)&max != 1 {
			t.Errorf("bits %d: %d is not the inverse of %d", bits, Inverse(bits), Prime(bits))
		}
		for _, h := range []uint64{1, max, max / 3} {
			r := Randomize(h, bits)
			if r > max {
				t.Errorf("bits %d: randomized value %d overflows", bits, r)
			}
			if v := Derandomize(r, bits); v != h {
				t.Errorf("bits %d: expected: %d, returned: %d", bits, h, v)
			}
		}
	}
}

func TestMask(t *testing.T) {
	if Mask(64) != math.MaxUint64 {
		t.Errorf("unexpected mask for 64 bits: %x", Mask(64))
	}
	if Mask(3) != 7 {
		t.Errorf("unexpected mask for 3 bits: %x", Mask(3))
	}
	if Mask(0) != 0 {
		t.Errorf("unexpected mask for 0 bits: %x", Mask(0))
	}
}
