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

package util

import (
	"testing"
)

func TestUniqUint64s(t *testing.T) {
	tests := [][2][]uint64{
		{{}, {}},
		{{1}, {1}},
		{{3, 1, 2}, {1, 2, 3}},
		{{1, 1, 1}, {1}},
		{{5, 3, 5, 1, 3, 3, 9}, {1, 3, 5, 9}},
		{{2, 2, 1, 1}, {1, 2}},
	}
	for _, test := range tests {
		list := append([]uint64{}, test[0]...)
		UniqUint64s(&list)
		if len(list) != len(test[1]) {
			t.Errorf("expected: %v, returned: %v", test[1], list)
			continue
		}
		for i, v := range list {
			if v != test[1][i] {
				t.Errorf("expected: %v, returned: %v", test[1], list)
				break
			}
		}
	}
}

func TestDigest(t *testing.T) {
	a := Digest([]uint64{1, 2, 3}, 1)
	if a != Digest([]uint64{1, 2, 3}, 1) {
		t.Errorf("digest should be deterministic")
	}
	if a == Digest([]uint64{3, 2, 1}, 1) {
		t.Errorf("digest should depend on the order")
	}
	if a == Digest([]uint64{1, 2, 3}, 2) {
		t.Errorf("digest should depend on the seed")
	}
}

func TestReverseInts(t *testing.T) {
	s := []int{1, 2, 3, 4}
	ReverseInts(s)
	if s[0] != 4 || s[1] != 3 || s[2] != 2 || s[3] != 1 {
		t.Errorf("expected: [4 3 2 1], returned: %v", s)
	}
}

func TestCountBits(t *testing.T) {
	counts := CountBits([]uint64{0b101, 0b110}, 4)
	expected := []int{1, 1, 2, 0}
	for i, c := range counts {
		if c != expected[i] {
			t.Errorf("expected: %v, returned: %v", expected, counts)
			break
		}
	}
}
