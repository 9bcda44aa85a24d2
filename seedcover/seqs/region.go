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

package seqs

import "fmt"

// Region is a half-open range [Start, End) of one sequence.
type Region struct {
	Sequence int
	Start    int64
	End      int64
}

// Whole returns the region of a whole sequence.
func Whole(src Source, i int) (Region, error) {
	n, err := src.Length(i)
	if err != nil {
		return Region{}, err
	}
	return Region{Sequence: i, Start: 0, End: n}, nil
}

// Len returns the length of the region.
func (r Region) Len() int64 { return r.End - r.Start }

func (r Region) String() string {
	return fmt.Sprintf("%d:[%d, %d)", r.Sequence, r.Start, r.End)
}
