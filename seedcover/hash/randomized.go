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

package hash

import (
	"fmt"

	"github.com/RealTimeGenomics/rtg-core-sub041/seedcover/combin"
)

// Randomized is an Exact hash multiplied by a prime chosen by bit width,
// which spreads neighbouring values over the hash space.
// The product is taken mod 2^bits and can be inverted with Invert.
type Randomized struct {
	Exact
	prime uint64
}

// NewRandomized creates a Randomized hash.
func NewRandomized(windowSize, bitsPerSymbol int) (*Randomized, error) {
	e, err := NewExact(windowSize, bitsPerSymbol)
	if err != nil {
		return nil, err
	}
	return &Randomized{Exact: *e, prime: combin.Prime(e.bits)}, nil
}

// Step adds one symbol code.
func (r *Randomized) Step(code byte) uint64 {
	return r.Exact.Step(code) * r.prime & r.mask
}

// Invert recovers the positional hash of a randomized value.
func (r *Randomized) Invert(h uint64) uint64 {
	return combin.Derandomize(h, r.bits)
}

// ToSymbols decodes a randomized hash value.
func (r *Randomized) ToSymbols(h uint64, alphabet string) string {
	return r.Exact.ToSymbols(r.Invert(h), alphabet)
}

func (r *Randomized) String() string {
	return fmt.Sprintf("randomized hash: window=%d bits=%d prime=%d", r.windowSize, r.bits, r.prime)
}
