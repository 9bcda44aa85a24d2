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
	"github.com/pkg/errors"
)

// Exact packs the last windowSize codes into one value,
// the most recent code in the lowest bits.
type Exact struct {
	windowSize int
	bps        int
	bits       int
	mask       uint64

	h      uint64
	filled int
}

// NewExact creates an Exact hash.
func NewExact(windowSize, bitsPerSymbol int) (*Exact, error) {
	if err := checkParameters(windowSize, bitsPerSymbol); err != nil {
		return nil, err
	}
	bits := windowSize * bitsPerSymbol
	if bits > 64 {
		return nil, errors.Wrapf(ErrTooWide, "window: %d, bits per symbol: %d", windowSize, bitsPerSymbol)
	}
	return &Exact{
		windowSize: windowSize,
		bps:        bitsPerSymbol,
		bits:       bits,
		mask:       combin.Mask(bits),
	}, nil
}

// Step adds one symbol code.
func (e *Exact) Step(code byte) uint64 {
	e.h = (e.h<<uint(e.bps) | uint64(code)) & e.mask
	if e.filled < e.windowSize {
		e.filled++
	}
	return e.h
}

// IsFull tells whether a whole window has been added.
func (e *Exact) IsFull() bool { return e.filled >= e.windowSize }

// Reset clears the state.
func (e *Exact) Reset() {
	e.h = 0
	e.filled = 0
}

// WindowSize returns the window size.
func (e *Exact) WindowSize() int { return e.windowSize }

// Bits returns the width of hash values.
func (e *Exact) Bits() int { return e.bits }

// ToSymbols decodes a hash value.
func (e *Exact) ToSymbols(h uint64, alphabet string) string {
	return decode(h, e.windowSize, e.bps, alphabet)
}

func (e *Exact) String() string {
	return fmt.Sprintf("exact hash: window=%d bits=%d", e.windowSize, e.bits)
}

// DualExact is an Exact hash that also keeps the hash of the
// reverse complement of the window. The complement of a code c
// is 2^bitsPerSymbol-1-c.
type DualExact struct {
	Exact

	rev   uint64
	top   uint   // shift of the highest code slot
	cmask uint64 // mask of one code
}

// NewDualExact creates a DualExact hash.
func NewDualExact(windowSize, bitsPerSymbol int) (*DualExact, error) {
	e, err := NewExact(windowSize, bitsPerSymbol)
	if err != nil {
		return nil, err
	}
	return &DualExact{
		Exact: *e,
		top:   uint((windowSize - 1) * bitsPerSymbol),
		cmask: uint64(1)<<uint(bitsPerSymbol) - 1,
	}, nil
}

// StepDual adds one code and returns the forward and reverse-complement hashes.
func (d *DualExact) StepDual(code byte) (uint64, uint64) {
	fwd := d.Exact.Step(code)
	d.rev = d.rev>>uint(d.bps) | (d.cmask-uint64(code)&d.cmask)<<d.top
	return fwd, d.rev
}

// Step adds one code and returns the forward hash.
func (d *DualExact) Step(code byte) uint64 {
	fwd, _ := d.StepDual(code)
	return fwd
}

// Reverse returns the current reverse-complement hash.
func (d *DualExact) Reverse() uint64 { return d.rev }

// Reset clears the state.
func (d *DualExact) Reset() {
	d.Exact.Reset()
	d.rev = 0
}

func (d *DualExact) String() string {
	return fmt.Sprintf("dual exact hash: window=%d bits=%d", d.windowSize, d.bits)
}
