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
)

// multiplier of the polynomial, odd so that it is invertible mod 2^64.
const wideBase uint64 = 0x9E3779B97F4A7C15

// Wide is a rolling polynomial hash for windows wider than 64 bits.
// The last windowSize codes are kept in a ring buffer to drop the
// oldest term and to render the window.
type Wide struct {
	windowSize int
	bps        int

	top  uint64 // wideBase^windowSize
	ring []byte
	i    int // next slot of the ring
	n    int // codes added since the last reset
	h    uint64
}

// NewWide creates a Wide hash.
func NewWide(windowSize, bitsPerSymbol int) (*Wide, error) {
	if err := checkParameters(windowSize, bitsPerSymbol); err != nil {
		return nil, err
	}
	top := uint64(1)
	for i := 0; i < windowSize; i++ {
		top *= wideBase
	}
	return &Wide{
		windowSize: windowSize,
		bps:        bitsPerSymbol,
		top:        top,
		ring:       make([]byte, windowSize),
	}, nil
}

// Step adds one symbol code.
func (w *Wide) Step(code byte) uint64 {
	w.h = w.h*wideBase + uint64(code) + 1
	if w.n >= w.windowSize {
		w.h -= (uint64(w.ring[w.i]) + 1) * w.top
	} else {
		w.n++
	}
	w.ring[w.i] = code
	w.i++
	if w.i == w.windowSize {
		w.i = 0
	}
	return w.h
}

// IsFull tells whether a whole window has been added.
func (w *Wide) IsFull() bool { return w.n >= w.windowSize }

// Reset clears the state.
func (w *Wide) Reset() {
	w.h = 0
	w.n = 0
	w.i = 0
}

// WindowSize returns the window size.
func (w *Wide) WindowSize() int { return w.windowSize }

// Bits returns 64.
func (w *Wide) Bits() int { return 64 }

// ToSymbols renders the window currently held.
// The polynomial can not be inverted, so h is only used to check
// that it is the current value; a stale value gives an empty string.
func (w *Wide) ToSymbols(h uint64, alphabet string) string {
	if h != w.h || !w.IsFull() {
		return ""
	}
	buf := make([]byte, w.windowSize)
	var c byte
	for k := 0; k < w.windowSize; k++ {
		c = w.ring[(w.i+k)%w.windowSize]
		if int(c) < len(alphabet) {
			buf[k] = alphabet[c]
		} else {
			buf[k] = '?'
		}
	}
	return string(buf)
}

func (w *Wide) String() string {
	return fmt.Sprintf("wide hash: window=%d bits per symbol=%d", w.windowSize, w.bps)
}
