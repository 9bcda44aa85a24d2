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

// Package hash implements rolling hash functions over symbol codes:
// an exact positional hash, a polynomial hash for windows too wide to
// pack into 64 bits, and an invertible randomized variant of the exact hash.
package hash

import (
	"fmt"

	"github.com/pkg/errors"
)

// DNA is the nucleotide alphabet, indexed by 2-bit code.
const DNA = "ACGT"

// Protein is the amino-acid alphabet, indexed by 5-bit code.
// Code 0 is the stop codon.
const Protein = "*ARNDCQEGHILKMFPSTWYV"

// ErrWindowSize means a window size is not positive.
var ErrWindowSize = errors.New("hash: window size should be positive")

// ErrTooWide means an exact hash can not hold the window.
var ErrTooWide = errors.New("hash: window too wide for an exact hash (> 64 bits)")

// ErrBitsPerSymbol means the number of bits per symbol is out of [1, 8].
var ErrBitsPerSymbol = errors.New("hash: bits per symbol out of range [1, 8]")

// Hasher is a rolling hash over a window of symbol codes.
type Hasher interface {
	// Step adds one symbol code and returns the updated hash.
	Step(code byte) uint64
	// IsFull tells whether a whole window has been added since the last Reset.
	IsFull() bool
	// Reset clears the state.
	Reset()
	// WindowSize returns the number of symbols in a window.
	WindowSize() int
	// Bits returns the number of meaningful bits of a hash value.
	Bits() int
	// ToSymbols renders the window behind a hash value.
	ToSymbols(h uint64, alphabet string) string

	String() string
}

// DualHasher computes the reverse-complement hash along with the forward one.
type DualHasher interface {
	Hasher
	StepDual(code byte) (fwd, rev uint64)
}

// Style selects a hash variant.
type Style int

const (
	// Auto uses Exact when the window fits in 64 bits, Wide otherwise.
	Auto Style = iota
	ExactStyle
	WideStyle
	RandomizedStyle
)

var styleNames = []string{"auto", "exact", "wide", "randomized"}

func (s Style) String() string {
	if s < 0 || int(s) >= len(styleNames) {
		return fmt.Sprintf("Style(%d)", int(s))
	}
	return styleNames[s]
}

// ParseStyle parses a style name.
func ParseStyle(name string) (Style, error) {
	for i, n := range styleNames {
		if n == name {
			return Style(i), nil
		}
	}
	return Auto, fmt.Errorf("hash: unknown style: %s", name)
}

// New creates a Hasher of the given style.
// dual asks for a DualHasher, which only the exact style provides.
func New(style Style, windowSize, bitsPerSymbol int, dual bool) (Hasher, error) {
	if style == Auto {
		if windowSize*bitsPerSymbol > 64 {
			style = WideStyle
		} else {
			style = ExactStyle
		}
	}
	switch style {
	case ExactStyle:
		if dual {
			return NewDualExact(windowSize, bitsPerSymbol)
		}
		return NewExact(windowSize, bitsPerSymbol)
	case WideStyle:
		return NewWide(windowSize, bitsPerSymbol)
	case RandomizedStyle:
		return NewRandomized(windowSize, bitsPerSymbol)
	}
	return nil, fmt.Errorf("hash: unknown style: %s", style)
}

func checkParameters(windowSize, bitsPerSymbol int) error {
	if windowSize < 1 {
		return errors.Wrapf(ErrWindowSize, "window size: %d", windowSize)
	}
	if bitsPerSymbol < 1 || bitsPerSymbol > 8 {
		return errors.Wrapf(ErrBitsPerSymbol, "bits per symbol: %d", bitsPerSymbol)
	}
	return nil
}

// decode renders size codes of bps bits each, the oldest in the highest bits.
func decode(h uint64, size, bps int, alphabet string) string {
	buf := make([]byte, size)
	m := uint64(1)<<uint(bps) - 1
	var c int
	for i := size - 1; i >= 0; i-- {
		c = int(h & m)
		if c < len(alphabet) {
			buf[i] = alphabet[c]
		} else {
			buf[i] = '?'
		}
		h >>= uint(bps)
	}
	return string(buf)
}
