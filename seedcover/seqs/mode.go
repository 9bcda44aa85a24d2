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

// Package seqs provides sequences as symbol codes for the traversal drivers.
package seqs

import (
	"fmt"
	"strings"
)

// Mode decides how a sequence is read: which frames and which alphabet.
type Mode int

const (
	// Unidirectional reads the forward strand of nucleotides.
	Unidirectional Mode = iota
	// Bidirectional reads both strands of nucleotides.
	Bidirectional
	// Translated reads nucleotides as amino acids in six frames.
	Translated
	// Protein reads amino acids.
	Protein
)

var modeNames = []string{"unidirectional", "bidirectional", "translated", "protein"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode parses a mode name, a unique prefix is accepted.
func ParseMode(name string) (Mode, error) {
	name = strings.ToLower(name)
	found := -1
	for i, n := range modeNames {
		if n == name {
			return Mode(i), nil
		}
		if name != "" && strings.HasPrefix(n, name) {
			if found >= 0 {
				return 0, fmt.Errorf("seqs: ambiguous mode: %s", name)
			}
			found = i
		}
	}
	if found < 0 {
		return 0, fmt.Errorf("seqs: unknown mode: %s", name)
	}
	return Mode(found), nil
}

// BitsPerSymbol returns the width of a symbol code as seen by a hash.
func (m Mode) BitsPerSymbol() int {
	if m == Translated || m == Protein {
		return 5
	}
	return 2
}

// Symbols returns the number of valid codes; codes not below it are unknown.
func (m Mode) Symbols() byte {
	if m == Translated || m == Protein {
		return byte(len(AminoAcids))
	}
	return 4
}

// Alphabet returns the letters of the valid codes.
func (m Mode) Alphabet() string {
	if m == Translated || m == Protein {
		return AminoAcids
	}
	return Nucleotides
}

// Frames returns the number of frames of a sequence.
func (m Mode) Frames() int {
	switch m {
	case Bidirectional:
		return 2
	case Translated:
		return 6
	}
	return 1
}

