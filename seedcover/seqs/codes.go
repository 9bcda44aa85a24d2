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

import (
	"github.com/RealTimeGenomics/rtg-core-sub041/seedcover/hash"
)

// Nucleotides are the letters of nucleotide codes 0-3.
const Nucleotides = hash.DNA

// AminoAcids are the letters of amino-acid codes, the stop codon first.
const AminoAcids = hash.Protein

// UnknownBase is the code of any letter other than ACGT(U).
const UnknownBase byte = 4

// UnknownAminoAcid is the code of a letter out of AminoAcids, or of a
// codon containing an unknown base.
const UnknownAminoAcid = byte(len(AminoAcids))

// standard genetic code, codons ordered by their ACGT codes.
const codonTable = "KNKNTTTTRSRSIIMIQHQHPPPPRRRRLLLLEDEDAAAAGGGGVVVV*Y*YSSSS*CWCLFLF"

var baseCodes [256]byte
var aminoCodes [256]byte
var codonCodes [64]byte

func init() {
	for i := range baseCodes {
		baseCodes[i] = UnknownBase
		aminoCodes[i] = UnknownAminoAcid
	}
	for i, b := range []byte("ACGT") {
		baseCodes[b] = byte(i)
		baseCodes[b+32] = byte(i)
	}
	baseCodes['U'] = 3
	baseCodes['u'] = 3

	for i := 0; i < len(AminoAcids); i++ {
		b := AminoAcids[i]
		aminoCodes[b] = byte(i)
		if b >= 'A' && b <= 'Z' {
			aminoCodes[b+32] = byte(i)
		}
	}
	for i := 0; i < 64; i++ {
		codonCodes[i] = aminoCodes[codonTable[i]]
	}
}

// Encode converts letters to codes of the given mode, in place if dst
// is long enough. Translated sequences are encoded as nucleotides.
func Encode(dst, letters []byte, mode Mode) []byte {
	if cap(dst) < len(letters) {
		dst = make([]byte, len(letters))
	}
	dst = dst[:len(letters)]
	table := &baseCodes
	if mode == Protein {
		table = &aminoCodes
	}
	for i, b := range letters {
		dst[i] = table[b]
	}
	return dst
}

// Decode converts codes back to letters, unknown codes become N or X.
func Decode(codes []byte, alphabet string) []byte {
	s := make([]byte, len(codes))
	unknown := byte('N')
	if alphabet == AminoAcids {
		unknown = 'X'
	}
	for i, c := range codes {
		if int(c) < len(alphabet) {
			s[i] = alphabet[c]
		} else {
			s[i] = unknown
		}
	}
	return s
}

// Codon returns the amino-acid code of three nucleotide codes.
func Codon(a, b, c byte) byte {
	if a >= UnknownBase || b >= UnknownBase || c >= UnknownBase {
		return UnknownAminoAcid
	}
	return codonCodes[a<<4|b<<2|c]
}

// Translate converts nucleotide codes to amino-acid codes,
// starting from the given offset. Trailing bases of an incomplete codon
// are ignored.
func Translate(dst, codes []byte, offset int) []byte {
	dst = dst[:0]
	for i := offset; i+2 < len(codes); i += 3 {
		dst = append(dst, Codon(codes[i], codes[i+1], codes[i+2]))
	}
	return dst
}

// ReverseComplement returns the reverse complement of nucleotide codes.
// Unknown codes stay unknown.
func ReverseComplement(dst, codes []byte) []byte {
	if cap(dst) < len(codes) {
		dst = make([]byte, len(codes))
	}
	dst = dst[:len(codes)]
	n := len(codes) - 1
	var c byte
	for i := range codes {
		c = codes[n-i]
		if c < UnknownBase {
			dst[i] = 3 - c
		} else {
			dst[i] = c
		}
	}
	return dst
}
