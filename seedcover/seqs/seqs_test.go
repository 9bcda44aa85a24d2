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
	"os"
	"path/filepath"
	"testing"
)

func TestEncode(t *testing.T) {
	codes := Encode(nil, []byte("ACGTNacgtu-"), Unidirectional)
	expected := []byte{0, 1, 2, 3, 4, 0, 1, 2, 3, 3, 4}
	if string(codes) != string(expected) {
		t.Errorf("expected: %v, returned: %v", expected, codes)
	}
	if s := string(Decode(codes, Nucleotides)); s != "ACGTNACGTTN" {
		t.Errorf("expected: %s, returned: %s", "ACGTNACGTTN", s)
	}

	codes = Encode(nil, []byte("MKV*xB"), Protein)
	if s := string(Decode(codes, AminoAcids)); s != "MKV*XX" {
		t.Errorf("expected: %s, returned: %s", "MKV*XX", s)
	}
}

func TestTranslate(t *testing.T) {
	codes := Encode(nil, []byte("ATGTGGTAATTTNCAGC"), Unidirectional)
	tests := []struct {
		offset   int
		expected string
	}{
		{0, "MW*FX"},
		{1, "CGNXQ"},
		{2, "VVIXS"},
	}
	for _, test := range tests {
		aa := Translate(nil, codes, test.offset)
		if s := string(Decode(aa, AminoAcids)); s != test.expected {
			t.Errorf("offset %d: expected: %s, returned: %s", test.offset, test.expected, s)
		}
	}
}

func TestReverseComplement(t *testing.T) {
	codes := Encode(nil, []byte("AACGTN"), Unidirectional)
	rc := ReverseComplement(nil, codes)
	if s := string(Decode(rc, Nucleotides)); s != "NACGTT" {
		t.Errorf("expected: %s, returned: %s", "NACGTT", s)
	}
}

func TestMode(t *testing.T) {
	tests := []struct {
		mode    Mode
		bits    int
		symbols byte
		frames  int
	}{
		{Unidirectional, 2, 4, 1},
		{Bidirectional, 2, 4, 2},
		{Translated, 5, 21, 6},
		{Protein, 5, 21, 1},
	}
	for _, test := range tests {
		if test.mode.BitsPerSymbol() != test.bits || test.mode.Symbols() != test.symbols ||
			test.mode.Frames() != test.frames {
			t.Errorf("unexpected properties of %s", test.mode)
		}
		m, err := ParseMode(test.mode.String())
		if err != nil || m != test.mode {
			t.Errorf("expected: %s, returned: %s (%v)", test.mode, m, err)
		}
	}
	if m, err := ParseMode("bi"); err != nil || m != Bidirectional {
		t.Errorf("expected: bidirectional, returned: %s (%v)", m, err)
	}
	if _, err := ParseMode("x"); err == nil {
		t.Errorf("expected error for unknown mode")
	}
}

func TestLoadFastx(t *testing.T) {
	file := filepath.Join(t.TempDir(), "t.fa")
	data := ">s1 desc\nACGTACGT\nAC\n>s2\nACG\n>s3\nTTTTTTTTTTTT\n"
	if err := os.WriteFile(file, []byte(data), 0644); err != nil {
		t.Error(err)
		return
	}

	m, err := LoadFastx([]string{file}, Bidirectional, 4)
	if err != nil {
		t.Error(err)
		return
	}
	if m.NumberSequences() != 2 {
		t.Errorf("expected 2 sequences, returned: %d", m.NumberSequences())
		return
	}
	if m.Name(0) != "s1" || m.Name(1) != "s3" {
		t.Errorf("unexpected names: %s, %s", m.Name(0), m.Name(1))
	}
	if m.MaxLength() != 12 {
		t.Errorf("expected: 12, returned: %d", m.MaxLength())
	}
	buf := make([]byte, m.MaxLength())
	n, err := m.Read(0, buf)
	if err != nil {
		t.Error(err)
		return
	}
	if s := string(Decode(buf[:n], Nucleotides)); s != "ACGTACGTAC" {
		t.Errorf("expected: %s, returned: %s", "ACGTACGTAC", s)
	}
	if _, err = m.Read(1, buf[:3]); err == nil {
		t.Errorf("expected error for a short buffer")
	}
	if _, err = m.Length(2); err == nil {
		t.Errorf("expected error for index 2")
	}
}
