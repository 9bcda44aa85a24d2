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
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/shenwei356/bio/seqio/fastx"
)

// ErrSequenceIndex means a sequence index is out of range.
var ErrSequenceIndex = errors.New("seqs: sequence index out of range")

// Source provides sequences as symbol codes.
type Source interface {
	// NumberSequences returns the number of sequences.
	NumberSequences() int
	// Name returns the name of a sequence.
	Name(i int) string
	// Length returns the length of a sequence, in codes.
	Length(i int) (int64, error)
	// MaxLength returns the length of the longest sequence.
	MaxLength() int64
	// Read copies the codes of a sequence to buf, and returns the number of codes.
	Read(i int, buf []byte) (int, error)
	// Mode returns how sequences are traversed.
	Mode() Mode
}

// Memory is a Source holding all codes in memory.
type Memory struct {
	mode  Mode
	names []string
	codes [][]byte
	max   int64
}

// NewMemory creates an empty Memory source.
func NewMemory(mode Mode) *Memory {
	return &Memory{mode: mode}
}

// Add appends a sequence of codes, which is not copied.
func (m *Memory) Add(name string, codes []byte) {
	m.names = append(m.names, name)
	m.codes = append(m.codes, codes)
	if int64(len(codes)) > m.max {
		m.max = int64(len(codes))
	}
}

// AddLetters encodes and appends a sequence.
func (m *Memory) AddLetters(name string, letters []byte) {
	m.Add(name, Encode(nil, letters, m.mode))
}

// NumberSequences returns the number of sequences.
func (m *Memory) NumberSequences() int { return len(m.codes) }

// Name returns the name of a sequence.
func (m *Memory) Name(i int) string { return m.names[i] }

// Length returns the length of a sequence.
func (m *Memory) Length(i int) (int64, error) {
	if i < 0 || i >= len(m.codes) {
		return 0, errors.Wrapf(ErrSequenceIndex, "%d of %d", i, len(m.codes))
	}
	return int64(len(m.codes[i])), nil
}

// MaxLength returns the length of the longest sequence.
func (m *Memory) MaxLength() int64 { return m.max }

// Read copies the codes of a sequence.
func (m *Memory) Read(i int, buf []byte) (int, error) {
	if i < 0 || i >= len(m.codes) {
		return 0, errors.Wrapf(ErrSequenceIndex, "%d of %d", i, len(m.codes))
	}
	if len(buf) < len(m.codes[i]) {
		return 0, fmt.Errorf("seqs: buffer too short for sequence %s: %d < %d",
			m.names[i], len(buf), len(m.codes[i]))
	}
	return copy(buf, m.codes[i]), nil
}

// Mode returns the mode.
func (m *Memory) Mode() Mode { return m.mode }

// Codes returns the codes of a sequence, not copied.
func (m *Memory) Codes(i int) []byte { return m.codes[i] }

// LoadFastx reads all records of FASTA/Q files into a Memory source.
// Sequences shorter than minLen are skipped.
func LoadFastx(files []string, mode Mode, minLen int) (*Memory, error) {
	m := NewMemory(mode)
	var record *fastx.Record
	for _, file := range files {
		fastxReader, err := fastx.NewReader(nil, file, "")
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read seq file: %s", file)
		}

		var i int
		for {
			record, err = fastxReader.Read()
			if err != nil {
				if err == io.EOF {
					break
				}
				fastxReader.Close()
				return nil, errors.Wrapf(err, "read seq %d in %s", i, file)
			}
			i++

			if len(record.Seq.Seq) < minLen {
				continue
			}
			m.Add(string(record.ID), Encode(nil, record.Seq.Seq, mode))
		}
		fastxReader.Close()
	}
	return m, nil
}
