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

package loop

import (
	"github.com/RealTimeGenomics/rtg-core-sub041/seedcover/seqs"
	"github.com/pkg/errors"
)

// SeedFunction computes seeds of all masks of a plan from nucleotide codes.
type SeedFunction interface {
	Step(code byte)
	IsFull() bool
	Reset()
	ReadAll(readID uint32, reverse bool)
	TemplateAll(endPosition int32)
	Set(name string, length int)
	EndSequence()
	Done()
}

// TemplateLoop feeds template sequences to a SeedFunction and calls
// TemplateAll at every position once a whole read length is held.
type TemplateLoop struct {
	fn      SeedFunction
	padding int
}

// NewTemplateLoop creates a TemplateLoop. span is the number of last bases
// seeds of a position depend on; span-1 bases are scanned before a region.
func NewTemplateLoop(fn SeedFunction, span int) *TemplateLoop {
	return &TemplateLoop{fn: fn, padding: span - 1}
}

// SetThreadPadding sets the number of bases scanned before a region.
func (l *TemplateLoop) SetThreadPadding(n int) { l.padding = n }

// ThreadPadding returns the padding.
func (l *TemplateLoop) ThreadPadding() int { return l.padding }

// ExecLoop feeds all templates and calls Done at the end.
func (l *TemplateLoop) ExecLoop(src seqs.Source, buf []byte) (int64, error) {
	var total, n int64
	var r seqs.Region
	var err error
	for i := 0; i < src.NumberSequences(); i++ {
		r, err = seqs.Whole(src, i)
		if err != nil {
			return total, err
		}
		n, err = l.ExecRegion(src, r, buf)
		total += n
		if err != nil {
			return total, err
		}
	}
	l.fn.Done()
	return total, nil
}

// ExecRegion feeds one region of a template, calling TemplateAll for
// positions in the region only.
func (l *TemplateLoop) ExecRegion(src seqs.Source, r seqs.Region, buf []byte) (int64, error) {
	if m := src.Mode(); m == seqs.Protein || m == seqs.Translated {
		return 0, errors.Errorf("loop: templates of mode %s are not supported", m)
	}
	length, err := src.Length(r.Sequence)
	if err != nil {
		return 0, err
	}
	name := src.Name(r.Sequence)
	if err = checkBuffer(name, len(buf), length); err != nil {
		return 0, err
	}
	n, err := src.Read(r.Sequence, buf)
	if err != nil {
		return 0, errors.Wrapf(err, "read sequence %s", name)
	}

	from := int(r.Start) - l.padding
	if from < 0 {
		from = 0
	}
	to := int(r.End)
	if to > n {
		to = n
	}
	l.fn.Set(name, n)
	l.fn.Reset()
	for i := from; i < to; i++ {
		l.fn.Step(buf[i])
		if i >= int(r.Start) && l.fn.IsFull() {
			l.fn.TemplateAll(int32(i))
		}
	}
	l.fn.EndSequence()
	if from >= to {
		return 0, nil
	}
	return int64(to - from), nil
}

// ReadLoop feeds every read of a source to a SeedFunction and calls ReadAll,
// again with the reverse complement when reverse is set.
// Read ids are sequence indexes.
type ReadLoop struct {
	fn      SeedFunction
	reverse bool
	rc      []byte
}

// NewReadLoop creates a ReadLoop.
func NewReadLoop(fn SeedFunction, reverse bool) *ReadLoop {
	return &ReadLoop{fn: fn, reverse: reverse}
}

// ExecLoop feeds all reads and calls Done at the end.
// Reads too short to fill the function are skipped.
func (l *ReadLoop) ExecLoop(src seqs.Source, buf []byte) (int64, error) {
	if m := src.Mode(); m == seqs.Protein || m == seqs.Translated {
		return 0, errors.Errorf("loop: reads of mode %s are not supported", m)
	}
	var total int64
	var length int64
	var n int
	var err error
	for i := 0; i < src.NumberSequences(); i++ {
		length, err = src.Length(i)
		if err != nil {
			return total, err
		}
		name := src.Name(i)
		if err = checkBuffer(name, len(buf), length); err != nil {
			return total, err
		}
		n, err = src.Read(i, buf)
		if err != nil {
			return total, errors.Wrapf(err, "read sequence %s", name)
		}
		total += int64(n)

		l.feed(buf[:n], uint32(i), false)
		if l.reverse {
			l.rc = seqs.ReverseComplement(l.rc, buf[:n])
			l.feed(l.rc, uint32(i), true)
		}
	}
	l.fn.Done()
	return total, nil
}

func (l *ReadLoop) feed(codes []byte, id uint32, reverse bool) {
	l.fn.Reset()
	for _, c := range codes {
		l.fn.Step(c)
	}
	if l.fn.IsFull() {
		l.fn.ReadAll(id, reverse)
	}
}
