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
	"github.com/RealTimeGenomics/rtg-core-sub041/seedcover/hash"
	"github.com/RealTimeGenomics/rtg-core-sub041/seedcover/seqs"
)

// IncrementalLoop rolls one hash along a whole frame.
type IncrementalLoop struct {
	base
}

// NewIncrementalLoop creates an IncrementalLoop.
// reverse asks for paired forward and reverse-complement hashes of
// bidirectional sequences, when the hash style supports it.
func NewIncrementalLoop(window, step int, style hash.Style, reverse bool, sink Sink) (*IncrementalLoop, error) {
	b, err := newBase(window, step, style, reverse, sink)
	if err != nil {
		return nil, err
	}
	b.scan = scanIncremental
	b.scanDual = scanDualIncremental
	return &IncrementalLoop{base: b}, nil
}

func (l *IncrementalLoop) String() string { return "incremental loop: " + l.base.String() }

// ResetLoop resets the hash at the start of every reported window
// and feeds only the symbols of that window.
type ResetLoop struct {
	base
}

// NewResetLoop creates a ResetLoop.
func NewResetLoop(window, step int, style hash.Style, reverse bool, sink Sink) (*ResetLoop, error) {
	b, err := newBase(window, step, style, reverse, sink)
	if err != nil {
		return nil, err
	}
	b.scan = scanReset
	b.scanDual = scanDualReset
	return &ResetLoop{base: b}, nil
}

func (l *ResetLoop) String() string { return "reset loop: " + l.base.String() }

func scanIncremental(h hash.Hasher, frame []byte, symbols byte, from, lo, to, window, step int,
	emit func(v uint64, end int)) {
	h.Reset()
	var v uint64
	var c byte
	for i := from; i < to; i++ {
		c = frame[i]
		if c >= symbols {
			h.Reset()
			continue
		}
		v = h.Step(c)
		if i >= lo && h.IsFull() && (i-window+1)%step == 0 {
			emit(v, i)
		}
	}
}

func scanDualIncremental(h hash.DualHasher, frame []byte, from, lo, to, window, step int,
	emit func(fwd, rev uint64, end int)) {
	h.Reset()
	var fwd, rev uint64
	var c byte
	for i := from; i < to; i++ {
		c = frame[i]
		if c >= seqs.UnknownBase {
			h.Reset()
			continue
		}
		fwd, rev = h.StepDual(c)
		if i >= lo && h.IsFull() && (i-window+1)%step == 0 {
			emit(fwd, rev, i)
		}
	}
}

// firstStart returns the first window start, a multiple of step,
// of windows read from position from and ending at or after lo.
func firstStart(from, lo, window, step int) int {
	start := lo - window + 1
	if start < from {
		start = from
	}
	if r := start % step; r != 0 {
		start += step - r
	}
	return start
}

func scanReset(h hash.Hasher, frame []byte, symbols byte, from, lo, to, window, step int,
	emit func(v uint64, end int)) {
	var v uint64
	var c byte
	var ok bool
	var i, end int
	for start := firstStart(from, lo, window, step); start+window <= to; start += step {
		end = start + window - 1
		h.Reset()
		ok = true
		for i = start; i <= end; i++ {
			c = frame[i]
			if c >= symbols {
				ok = false
				break
			}
			v = h.Step(c)
		}
		if ok {
			emit(v, end)
		}
	}
}

func scanDualReset(h hash.DualHasher, frame []byte, from, lo, to, window, step int,
	emit func(fwd, rev uint64, end int)) {
	var fwd, rev uint64
	var c byte
	var ok bool
	var i, end int
	for start := firstStart(from, lo, window, step); start+window <= to; start += step {
		end = start + window - 1
		h.Reset()
		ok = true
		for i = start; i <= end; i++ {
			c = frame[i]
			if c >= seqs.UnknownBase {
				ok = false
				break
			}
			fwd, rev = h.StepDual(c)
		}
		if ok {
			emit(fwd, rev, end)
		}
	}
}
