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

// Package loop slides hash windows over the frames of sequences.
//
// Frames of a sequence and their internal ids:
//
//	unidirectional, protein:  1 frame,  id = sequence
//	bidirectional:            2 frames, id = 2*sequence + f, f=1 the reverse complement
//	                          or 1 paired frame with a dual hash, id = sequence
//	translated:               6 frames, id = 6*sequence + f, f<3 forward with offset f,
//	                          f>=3 reverse complement with offset f-3
//
// A window is reported when its start is a multiple of the step, with its
// 0-based end position in frame coordinates. Windows containing unknown
// symbols are skipped.
package loop

import (
	"fmt"
	"math"

	"github.com/RealTimeGenomics/rtg-core-sub041/seedcover/hash"
	"github.com/RealTimeGenomics/rtg-core-sub041/seedcover/seqs"
	"github.com/pkg/errors"
)

// ErrWindowSize means the window size is not positive.
var ErrWindowSize = errors.New("loop: window size should be positive")

// ErrStepSize means the step size is not positive.
var ErrStepSize = errors.New("loop: step size should be positive")

// ErrSequenceTooLong means a sequence can not be addressed with 32-bit positions.
var ErrSequenceTooLong = errors.New("loop: sequence too long")

// ErrBufferTooShort means a caller-provided buffer can not hold a sequence.
var ErrBufferTooShort = errors.New("loop: buffer too short")

// Sink receives hashes of windows.
type Sink interface {
	HashCall(hash uint64, internalID uint32, stepPosition int32)
	HashCallBidirectional(fwd, rev uint64, stepPosition int32, internalID uint32)
	EndSequence()
}

// Loop traverses sequences.
type Loop interface {
	// ExecLoop traverses all sequences, and returns the number of symbols scanned.
	ExecLoop(src seqs.Source, buf []byte) (int64, error)
	// ExecRegion traverses windows ending in a region.
	ExecRegion(src seqs.Source, r seqs.Region, buf []byte) (int64, error)
	SetThreadPadding(n int)
	ThreadPadding() int
}

// MakeBuffer allocates a buffer for the longest sequence of a source.
func MakeBuffer(src seqs.Source) ([]byte, error) {
	max := src.MaxLength()
	if max >= math.MaxInt32 {
		var n int64
		var err error
		for i := 0; i < src.NumberSequences(); i++ {
			n, err = src.Length(i)
			if err != nil {
				return nil, err
			}
			if n >= math.MaxInt32 {
				return nil, errors.Wrapf(ErrSequenceTooLong,
					"sequence %s has a length of %d (>= %d), please check it", src.Name(i), n, math.MaxInt32)
			}
		}
		return nil, errors.Wrapf(ErrSequenceTooLong,
			"maximum sequence length %d (>= %d), please check the sequences", max, math.MaxInt32)
	}
	return make([]byte, max), nil
}

func checkBuffer(name string, allocated int, required int64) error {
	if required >= math.MaxInt32 {
		return errors.Wrapf(ErrSequenceTooLong,
			"sequence %s has a length of %d (>= %d), please check it", name, required, math.MaxInt32)
	}
	if int64(allocated) < required {
		return errors.Wrapf(ErrBufferTooShort,
			"sequence %s: allocated: %d, required: %d", name, allocated, required)
	}
	return nil
}

// scanner emits windows ending in [lo, to), reading symbols from position from.
type scanner func(h hash.Hasher, frame []byte, symbols byte, from, lo, to, window, step int,
	emit func(v uint64, end int))

type dualScanner func(h hash.DualHasher, frame []byte, from, lo, to, window, step int,
	emit func(fwd, rev uint64, end int))

type base struct {
	window  int
	step    int
	style   hash.Style
	reverse bool
	padding int
	sink    Sink

	hashers [2]hash.Hasher // 2-bit and 5-bit symbols
	rc      []byte
	aa      []byte

	scan     scanner
	scanDual dualScanner
}

func newBase(window, step int, style hash.Style, reverse bool, sink Sink) (base, error) {
	if window < 1 {
		return base{}, errors.Wrapf(ErrWindowSize, "window: %d", window)
	}
	if step < 1 {
		return base{}, errors.Wrapf(ErrStepSize, "step: %d", step)
	}
	return base{
		window:  window,
		step:    step,
		style:   style,
		reverse: reverse,
		padding: window - 1,
		sink:    sink,
	}, nil
}

// SetThreadPadding sets the number of symbols scanned before a region
// so that windows ending early in the region are complete.
func (b *base) SetThreadPadding(n int) { b.padding = n }

// ThreadPadding returns the padding, window-1 by default.
func (b *base) ThreadPadding() int { return b.padding }

func (b *base) hasher(mode seqs.Mode) (hash.Hasher, error) {
	var k int
	if mode.BitsPerSymbol() != 2 {
		k = 1
	}
	if b.hashers[k] == nil {
		h, err := hash.New(b.style, b.window, mode.BitsPerSymbol(), b.reverse && k == 0)
		if err != nil {
			return nil, err
		}
		b.hashers[k] = h
	}
	return b.hashers[k], nil
}

// ExecLoop traverses all sequences.
func (b *base) ExecLoop(src seqs.Source, buf []byte) (int64, error) {
	var total, n int64
	var r seqs.Region
	var err error
	for i := 0; i < src.NumberSequences(); i++ {
		r, err = seqs.Whole(src, i)
		if err != nil {
			return total, err
		}
		n, err = b.ExecRegion(src, r, buf)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// ExecRegion traverses windows ending in a region.
func (b *base) ExecRegion(src seqs.Source, r seqs.Region, buf []byte) (int64, error) {
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
	codes := buf[:n]

	mode := src.Mode()
	h, err := b.hasher(mode)
	if err != nil {
		return 0, err
	}
	symbols := mode.Symbols()
	seq := uint32(r.Sequence)
	lo, hi := int(r.Start), int(r.End)

	var processed int64
	switch mode {
	case seqs.Bidirectional:
		if d, ok := h.(hash.DualHasher); ok && b.reverse {
			processed = b.frameDual(d, codes, seq, lo, hi)
			break
		}
		processed = b.frame(h, codes, symbols, 2*seq, lo, hi)
		b.rc = seqs.ReverseComplement(b.rc, codes)
		processed += b.frame(h, b.rc, symbols, 2*seq+1, lo, hi)
	case seqs.Translated:
		b.rc = seqs.ReverseComplement(b.rc, codes)
		lo, hi = lo/3, hi/3
		var frame []byte
		for f := 0; f < 6; f++ {
			frame = codes
			if f >= 3 {
				frame = b.rc
			}
			b.aa = seqs.Translate(b.aa, frame, f%3)
			processed += b.frame(h, b.aa, symbols, 6*seq+uint32(f), lo, hi)
		}
	default:
		processed = b.frame(h, codes, symbols, seq, lo, hi)
	}
	b.sink.EndSequence()
	return processed, nil
}

// bounds returns the range of positions to read for windows ending in [lo, hi).
func (b *base) bounds(length, lo, hi int) (from, to int) {
	from = lo - b.padding
	if from < 0 {
		from = 0
	}
	to = hi
	if to > length {
		to = length
	}
	return from, to
}

func (b *base) frame(h hash.Hasher, frame []byte, symbols byte, id uint32, lo, hi int) int64 {
	from, to := b.bounds(len(frame), lo, hi)
	if from >= to {
		return 0
	}
	b.scan(h, frame, symbols, from, lo, to, b.window, b.step, func(v uint64, end int) {
		b.sink.HashCall(v, id, int32(end))
	})
	return int64(to - from)
}

func (b *base) frameDual(h hash.DualHasher, frame []byte, id uint32, lo, hi int) int64 {
	from, to := b.bounds(len(frame), lo, hi)
	if from >= to {
		return 0
	}
	b.scanDual(h, frame, from, lo, to, b.window, b.step, func(fwd, rev uint64, end int) {
		b.sink.HashCallBidirectional(fwd, rev, int32(end), id)
	})
	return int64(to - from)
}

func (b *base) String() string {
	return fmt.Sprintf("window=%d step=%d hash=%s reverse=%v padding=%d",
		b.window, b.step, b.style, b.reverse, b.padding)
}
