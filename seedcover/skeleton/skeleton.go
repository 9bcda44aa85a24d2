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

// Package skeleton plans families of spaced seeds (masks) that tolerate
// a bounded number of substitutions and single indels in a read.
//
// A read is cut into numberChunks equal chunks. A mask covers windowChunks
// of them, and every windowChunks-subset of the chunks is a mask, so with
// numberChunks = windowChunks + substitutions at least one mask is free
// of substitutions whatever their positions.
package skeleton

import (
	"fmt"
	"strings"
	"sync"

	"github.com/RealTimeGenomics/rtg-core-sub041/seedcover/combin"
	"github.com/pkg/errors"
	gcombin "gonum.org/v1/gonum/stat/combin"
)

// MaxReadLength is the longest read a packed bit plane holds.
const MaxReadLength = 64

// MaxWindowLength is the longest window whose two bit planes fit in a 64-bit hash.
const MaxWindowLength = 32

// MaxMasks is the largest number of masks a plan may have. Planners shrink
// the window rather than exceed it.
const MaxMasks = 1 << 12

// ErrInvalidSkeleton means masks are requested from an infeasible configuration.
var ErrInvalidSkeleton = errors.New("skeleton: invalid configuration")

// Planner is a seed-cover planner.
type Planner interface {
	Valid() bool
	Masks() ([]*SingleMask, error)
	NumberMasks() int
	IndelCount() int64

	ReadLength() int
	WindowLength() int
	Substitutions() int
	Indels() int
	IndelLength() int

	ChunkLength() int
	NumberChunks() int
	WindowChunks() int
	WindowActual() int
	ReadActual() int
	WindowBits() int

	DumpMasks() string
	String() string
}

// plan holds the inputs and the derived chunk partition.
type plan struct {
	name string

	readLength    int
	windowLength  int
	substitutions int
	indels        int
	indelLength   int

	valid        bool
	chunkLength  int
	numberChunks int
	windowChunks int
	numberMasks  int

	once  sync.Once
	masks []*SingleMask
	err   error
}

func (p *plan) checkInputs() bool {
	if p.readLength < 1 || p.readLength > MaxReadLength {
		return false
	}
	if p.windowLength < 1 || p.windowLength > MaxWindowLength || p.windowLength > p.readLength {
		return false
	}
	if p.substitutions < 0 || p.substitutions > p.readLength-p.windowLength {
		return false
	}
	if p.indels < 0 || p.indelLength < 1 {
		return false
	}
	if p.indels > 0 && p.indelLength > p.readLength-p.windowLength {
		return false
	}
	return true
}

// fits returns the number of masks of a partition, and false when
// the read is too short for it or the masks exceed MaxMasks.
func (p *plan) fits(chunkLength, windowChunks int) (int, bool) {
	if (windowChunks+p.substitutions)*chunkLength > p.readLength {
		return 0, false
	}
	n, err := combin.Binomial(windowChunks+p.substitutions, p.substitutions)
	if err != nil || n > MaxMasks {
		return 0, false
	}
	return int(n), true
}

// accept records a chunk partition.
func (p *plan) accept(chunkLength, windowChunks, numberMasks int) {
	p.chunkLength = chunkLength
	p.windowChunks = windowChunks
	p.numberChunks = windowChunks + p.substitutions
	p.numberMasks = numberMasks
	p.valid = true
}

// Valid tells whether a complete seed cover exists for the inputs.
func (p *plan) Valid() bool { return p.valid }

// ReadLength returns the read length.
func (p *plan) ReadLength() int { return p.readLength }

// WindowLength returns the requested window length.
func (p *plan) WindowLength() int { return p.windowLength }

// Substitutions returns the number of tolerated substitutions.
func (p *plan) Substitutions() int { return p.substitutions }

// Indels returns the number of tolerated indels.
func (p *plan) Indels() int { return p.indels }

// IndelLength returns the maximum length of a tolerated indel.
func (p *plan) IndelLength() int { return p.indelLength }

// ChunkLength returns the number of bases in a chunk.
func (p *plan) ChunkLength() int { return p.chunkLength }

// NumberChunks returns the number of chunks the read is cut into.
func (p *plan) NumberChunks() int { return p.numberChunks }

// WindowChunks returns the number of chunks covered by a mask.
func (p *plan) WindowChunks() int { return p.windowChunks }

// WindowActual returns the number of bases covered by a mask.
func (p *plan) WindowActual() int { return p.windowChunks * p.chunkLength }

// ReadActual returns the number of read bases used by the chunks.
func (p *plan) ReadActual() int { return p.numberChunks * p.chunkLength }

// WindowBits returns the number of bits of a seed hash.
func (p *plan) WindowBits() int { return p.WindowActual() << 1 }

// NumberMasks returns the number of masks.
func (p *plan) NumberMasks() int { return p.numberMasks }

// IndelCount returns the number of template seeds per position, indel
// variants included, summed over all masks. It is computed from the chunk
// partition without building the masks.
//
// Two chosen chunks a and a+g+1 with the g chunks between them unchosen form
// a gap of g*chunkLength bases. There are numberChunks-g-1 such pairs, each
// in C(numberChunks-g-2, windowChunks-2) masks, and every gap adds
// indelLength opening and min(indelLength, gap) closing variants.
func (p *plan) IndelCount() int64 {
	if !p.valid {
		return 0
	}
	total := int64(p.numberMasks)
	if p.indels == 0 || p.windowChunks < 2 {
		return total
	}
	n, k, l := p.numberChunks, p.windowChunks, p.indelLength
	var gap, closing int
	var pairs uint64
	for g := 1; g <= n-k; g++ {
		pairs = uint64(n-g-1) * combin.MustBinomial(n-g-2, k-2)
		gap = g * p.chunkLength
		closing = l
		if gap < closing {
			closing = gap
		}
		total += int64(pairs) * int64(l+closing)
	}
	return total
}

// Masks returns the masks, built on the first call.
// The returned slice must not be modified.
func (p *plan) Masks() ([]*SingleMask, error) {
	if !p.valid {
		return nil, errors.Wrap(ErrInvalidSkeleton, p.String())
	}
	p.once.Do(func() {
		p.masks, p.err = p.build()
	})
	return p.masks, p.err
}

// build generates one mask for every windowChunks-subset of chunks.
// Chunk 0 holds the most recent bases; adjacent chosen chunks form one piece.
func (p *plan) build() ([]*SingleMask, error) {
	c := p.chunkLength
	wa := p.WindowActual()
	masks := make([]*SingleMask, 0, p.numberMasks)

	gen := gcombin.NewCombinationGenerator(p.numberChunks, p.windowChunks)
	chunks := make([]int, p.windowChunks)
	var i, j, rename int
	var b *MaskBuilder
	var s Skel
	var m *SingleMask
	var err error
	for gen.Next() {
		gen.Combination(chunks)

		b = NewMaskBuilder(wa, p.indels, p.indelLength)
		rename = -1
		for i = 0; i < len(chunks); i = j {
			j = i + 1
			for j < len(chunks) && chunks[j] == chunks[j-1]+1 {
				j++
			}
			length := (j - i) * c
			rename += length
			s, err = NewSkel((chunks[j-1]+1)*c-1, length, rename)
			if err != nil {
				return nil, err
			}
			if err = b.Add(s); err != nil {
				return nil, err
			}
		}
		if m, err = b.Freeze(); err != nil {
			return nil, err
		}
		masks = append(masks, m)
	}
	return masks, nil
}

// DumpMasks renders every mask on its own line, one character per read base.
func (p *plan) DumpMasks() string {
	masks, err := p.Masks()
	if err != nil {
		return ""
	}
	var sb strings.Builder
	for _, m := range masks {
		sb.WriteString(m.Dump(p.readLength))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (p *plan) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s read=%d window=%d substitutions=%d indels=%d indelLength=%d",
		p.name, p.readLength, p.windowLength, p.substitutions, p.indels, p.indelLength)
	if !p.valid {
		sb.WriteString(" :invalid")
		return sb.String()
	}
	fmt.Fprintf(&sb, "\n  chunkLength=%d chunks=%d windowChunks=%d", p.chunkLength, p.numberChunks, p.windowChunks)
	fmt.Fprintf(&sb, "\n  windowActual=%d readActual=%d windowBits=%d", p.WindowActual(), p.ReadActual(), p.WindowBits())
	fmt.Fprintf(&sb, "\n  masks=%d", p.numberMasks)
	return sb.String()
}

// Skeleton picks the chunk partition covering the most window bases within
// MaxMasks masks, preferring fewer masks on ties. One-base chunks with one
// window chunk always fit, so every accepted input gives a plan.
type Skeleton struct {
	plan
}

// New creates a Skeleton. Check Valid() before using the masks.
func New(readLength, windowLength, substitutions, indels, indelLength int) *Skeleton {
	sk := &Skeleton{plan{
		name:          "Skeleton",
		readLength:    readLength,
		windowLength:  windowLength,
		substitutions: substitutions,
		indels:        indels,
		indelLength:   indelLength,
	}}
	if !sk.checkInputs() {
		return sk
	}

	var bestWC, bestC, bestMasks, best int
	var wc, c, n int
	var ok bool
	for c = 1; c <= windowLength; c++ {
		for wc = 1; wc*c <= windowLength; wc++ {
			if n, ok = sk.fits(c, wc); !ok {
				continue
			}
			if wc*c > best || (wc*c == best && n < bestMasks) {
				best, bestWC, bestC, bestMasks = wc*c, wc, c, n
			}
		}
	}
	if best == 0 {
		return sk
	}
	sk.accept(bestC, bestWC, bestMasks)
	return sk
}

// SkeletonAlt takes the longest chunk that fits, which may cover fewer
// window bases than Skeleton. Over MaxMasks, fewer chunks of that length
// are used. Indels are limited to one base.
type SkeletonAlt struct {
	plan
}

// NewAlt creates a SkeletonAlt. Check Valid() before using the masks.
func NewAlt(readLength, windowLength, substitutions, indels int) *SkeletonAlt {
	sk := &SkeletonAlt{plan{
		name:          "SkeletonAlt",
		readLength:    readLength,
		windowLength:  windowLength,
		substitutions: substitutions,
		indels:        indels,
		indelLength:   1,
	}}
	if !sk.checkInputs() {
		return sk
	}

	var wc, n int
	var ok bool
	for c := windowLength; c >= 1; c-- {
		if (windowLength/c+substitutions)*c > readLength {
			continue
		}
		for wc = windowLength / c; wc >= 1; wc-- {
			if n, ok = sk.fits(c, wc); ok {
				sk.accept(c, wc, n)
				return sk
			}
		}
	}
	return sk
}
