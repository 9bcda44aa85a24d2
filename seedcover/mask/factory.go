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

// Package mask turns a seed plan into seed functions: every mask of the plan
// is applied to the bit planes of the last bases, giving one seed hash per
// mask for reads and one or more (with indel variants) for templates.
package mask

import (
	"github.com/RealTimeGenomics/rtg-core-sub041/seedcover/extract"
	"github.com/RealTimeGenomics/rtg-core-sub041/seedcover/seqs"
	"github.com/RealTimeGenomics/rtg-core-sub041/seedcover/skeleton"
	"github.com/pkg/errors"
)

// ErrInvalidPlan means a factory is requested from an infeasible plan.
var ErrInvalidPlan = errors.New("mask: invalid seed plan")

// ReadCall receives read seeds.
// readID is 2*read, plus 1 for the reverse complement.
type ReadCall interface {
	ReadCall(readID uint32, hash uint64, index int)
}

// TemplateCall receives template seeds.
type TemplateCall interface {
	Set(name string, length int)
	TemplateCall(endPosition int32, hash uint64, index int)
	EndSequence()
	Done()
}

// TemplateCloner is a TemplateCall that can be cloned for a worker
// scanning one region. ThreadFinish is called on the clone when the
// region is done.
type TemplateCloner interface {
	TemplateCall
	ThreadClone(r seqs.Region) (TemplateCloner, error)
	ThreadFinish() error
}

// Factory creates seed functions of a plan.
type Factory struct {
	planner  skeleton.Planner
	masks    []*skeleton.SingleMask
	cgAdjust bool
}

// NewFactory creates a Factory. cgAdjust applies CGAdjust to every hash.
func NewFactory(p skeleton.Planner, cgAdjust bool) (*Factory, error) {
	if !p.Valid() {
		return nil, errors.Wrapf(ErrInvalidPlan, "%s", p)
	}
	masks, err := p.Masks()
	if err != nil {
		return nil, errors.Wrapf(err, "%s", p)
	}
	return &Factory{planner: p, masks: masks, cgAdjust: cgAdjust}, nil
}

// Planner returns the plan.
func (f *Factory) Planner() skeleton.Planner { return f.planner }

// NumberWindows returns the number of masks, i.e., seeds per position.
func (f *Factory) NumberWindows() int { return len(f.masks) }

// WindowBits returns the number of bases covered by a mask, in bits.
func (f *Factory) WindowBits() int { return f.planner.WindowBits() }

// HashBits returns the width of seed hashes.
func (f *Factory) HashBits() int { return f.planner.WindowBits() }

// Span returns the number of last bases the seeds of a position depend on,
// the read length plus room for indel variants.
func (f *Factory) Span() int {
	if f.planner.Indels() > 0 {
		return f.planner.ReadActual() + f.planner.IndelLength()
	}
	return f.planner.ReadActual()
}

// Create creates a Function. Either hook may be nil.
func (f *Factory) Create(read ReadCall, tmpl TemplateCall) *Function {
	fn := &Function{
		read: read,
		tmpl: tmpl,
		full: f.planner.ReadActual(),
	}
	wa := f.planner.WindowActual()
	fn.reads = make([]*extract.Extractor, len(f.masks))
	fn.templates = make([]*extract.Extractor, len(f.masks))
	for i, m := range f.masks {
		idx := i
		fn.reads[i] = extract.New(m, func(h uint64) {
			fn.read.ReadCall(fn.readID, h, idx)
		})
		fn.templates[i] = extract.New(m, func(h uint64) {
			fn.tmpl.TemplateCall(fn.endPosition, h, idx)
		})
		if f.cgAdjust {
			fn.reads[i].SetTransform(func(h uint64) uint64 { return CGAdjust(h, wa) })
			fn.templates[i].SetTransform(func(h uint64) uint64 { return CGAdjust(h, wa) })
		}
	}
	return fn
}

// CGAdjust rotates each of the two planes of a hash left by one inside
// its windowActual bits, so the top bit of a plane moves to its bottom.
//
// This stands in for the chemistry-specific permutation that moves the two
// gap bits of a hash; the exact permutation is not known here, so hashes
// computed with cgAdjust may differ from those of other implementations.
func CGAdjust(h uint64, windowActual int) uint64 {
	w := uint(windowActual)
	m := uint64(1)<<w - 1
	lo := h & m
	hi := h >> w & m
	lo = (lo<<1 | lo>>(w-1)) & m
	hi = (hi<<1 | hi>>(w-1)) & m
	return hi<<w | lo
}

// Function holds the bit planes of the last 64 bases and emits seeds of
// all masks. It is not safe for concurrent use; create one per goroutine.
type Function struct {
	read ReadCall
	tmpl TemplateCall

	reads     []*extract.Extractor
	templates []*extract.Extractor

	v0, v1 uint64 // low and high bits of 2-bit codes, the last base at bit 0
	n      int
	full   int

	readID      uint32
	endPosition int32
}

// Step adds one nucleotide code. An unknown code clears the planes.
func (fn *Function) Step(code byte) {
	if code > 3 {
		fn.Reset()
		return
	}
	fn.v0 = fn.v0<<1 | uint64(code&1)
	fn.v1 = fn.v1<<1 | uint64(code>>1)
	fn.n++
}

// IsFull tells whether the planes hold a whole read length.
func (fn *Function) IsFull() bool { return fn.n >= fn.full }

// Reset clears the planes.
func (fn *Function) Reset() {
	fn.v0, fn.v1 = 0, 0
	fn.n = 0
}

// Planes returns the two bit planes.
func (fn *Function) Planes() (v0, v1 uint64) { return fn.v0, fn.v1 }

// ReadAll emits the exact seed of every mask to the read hook.
func (fn *Function) ReadAll(readID uint32, reverse bool) {
	if fn.read == nil {
		return
	}
	fn.readID = readID << 1
	if reverse {
		fn.readID |= 1
	}
	for _, e := range fn.reads {
		e.Emit(fn.v0, fn.v1)
	}
}

// TemplateAll emits the seed of every mask and their indel variants
// to the template hook.
func (fn *Function) TemplateAll(endPosition int32) {
	if fn.tmpl == nil {
		return
	}
	fn.endPosition = endPosition
	for _, e := range fn.templates {
		e.EmitIndelVariants(fn.v0, fn.v1)
	}
}

// Set starts a template.
func (fn *Function) Set(name string, length int) {
	if fn.tmpl != nil {
		fn.tmpl.Set(name, length)
	}
}

// EndSequence ends a template.
func (fn *Function) EndSequence() {
	if fn.tmpl != nil {
		fn.tmpl.EndSequence()
	}
}

// Done ends all templates.
func (fn *Function) Done() {
	if fn.tmpl != nil {
		fn.tmpl.Done()
	}
}
