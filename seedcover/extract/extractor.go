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

// Package extract applies frozen masks to packed bit planes.
package extract

import (
	"github.com/RealTimeGenomics/rtg-core-sub041/seedcover/skeleton"
)

// Extractor binds one frozen mask to a hook receiving seed hashes.
type Extractor struct {
	mask      *skeleton.SingleMask
	hook      func(h uint64)
	transform func(h uint64) uint64

	emit func(h uint64) // hook, with the transform applied
}

// New creates an Extractor.
func New(mask *skeleton.SingleMask, hook func(h uint64)) *Extractor {
	e := &Extractor{mask: mask, hook: hook}
	e.emit = hook
	return e
}

// SetTransform sets a function applied to every hash before the hook.
func (e *Extractor) SetTransform(fn func(h uint64) uint64) {
	e.transform = fn
	if fn == nil {
		e.emit = e.hook
		return
	}
	e.emit = func(h uint64) { e.hook(fn(h)) }
}

// Mask returns the bound mask.
func (e *Extractor) Mask() *skeleton.SingleMask { return e.mask }

// Emit calls the hook once with the exact seed hash.
func (e *Extractor) Emit(v0, v1 uint64) {
	e.emit(e.mask.Mask(v0, v1))
}

// EmitIndelVariants calls the hook for the exact seed hash
// and every single-indel variant.
func (e *Extractor) EmitIndelVariants(v0, v1 uint64) {
	e.mask.MaskIndel(v0, v1, e.emit)
}
