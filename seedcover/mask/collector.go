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

package mask

import (
	"sort"
	"sync"

	"github.com/RealTimeGenomics/rtg-core-sub041/seedcover/seqs"
)

// Seed is one template seed.
type Seed struct {
	Sequence string
	Position int32 // end position
	Hash     uint64
	Mask     int
}

// Collector keeps template seeds in memory. Clones collect seeds of
// one region each and hand them to their parent in ThreadFinish.
type Collector struct {
	mu     sync.Mutex
	parent *Collector
	region seqs.Region

	name      string
	seeds     []Seed
	sequences int
	done      bool
}

// NewCollector creates a Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Set starts a template.
func (c *Collector) Set(name string, length int) { c.name = name }

// TemplateCall records a seed.
func (c *Collector) TemplateCall(endPosition int32, hash uint64, index int) {
	c.seeds = append(c.seeds, Seed{Sequence: c.name, Position: endPosition, Hash: hash, Mask: index})
}

// EndSequence ends a template.
func (c *Collector) EndSequence() {
	c.sequences++
	c.name = ""
}

// Done marks the collection complete.
func (c *Collector) Done() { c.done = true }

// ThreadClone creates a collector for one region.
func (c *Collector) ThreadClone(r seqs.Region) (TemplateCloner, error) {
	return &Collector{parent: c, region: r}, nil
}

// ThreadFinish hands the seeds of a clone to its parent.
func (c *Collector) ThreadFinish() error {
	if c.parent == nil {
		return nil
	}
	p := c.parent
	p.mu.Lock()
	p.seeds = append(p.seeds, c.seeds...)
	p.mu.Unlock()
	c.seeds = nil
	return nil
}

// Region returns the region of a clone.
func (c *Collector) Region() seqs.Region { return c.region }

// Sequences returns the number of templates ended.
func (c *Collector) Sequences() int { return c.sequences }

// IsDone tells whether Done has been called.
func (c *Collector) IsDone() bool { return c.done }

// Seeds returns the seeds, sorted by sequence, position, mask and hash.
func (c *Collector) Seeds() []Seed {
	c.mu.Lock()
	defer c.mu.Unlock()
	sort.Slice(c.seeds, func(i, j int) bool {
		a, b := &c.seeds[i], &c.seeds[j]
		if a.Sequence != b.Sequence {
			return a.Sequence < b.Sequence
		}
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		if a.Mask != b.Mask {
			return a.Mask < b.Mask
		}
		return a.Hash < b.Hash
	})
	return c.seeds
}

// Hashes returns the hashes of all seeds.
func (c *Collector) Hashes() []uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	hashes := make([]uint64, len(c.seeds))
	for i, s := range c.seeds {
		hashes[i] = s.Hash
	}
	return hashes
}
