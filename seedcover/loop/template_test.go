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

package loop_test

import (
	"fmt"
	"testing"

	"github.com/RealTimeGenomics/rtg-core-sub041/seedcover/loop"
	"github.com/RealTimeGenomics/rtg-core-sub041/seedcover/mask"
	"github.com/RealTimeGenomics/rtg-core-sub041/seedcover/seqs"
	"github.com/RealTimeGenomics/rtg-core-sub041/seedcover/skeleton"
)

type seed struct {
	name  string
	pos   int32
	hash  uint64
	index int
}

type collector struct {
	reads []seed
	seeds []seed
	name  string
	done  bool
}

func (c *collector) ReadCall(readID uint32, hash uint64, index int) {
	c.reads = append(c.reads, seed{pos: int32(readID), hash: hash, index: index})
}

func (c *collector) Set(name string, length int) { c.name = name }

func (c *collector) TemplateCall(endPosition int32, hash uint64, index int) {
	c.seeds = append(c.seeds, seed{c.name, endPosition, hash, index})
}

func (c *collector) EndSequence() { c.name = "" }

func (c *collector) Done() { c.done = true }

func TestTemplateAndReadLoops(t *testing.T) {
	f, err := mask.NewFactory(skeleton.New(4, 4, 0, 0, 1), false)
	if err != nil {
		t.Error(err)
		return
	}

	reads := seqs.NewMemory(seqs.Bidirectional)
	reads.AddLetters("r1", []byte("TGCA"))
	rc := &collector{}
	buf, _ := loop.MakeBuffer(reads)
	if _, err = loop.NewReadLoop(f.Create(rc, nil), true).ExecLoop(reads, buf); err != nil {
		t.Error(err)
		return
	}
	// TGCA is its own reverse complement
	if len(rc.reads) != 2 || rc.reads[0].hash != 0b11001010 || rc.reads[1].hash != 0b11001010 ||
		rc.reads[0].pos != 0 || rc.reads[1].pos != 1 {
		t.Errorf("unexpected read seeds: %v", rc.reads)
		return
	}

	templates := seqs.NewMemory(seqs.Unidirectional)
	templates.AddLetters("t1", []byte("AAAATGCAAAAAAAAAAAAAAAA"))
	tc := &collector{}
	buf, _ = loop.MakeBuffer(templates)
	n, err := loop.NewTemplateLoop(f.Create(nil, tc), 4).ExecLoop(templates, buf)
	if err != nil {
		t.Error(err)
		return
	}
	if n != 23 || !tc.done {
		t.Errorf("unexpected scan: %d bases, done: %v", n, tc.done)
	}
	var matches []seed
	for _, s := range tc.seeds {
		if s.hash == rc.reads[0].hash {
			matches = append(matches, s)
		}
	}
	if len(tc.seeds) != 20 || len(matches) != 1 || matches[0].pos != 7 || matches[0].name != "t1" {
		t.Errorf("unexpected template seeds: %d, matches: %v", len(tc.seeds), matches)
	}
}

func TestTemplateRegions(t *testing.T) {
	sk := skeleton.New(12, 6, 2, 1, 1)
	f, err := mask.NewFactory(sk, true)
	if err != nil {
		t.Error(err)
		return
	}

	templates := seqs.NewMemory(seqs.Unidirectional)
	templates.AddLetters("t1", []byte("ACGGTACGTTAGCNAGTCAGGCATCAGGACTTAGCAGTACGACTAGCGATCAGCATCGA"))
	templates.AddLetters("t2", []byte("GGGATCAGCATCAGACTAGCACG"))

	whole := mask.NewCollector()
	buf, _ := loop.MakeBuffer(templates)
	if _, err = loop.NewTemplateLoop(f.Create(nil, whole), f.Span()).ExecLoop(templates, buf); err != nil {
		t.Error(err)
		return
	}
	if !whole.IsDone() || whole.Sequences() != 2 {
		t.Errorf("unexpected events: done: %v, sequences: %d", whole.IsDone(), whole.Sequences())
	}

	regions, _ := loop.SplitRegions(templates, 6)
	merged := mask.NewCollector()
	err = loop.RunParallel(regions, 3, func(i int, r seqs.Region) error {
		clone, err := merged.ThreadClone(r)
		if err != nil {
			return err
		}
		if c, ok := clone.(*mask.Collector); !ok || c.Region() != r {
			return fmt.Errorf("clone of region %s holds another region", r)
		}
		buf := make([]byte, templates.MaxLength())
		if _, err = loop.NewTemplateLoop(f.Create(nil, clone), f.Span()).ExecRegion(templates, r, buf); err != nil {
			return err
		}
		return clone.ThreadFinish()
	})
	if err != nil {
		t.Error(err)
		return
	}

	a, b := whole.Seeds(), merged.Seeds()
	if len(a) == 0 || fmt.Sprint(a) != fmt.Sprint(b) {
		t.Errorf("%d seeds from regions, %d from whole templates", len(b), len(a))
	}
}
