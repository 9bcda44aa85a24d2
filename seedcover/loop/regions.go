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
	"fmt"
	"sync"

	"github.com/RealTimeGenomics/rtg-core-sub041/seedcover/seqs"
	"github.com/pkg/errors"
	"github.com/rdleal/intervalst/interval"
)

// ErrOverlappingRegions means two regions of a sequence overlap.
var ErrOverlappingRegions = errors.New("loop: overlapping regions")

// SplitRegions cuts all sequences of a source into regions of similar sizes,
// about n regions in total. A sequence is never merged with another.
func SplitRegions(src seqs.Source, n int) ([]seqs.Region, error) {
	if n < 1 {
		n = 1
	}
	var total int64
	lengths := make([]int64, src.NumberSequences())
	var err error
	for i := range lengths {
		lengths[i], err = src.Length(i)
		if err != nil {
			return nil, err
		}
		total += lengths[i]
	}
	size := (total + int64(n) - 1) / int64(n)
	if size < 1 {
		size = 1
	}

	regions := make([]seqs.Region, 0, n+len(lengths))
	var start, end int64
	for i, length := range lengths {
		if length == 0 {
			regions = append(regions, seqs.Region{Sequence: i})
			continue
		}
		for start = 0; start < length; start = end {
			end = start + size
			if end > length {
				end = length
			}
			regions = append(regions, seqs.Region{Sequence: i, Start: start, End: end})
		}
	}
	return regions, nil
}

// CheckRegions returns an error if any two regions of a sequence overlap.
func CheckRegions(regions []seqs.Region) error {
	cmpFn := func(x, y int64) int {
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	}
	trees := make(map[int]*interval.SearchTree[int, int64])
	var tree *interval.SearchTree[int, int64]
	var ok bool
	var j int
	for i, r := range regions {
		if r.End < r.Start {
			return fmt.Errorf("loop: invalid region: %s", r)
		}
		if r.End == r.Start {
			continue
		}
		if tree, ok = trees[r.Sequence]; !ok {
			tree = interval.NewSearchTree[int, int64](cmpFn)
			trees[r.Sequence] = tree
		}
		// intervals of the tree are closed
		if j, ok = tree.AnyIntersection(r.Start, r.End-1); ok {
			return errors.Wrapf(ErrOverlappingRegions, "%s and %s", regions[j], r)
		}
		if err := tree.Insert(r.Start, r.End-1, i); err != nil {
			return errors.Wrapf(err, "region %s", r)
		}
	}
	return nil
}

// RunParallel calls worker on every region with at most threads goroutines,
// and returns the first error.
// Workers must not share mutable state.
func RunParallel(regions []seqs.Region, threads int, worker func(i int, r seqs.Region) error) error {
	if threads < 1 {
		threads = 1
	}
	var wg sync.WaitGroup
	tokens := make(chan int, threads)
	var mu sync.Mutex
	var first error
	for i, r := range regions {
		wg.Add(1)
		tokens <- 1
		go func(i int, r seqs.Region) {
			defer func() {
				wg.Done()
				<-tokens
			}()

			if err := worker(i, r); err != nil {
				mu.Lock()
				if first == nil {
					first = err
				}
				mu.Unlock()
			}
		}(i, r)
	}
	wg.Wait()
	return first
}
