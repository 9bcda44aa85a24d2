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
	"fmt"
	"io"
	"math"

	"github.com/RealTimeGenomics/rtg-core-sub041/seedcover/skeleton"
	"github.com/pkg/errors"
)

// IndelCount returns the number of template seeds per position,
// indel variants included, over all masks of a plan.
// The masks are not built.
func IndelCount(p skeleton.Planner) (int64, error) {
	if !p.Valid() {
		return 0, errors.Wrapf(ErrInvalidPlan, "%s", p)
	}
	return p.IndelCount(), nil
}

// Row is the estimate of one window length.
type Row struct {
	WindowLength int
	WindowActual int
	ChunkLength  int
	Masks        int
	Candidates   int64

	BuildCost  float64 // seeds stored: masks x genome size
	Hits       float64 // random hits of one seed
	SearchCost float64 // candidates x (1 + hits)
}

// Analyze estimates costs of every feasible window length for reads of the
// given tolerance. alt uses SkeletonAlt, which only models one-base indels.
func Analyze(readLength, substitutions, indels, indelLength int, genomeSize int64, alt bool) ([]Row, error) {
	rows := make([]Row, 0, skeleton.MaxWindowLength)
	var p skeleton.Planner
	for w := 1; w <= skeleton.MaxWindowLength && w <= readLength; w++ {
		if alt {
			p = skeleton.NewAlt(readLength, w, substitutions, indels)
		} else {
			p = skeleton.New(readLength, w, substitutions, indels, indelLength)
		}
		if !p.Valid() {
			continue
		}
		candidates, err := IndelCount(p)
		if err != nil {
			return nil, err
		}
		hits := float64(genomeSize) / math.Pow(4, float64(p.WindowActual()))
		rows = append(rows, Row{
			WindowLength: w,
			WindowActual: p.WindowActual(),
			ChunkLength:  p.ChunkLength(),
			Masks:        p.NumberMasks(),
			Candidates:   candidates,
			BuildCost:    float64(p.NumberMasks()) * float64(genomeSize),
			Hits:         hits,
			SearchCost:   float64(candidates) * (1 + hits),
		})
	}
	return rows, nil
}

// WriteRows writes rows as a tab-delimited table with a header line.
func WriteRows(w io.Writer, rows []Row) error {
	_, err := fmt.Fprintf(w, "window\twindowActual\tchunk\tmasks\tcandidates\tbuildCost\thits\tsearchCost\n")
	if err != nil {
		return err
	}
	for _, r := range rows {
		_, err = fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\t%.4g\t%.4g\t%.4g\n",
			r.WindowLength, r.WindowActual, r.ChunkLength, r.Masks, r.Candidates,
			r.BuildCost, r.Hits, r.SearchCost)
		if err != nil {
			return err
		}
	}
	return nil
}
