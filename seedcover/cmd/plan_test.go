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

package cmd

import (
	"path/filepath"
	"testing"
)

func TestPlanConfig(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plan.toml")

	for _, conf := range []*PlanConfig{
		{ReadLength: 36, Window: 12, Substitutions: 2, Indels: 1, IndelLength: 1},
		{ReadLength: 36, Window: 18, Substitutions: 1, Indels: 1, IndelLength: 3, CGAdjust: true},
		{Alt: true, ReadLength: 24, Window: 8, Substitutions: 1, Indels: 1},
	} {
		if err := writePlanConfig(file, conf); err != nil {
			t.Error(err)
			return
		}
		conf2, err := readPlanConfig(file)
		if err != nil {
			t.Error(err)
			return
		}
		if *conf2 != *conf {
			t.Errorf("expected: %+v, returned: %+v", *conf, *conf2)
		}
		if conf2.Planner().String() != conf.Planner().String() {
			t.Errorf("expected: %s, returned: %s", conf.Planner(), conf2.Planner())
		}
	}
}
