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
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/RealTimeGenomics/rtg-core-sub041/seedcover/mask"
	"github.com/RealTimeGenomics/rtg-core-sub041/seedcover/skeleton"
	"github.com/RealTimeGenomics/rtg-core-sub041/seedcover/util"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan spaced seeds for reads of a given length and error tolerance",
	Long: `Plan spaced seeds for reads of a given length and error tolerance

Attention:
  1. A read is cut into chunks, a seed covers some of them, and all
     combinations are used. The report shows the chunk partition and the
     number of seeds (masks).
  2. Use -d/--dump to draw the masks, 'x' for bases in a seed, from the
     first base of the read to the last.
  3. The plan can be saved to a TOML file with -o/--out-file and used by
     "seedcover seeds" via -c/--plan.

`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)

		var fhLog *os.File
		if opt.Log2File {
			fhLog = addLog(opt.LogFile, opt.Verbose)
		}

		outputLog := opt.Verbose || opt.Log2File

		timeStart := time.Now()
		defer func() {
			if outputLog {
				log.Info()
				log.Infof("elapsed time: %s", time.Since(timeStart))
				log.Info()
			}
			if opt.Log2File {
				fhLog.Close()
			}
		}()

		// ---------------------------------------------------------------

		conf := getPlanConfig(cmd)
		dump := getFlagBool(cmd, "dump")
		outFile := getFlagPath(cmd, "out-file")

		p := conf.Planner()
		if !p.Valid() {
			checkError(errors.Errorf("no complete seed cover for the parameters: %s", p))
		}

		fmt.Println(p)

		n, err := mask.IndelCount(p)
		checkError(err)
		fmt.Printf("  seeds per template position (with indel variants): %d\n", n)

		masks, err := p.Masks()
		checkError(err)
		covered := make([]uint64, len(masks))
		for i, m := range masks {
			covered[i] = m.Covered()
		}
		counts := util.CountBits(covered, p.ReadLength())
		util.ReverseInts(counts)
		cs := make([]string, len(counts))
		for i, c := range counts {
			cs[i] = fmt.Sprintf("%d", c)
		}
		fmt.Printf("  masks covering each read base: %s\n", strings.Join(cs, " "))

		if dump {
			fmt.Println()
			fmt.Print(p.DumpMasks())
		}

		if outFile != "" {
			checkError(writePlanConfig(outFile, conf))
			if outputLog {
				log.Infof("plan saved to %s", outFile)
			}
		}
	},
}

func init() {
	RootCmd.AddCommand(planCmd)

	addPlanFlags(planCmd)

	planCmd.Flags().BoolP("dump", "d", false,
		formatFlagUsage(`Draw all masks.`))

	planCmd.Flags().StringP("out-file", "o", "",
		formatFlagUsage(`Save the plan to a TOML file.`))

	planCmd.SetUsageTemplate(usageTemplate("[-r <read length>] [-w <window>] [-s <substitutions>] [-i <indels>] [-d] [-o plan.toml]"))
}

// PlanConfig is the seed plan saved in a TOML file.
type PlanConfig struct {
	Alt           bool `toml:"alt"`
	ReadLength    int  `toml:"read_length"`
	Window        int  `toml:"window"`
	Substitutions int  `toml:"substitutions"`
	Indels        int  `toml:"indels"`
	IndelLength   int  `toml:"indel_length"`
	CGAdjust      bool `toml:"cg_adjust"`
}

// Planner creates the planner of the config.
func (c *PlanConfig) Planner() skeleton.Planner {
	if c.Alt {
		return skeleton.NewAlt(c.ReadLength, c.Window, c.Substitutions, c.Indels)
	}
	return skeleton.New(c.ReadLength, c.Window, c.Substitutions, c.Indels, c.IndelLength)
}

func readPlanConfig(file string) (*PlanConfig, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrapf(err, "read plan file: %s", file)
	}
	conf := &PlanConfig{IndelLength: 1}
	if err = toml.Unmarshal(data, conf); err != nil {
		return nil, errors.Wrapf(err, "parse plan file: %s", file)
	}
	return conf, nil
}

func writePlanConfig(file string, conf *PlanConfig) error {
	data, err := toml.Marshal(conf)
	if err != nil {
		return err
	}
	return os.WriteFile(file, data, 0644)
}

func addPlanFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("plan", "c", "",
		formatFlagUsage(`Plan file created by "seedcover plan -o". Flags of the plan are ignored if given.`))

	cmd.Flags().IntP("read-length", "r", 36,
		formatFlagUsage(`Read length, <= 64.`))

	cmd.Flags().IntP("window", "w", 12,
		formatFlagUsage(`Number of bases in a seed, <= 32.`))

	cmd.Flags().IntP("substitutions", "s", 2,
		formatFlagUsage(`Number of substitutions tolerated.`))

	cmd.Flags().IntP("indels", "i", 1,
		formatFlagUsage(`Number of indels tolerated, only 0 and 1 make a difference.`))

	cmd.Flags().IntP("indel-length", "l", 1,
		formatFlagUsage(`Maximum indel length.`))

	cmd.Flags().BoolP("alt", "", false,
		formatFlagUsage(`Use the alternative planner, which takes the longest chunks and one-base indels.`))

	cmd.Flags().BoolP("cg-adjust", "", false,
		formatFlagUsage(`Rotate the two bit planes of every seed hash by one base.`))
}

func getPlanConfig(cmd *cobra.Command) *PlanConfig {
	file := getFlagPath(cmd, "plan")
	if file != "" {
		conf, err := readPlanConfig(file)
		checkError(err)
		return conf
	}
	return &PlanConfig{
		Alt:           getFlagBool(cmd, "alt"),
		ReadLength:    getFlagPositiveInt(cmd, "read-length"),
		Window:        getFlagPositiveInt(cmd, "window"),
		Substitutions: getFlagNonNegativeInt(cmd, "substitutions"),
		Indels:        getFlagNonNegativeInt(cmd, "indels"),
		IndelLength:   getFlagPositiveInt(cmd, "indel-length"),
		CGAdjust:      getFlagBool(cmd, "cg-adjust"),
	}
}
