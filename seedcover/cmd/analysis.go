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
	"os"
	"strings"
	"time"

	"github.com/RealTimeGenomics/rtg-core-sub041/seedcover/mask"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

var analysisCmd = &cobra.Command{
	Use:   "analysis",
	Short: "Estimate costs of seed plans of all window lengths",
	Long: `Estimate costs of seed plans of all window lengths

Columns:
  window        window length asked for
  windowActual  bases in a seed
  chunk         chunk length
  masks         number of seeds per read
  candidates    seeds per template position, with indel variants
  buildCost     seeds stored for the genome: masks x genome size
  hits          expected random hits of one seed: genome size / 4^windowActual
  searchCost    candidates x (1 + hits)

The numbers are only estimates for choosing parameters.

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

		readLength := getFlagPositiveInt(cmd, "read-length")
		substitutions := getFlagNonNegativeInt(cmd, "substitutions")
		indels := getFlagNonNegativeInt(cmd, "indels")
		indelLength := getFlagPositiveInt(cmd, "indel-length")
		genomeSize := getFlagInt64(cmd, "genome-size")
		if genomeSize <= 0 {
			checkError(errors.Errorf("the value of flag -g/--genome-size should be positive"))
		}
		alt := getFlagBool(cmd, "alt")
		outFile := getFlagPath(cmd, "out-file")
		plotFile := getFlagPath(cmd, "plot")

		rows, err := mask.Analyze(readLength, substitutions, indels, indelLength, genomeSize, alt)
		checkError(err)
		if len(rows) == 0 {
			log.Warningf("no feasible window length for read length %d and %d substitutions", readLength, substitutions)
			return
		}

		outfh, gw, w, err := outStream(outFile, strings.HasSuffix(outFile, ".gz"), opt.CompressionLevel)
		checkError(err)
		defer func() {
			outfh.Flush()
			if gw != nil {
				gw.Close()
			}
			w.Close()
		}()

		checkError(mask.WriteRows(outfh, rows))

		if plotFile != "" {
			checkError(plotRows(rows, plotFile))
			if outputLog {
				log.Infof("plot saved to %s", plotFile)
			}
		}
	},
}

func plotRows(rows []mask.Row, file string) error {
	p := plot.New()
	p.Title.Text = "Costs of seed plans"
	p.X.Label.Text = "window length"
	p.Y.Label.Text = "cost"
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}

	build := make(plotter.XYs, len(rows))
	search := make(plotter.XYs, len(rows))
	for i, r := range rows {
		build[i].X = float64(r.WindowLength)
		build[i].Y = r.BuildCost
		search[i].X = float64(r.WindowLength)
		search[i].Y = r.SearchCost
	}
	if err := plotutil.AddLinePoints(p, "build", build, "search", search); err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, file)
}

func init() {
	RootCmd.AddCommand(analysisCmd)

	analysisCmd.Flags().IntP("read-length", "r", 36,
		formatFlagUsage(`Read length, <= 64.`))

	analysisCmd.Flags().IntP("substitutions", "s", 2,
		formatFlagUsage(`Number of substitutions tolerated.`))

	analysisCmd.Flags().IntP("indels", "i", 1,
		formatFlagUsage(`Number of indels tolerated.`))

	analysisCmd.Flags().IntP("indel-length", "l", 1,
		formatFlagUsage(`Maximum indel length.`))

	analysisCmd.Flags().Int64P("genome-size", "g", 3000000000,
		formatFlagUsage(`Genome size.`))

	analysisCmd.Flags().BoolP("alt", "", false,
		formatFlagUsage(`Use the alternative planner.`))

	analysisCmd.Flags().StringP("out-file", "o", "-",
		formatFlagUsage(`Out file, supports a ".gz" suffix ("-" for stdout).`))

	analysisCmd.Flags().StringP("plot", "", "",
		formatFlagUsage(`Plot the costs to a file, the format is decided by the suffix, e.g., ".png", ".pdf".`))

	analysisCmd.SetUsageTemplate(usageTemplate("[-r <read length>] [-s <substitutions>] [-i <indels>] [-g <genome size>] [--plot costs.png]"))
}
