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
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/RealTimeGenomics/rtg-core-sub041/seedcover/loop"
	"github.com/RealTimeGenomics/rtg-core-sub041/seedcover/mask"
	"github.com/RealTimeGenomics/rtg-core-sub041/seedcover/seqs"
	"github.com/RealTimeGenomics/rtg-core-sub041/seedcover/util"
	"github.com/pkg/errors"
	"github.com/pkg/profile"
	"github.com/shenwei356/bio/seq"
	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

var seedsCmd = &cobra.Command{
	Use:   "seeds",
	Short: "Compute spaced seeds of templates or reads",
	Long: `Compute spaced seeds of templates or reads

Templates (default):
  Seeds of all masks, and their indel variants, are computed at every
  position. Sequences are split into regions scanned in parallel.
  Output columns: sequence, end position (0-based), mask, hash.

Reads (-R/--reads):
  Seeds of all masks are computed from the last bases of every read,
  and of its reverse complement with --reverse.
  Output columns: read index, strand, mask, hash.

  Use --region to only compute seeds ending in some regions, e.g.,
  --region chr1:1001:2000 (1-based, both ends included). Regions
  must not overlap.

Bases other than ACGT break seeds.

`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)
		seq.ValidateSeq = false

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

		switch getFlagString(cmd, "profile") {
		case "":
		case "cpu":
			defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop()
		case "mem":
			defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet).Stop()
		default:
			checkError(errors.Errorf("invalid value of --profile, available: cpu, mem"))
		}

		// ---------------------------------------------------------------

		conf := getPlanConfig(cmd)
		reads := getFlagBool(cmd, "reads")
		reverse := getFlagBool(cmd, "reverse")
		statsOnly := getFlagBool(cmd, "stats-only")
		regionValues := getFlagStringSlice(cmd, "region")
		if reads && len(regionValues) > 0 {
			checkError(fmt.Errorf("flag --region can not be used with -R/--reads"))
		}
		outFile := getFlagPath(cmd, "out-file")

		p := conf.Planner()
		factory, err := mask.NewFactory(p, conf.CGAdjust)
		checkError(err)

		if outputLog {
			log.Infof("seed plan: %s", strings.ReplaceAll(p.String(), "\n", ""))
			log.Infof("  masks: %d, hash bits: %d", factory.NumberWindows(), factory.HashBits())
		}

		files := getInputFiles(cmd, args, opt)
		if outputLog {
			log.Infof("reading %d sequence file(s) ...", len(files))
		}
		src, err := seqs.LoadFastx(files, seqs.Unidirectional, 1)
		checkError(err)
		if outputLog {
			log.Infof("  %d sequence(s) loaded", src.NumberSequences())
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

		var hashes []uint64
		if reads {
			rw := &readWriter{w: outfh, statsOnly: statsOnly}
			buf, err := loop.MakeBuffer(src)
			checkError(err)
			_, err = loop.NewReadLoop(factory.Create(rw, nil), reverse).ExecLoop(src, buf)
			checkError(err)
			hashes = rw.hashes
		} else {
			var regions []seqs.Region
			if len(regionValues) > 0 {
				regions, err = parseRegions(src, regionValues)
				checkError(err)
			} else {
				regions, err = loop.SplitRegions(src, opt.NumCPUs*4)
				checkError(err)
			}
			hashes = templateSeeds(factory, src, regions, opt, outfh, statsOnly)
		}

		n := len(hashes)
		digest := util.Digest(hashes, 1)
		util.UniqUint64s(&hashes)
		if outputLog {
			log.Infof("seeds: %d, distinct hashes: %d, digest: %016x", n, len(hashes), digest)
		}
	},
}

var reRegion = regexp.MustCompile(`^(.+):(\d+):(\d+)$`)

// parseRegions parses regions in the format of seqid:begin:end (1-based,
// both ends included), and checks that no two regions overlap.
func parseRegions(src seqs.Source, values []string) ([]seqs.Region, error) {
	ids := make(map[string]int, src.NumberSequences())
	for i := 0; i < src.NumberSequences(); i++ {
		ids[src.Name(i)] = i
	}

	regions := make([]seqs.Region, 0, len(values))
	var m []string
	var i int
	var ok bool
	var start, end, length int64
	var err error
	for _, v := range values {
		m = reRegion.FindStringSubmatch(v)
		if m == nil {
			return nil, fmt.Errorf("invalid region: %s, the format is seqid:begin:end (1-based)", v)
		}
		if i, ok = ids[m[1]]; !ok {
			return nil, fmt.Errorf("sequence not found: %s", m[1])
		}
		start, err = strconv.ParseInt(m[2], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "region %s", v)
		}
		end, err = strconv.ParseInt(m[3], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "region %s", v)
		}
		if start <= 0 || end <= 0 {
			return nil, fmt.Errorf("region %s: both begin and end position should not be <= 0", v)
		}
		if start > end {
			return nil, fmt.Errorf("region %s: begin position should be <= end position", v)
		}
		if length, err = src.Length(i); err != nil {
			return nil, err
		}
		if end > length {
			return nil, fmt.Errorf("region %s: end position exceeds the sequence length %d", v, length)
		}
		regions = append(regions, seqs.Region{Sequence: i, Start: start - 1, End: end})
	}

	if err = loop.CheckRegions(regions); err != nil {
		return nil, err
	}
	return regions, nil
}

func templateSeeds(factory *mask.Factory, src *seqs.Memory, regions []seqs.Region, opt *Options,
	outfh *bufio.Writer, statsOnly bool) []uint64 {
	var err error

	// process bar
	var pbs *mpb.Progress
	var bar *mpb.Bar
	var chDuration chan time.Duration
	var doneDuration chan int
	if opt.Verbose {
		pbs = mpb.New(mpb.WithWidth(40), mpb.WithOutput(os.Stderr))
		bar = pbs.AddBar(int64(len(regions)),
			mpb.PrependDecorators(
				decor.Name("processed regions: ", decor.WC{W: len("processed regions: "), C: decor.DindentRight}),
				decor.Name("", decor.WCSyncSpaceR),
				decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
			),
			mpb.AppendDecorators(
				decor.Name("ETA: ", decor.WC{W: len("ETA: ")}),
				decor.EwmaETA(decor.ET_STYLE_GO, 10),
				decor.OnComplete(decor.Name(""), ". done"),
			),
		)

		chDuration = make(chan time.Duration, opt.NumCPUs)
		doneDuration = make(chan int)
		go func() {
			for t := range chDuration {
				bar.EwmaIncrement(t)
			}
			doneDuration <- 1
		}()
	}

	collector := mask.NewCollector()
	err = loop.RunParallel(regions, opt.NumCPUs, func(i int, r seqs.Region) error {
		startTime := time.Now()

		clone, err := collector.ThreadClone(r)
		if err != nil {
			return err
		}
		// each worker owns its buffer and seed function
		buf := make([]byte, src.MaxLength())
		tl := loop.NewTemplateLoop(factory.Create(nil, clone), factory.Span())
		if _, err = tl.ExecRegion(src, r, buf); err != nil {
			return errors.Wrapf(err, "region %s", r)
		}
		if err = clone.ThreadFinish(); err != nil {
			return err
		}

		if opt.Verbose {
			chDuration <- time.Since(startTime)
		}
		return nil
	})
	if opt.Verbose {
		close(chDuration)
		<-doneDuration
		pbs.Wait()
	}
	checkError(err)
	collector.Done()

	seeds := collector.Seeds()
	if !statsOnly {
		for _, s := range seeds {
			fmt.Fprintf(outfh, "%s\t%d\t%d\t%d\n", s.Sequence, s.Position, s.Mask, s.Hash)
		}
	}
	return collector.Hashes()
}

type readWriter struct {
	w         *bufio.Writer
	statsOnly bool
	hashes    []uint64
}

func (rw *readWriter) ReadCall(readID uint32, hash uint64, index int) {
	rw.hashes = append(rw.hashes, hash)
	if rw.statsOnly {
		return
	}
	strand := '+'
	if readID&1 == 1 {
		strand = '-'
	}
	fmt.Fprintf(rw.w, "%d\t%c\t%d\t%d\n", readID>>1, strand, index, hash)
}

func init() {
	RootCmd.AddCommand(seedsCmd)

	addPlanFlags(seedsCmd)

	seedsCmd.Flags().StringP("infile-list", "X", "",
		formatFlagUsage(`File of input file list (one file per line). If given, they are appended to files from CLI arguments.`))

	seedsCmd.Flags().StringP("in-dir", "I", "",
		formatFlagUsage(`Input directory containing FASTA/Q files. Directory and file symlinks are followed.`))

	seedsCmd.Flags().BoolP("reads", "R", false,
		formatFlagUsage(`Input sequences are reads.`))

	seedsCmd.Flags().BoolP("reverse", "", false,
		formatFlagUsage(`Also compute seeds of the reverse complement of reads.`))

	seedsCmd.Flags().StringSliceP("region", "", []string{},
		formatFlagUsage(`Only compute template seeds ending in these regions, in the format of seqid:begin:end (1-based).`))

	seedsCmd.Flags().BoolP("stats-only", "", false,
		formatFlagUsage(`Only report the numbers of seeds.`))

	seedsCmd.Flags().StringP("out-file", "o", "-",
		formatFlagUsage(`Out file, supports and recommends a ".gz" suffix ("-" for stdout).`))

	seedsCmd.Flags().StringP("profile", "", "",
		formatFlagUsage(`Write a cpu or mem profile to the current directory.`))

	seedsCmd.SetUsageTemplate(usageTemplate("[-c plan.toml] [-R [--reverse]] { -I <seqs dir> | -X <file list> | <seq files> } [-o out.tsv.gz]"))
}
