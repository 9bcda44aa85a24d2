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
	"strings"
	"time"

	"github.com/RealTimeGenomics/rtg-core-sub041/seedcover/hash"
	"github.com/RealTimeGenomics/rtg-core-sub041/seedcover/loop"
	"github.com/RealTimeGenomics/rtg-core-sub041/seedcover/seqs"
	"github.com/pkg/errors"
	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/kmers"
	"github.com/spf13/cobra"
)

var hashCmd = &cobra.Command{
	Use:   "hash",
	Short: "Compute rolling hashes of windows of sequences",
	Long: `Compute rolling hashes of windows of sequences

Frames:
  unidirectional  forward strand, frame id = sequence index
  bidirectional   both strands, frame id = 2 x sequence index + strand,
                  or paired hashes of both strands with --reverse
  translated      six reading frames of amino acids, frame id = 6 x index + frame
  protein         amino acid sequences

Output columns: sequence, frame id, end position (0-based), hash, window.
Paired output has an extra column of the reverse-complement hash.

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

		// ---------------------------------------------------------------

		window := getFlagPositiveInt(cmd, "window")
		step := getFlagPositiveInt(cmd, "step")
		reverse := getFlagBool(cmd, "reverse")
		outFile := getFlagPath(cmd, "out-file")

		mode, err := seqs.ParseMode(getFlagString(cmd, "mode"))
		checkError(err)
		style, err := hash.ParseStyle(getFlagString(cmd, "hash"))
		checkError(err)

		files := getInputFiles(cmd, args, opt)
		src, err := seqs.LoadFastx(files, mode, window)
		checkError(err)
		if outputLog {
			log.Infof("%d sequence(s) loaded from %d file(s)", src.NumberSequences(), len(files))
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

		sink, err := newHashWriter(outfh, src, window, style)
		checkError(err)

		var l loop.Loop
		switch getFlagString(cmd, "loop") {
		case "incremental":
			l, err = loop.NewIncrementalLoop(window, step, style, reverse, sink)
		case "reset":
			l, err = loop.NewResetLoop(window, step, style, reverse, sink)
		default:
			err = errors.Errorf("invalid value of --loop, available: incremental, reset")
		}
		checkError(err)

		buf, err := loop.MakeBuffer(src)
		checkError(err)
		n, err := l.ExecLoop(src, buf)
		checkError(err)
		if outputLog {
			log.Infof("%d symbols scanned, %d hashes", n, sink.n)
		}
	},
}

// hashWriter writes hashes with the windows they come from.
type hashWriter struct {
	w        *bufio.Writer
	src      seqs.Source
	frames   uint32
	window   int
	alphabet string
	decoder  hash.Hasher // decodes values of exact and randomized hashes
	n        int64
}

func newHashWriter(w *bufio.Writer, src seqs.Source, window int, style hash.Style) (*hashWriter, error) {
	mode := src.Mode()
	hw := &hashWriter{
		w:        w,
		src:      src,
		frames:   uint32(mode.Frames()),
		window:   window,
		alphabet: mode.Alphabet(),
	}
	if style == hash.Auto && window*mode.BitsPerSymbol() <= 64 {
		style = hash.ExactStyle
	}
	if style == hash.ExactStyle || style == hash.RandomizedStyle {
		h, err := hash.New(style, window, mode.BitsPerSymbol(), false)
		if err != nil {
			return nil, err
		}
		hw.decoder = h
	}
	return hw, nil
}

func (hw *hashWriter) symbols(h uint64) string {
	if hw.decoder == nil {
		return "-"
	}
	if hw.alphabet != seqs.Nucleotides {
		return hw.decoder.ToSymbols(h, hw.alphabet)
	}
	if r, ok := hw.decoder.(*hash.Randomized); ok {
		h = r.Invert(h)
	}
	return string(kmers.Decode(h, hw.window))
}

func (hw *hashWriter) HashCall(h uint64, internalID uint32, stepPosition int32) {
	hw.n++
	fmt.Fprintf(hw.w, "%s\t%d\t%d\t%d\t%s\n", hw.src.Name(int(internalID/hw.frames)),
		internalID, stepPosition, h, hw.symbols(h))
}

func (hw *hashWriter) HashCallBidirectional(fwd, rev uint64, stepPosition int32, internalID uint32) {
	hw.n++
	fmt.Fprintf(hw.w, "%s\t%d\t%d\t%d\t%s\t%d\n", hw.src.Name(int(internalID)),
		internalID, stepPosition, fwd, hw.symbols(fwd), rev)
}

func (hw *hashWriter) EndSequence() {}

func init() {
	RootCmd.AddCommand(hashCmd)

	hashCmd.Flags().StringP("infile-list", "X", "",
		formatFlagUsage(`File of input file list (one file per line). If given, they are appended to files from CLI arguments.`))

	hashCmd.Flags().StringP("in-dir", "I", "",
		formatFlagUsage(`Input directory containing FASTA/Q files. Directory and file symlinks are followed.`))

	hashCmd.Flags().IntP("window", "w", 12,
		formatFlagUsage(`Window size.`))

	hashCmd.Flags().IntP("step", "s", 1,
		formatFlagUsage(`Step size, windows starting at multiples of it are reported.`))

	hashCmd.Flags().StringP("mode", "m", "unidirectional",
		formatFlagUsage(`Sequence mode, available: unidirectional, bidirectional, translated, protein.`))

	hashCmd.Flags().StringP("hash", "", "auto",
		formatFlagUsage(`Hash function, available: auto, exact, wide, randomized.`))

	hashCmd.Flags().StringP("loop", "", "incremental",
		formatFlagUsage(`Traversal style, available: incremental, reset.`))

	hashCmd.Flags().BoolP("reverse", "", false,
		formatFlagUsage(`Output paired forward and reverse-complement hashes of bidirectional sequences.`))

	hashCmd.Flags().StringP("out-file", "o", "-",
		formatFlagUsage(`Out file, supports and recommends a ".gz" suffix ("-" for stdout).`))

	hashCmd.SetUsageTemplate(usageTemplate("[-w <window>] [-m <mode>] { -I <seqs dir> | -X <file list> | <seq files> } [-o out.tsv.gz]"))
}
