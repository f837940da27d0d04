// Copyright (C) 2023 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Command airscomp compresses raw 16-bit AIRS sample streams with the
// airs codec, and can decode the one frame shape it can losslessly
// reverse without a core decoder: identity preprocessing with the
// uncompressed encoder.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/dloidolt/airs-compression-sub000/airs"
)

const version = "0.1.0"

var (
	dashC           bool
	dashCompress    bool
	dashO           string
	dashP           string
	dashConfig      string
	dashV           bool
	dashQ           bool
	dashColor       bool
	dashNoColor     bool
	dashVersion     bool
	dashVersionLong bool
)

func init() {
	flag.CommandLine.Usage = printUsage
	flag.BoolVar(&dashC, "c", false, "compress the input (default: decode)")
	flag.BoolVar(&dashCompress, "compress", false, "compress the input (default: decode)")
	flag.StringVar(&dashO, "o", "", "output file (default: stdout)")
	flag.StringVar(&dashP, "p", "", "comma-separated key=value codec parameters")
	flag.StringVar(&dashConfig, "config", "", "YAML file of codec parameters, overridden by -p")
	flag.BoolVar(&dashV, "v", false, "verbose: log each pass to stderr")
	flag.BoolVar(&dashQ, "q", false, "quiet: suppress non-error output")
	flag.BoolVar(&dashColor, "color", false, "force colored status output")
	flag.BoolVar(&dashNoColor, "no-color", false, "disable colored status output")
	flag.BoolVar(&dashVersion, "V", false, "print the version and exit")
	flag.BoolVar(&dashVersionLong, "version", false, "print the version and exit")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "usage: airscomp [-c] [-o OUTPUT] [-p key=value,...] [-config FILE.yaml] [-v|-q] [--color|--no-color] [FILE]\n\n")
	fmt.Fprintf(os.Stderr, "Reads FILE, or standard input when FILE is omitted or \"-\".\n\n")
	flag.PrintDefaults()
}

func main() {
	flag.Parse()

	if dashVersion || dashVersionLong {
		fmt.Println(version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "airscomp: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	compress := dashC || dashCompress

	args := flag.Args()
	inputPath := "-"
	if len(args) > 1 {
		return fmt.Errorf("at most one input file may be given")
	}
	if len(args) == 1 {
		inputPath = args[0]
	}

	src, err := openInput(inputPath)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, closeDst, err := openOutput(dashO)
	if err != nil {
		return err
	}
	defer closeDst()

	raw, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	logf := quietLogger
	if dashV && !dashQ {
		logf = verboseLogger
	}

	var out []byte
	if compress {
		out, err = runCompress(raw, logf)
	} else {
		out, err = runDecode(raw)
	}
	if err != nil {
		return err
	}

	if _, err := dst.Write(out); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if !dashQ {
		status(fmt.Sprintf("%d -> %d bytes", len(raw), len(out)))
	}
	return nil
}

func quietLogger(string, ...any) {}

func verboseLogger(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" || path == "" {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, fmt.Errorf("refusing to read sample data from a terminal; redirect input or give a file")
		}
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return f, nil
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, nil, fmt.Errorf("refusing to write compressed data to a terminal; redirect output or give -o")
		}
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return f, func() { f.Close() }, nil
}

func status(msg string) {
	useColor := dashColor || (!dashNoColor && term.IsTerminal(int(os.Stderr.Fd())))
	if useColor {
		fmt.Fprintf(os.Stderr, "\x1b[32m%s\x1b[0m\n", msg)
	} else {
		fmt.Fprintln(os.Stderr, msg)
	}
}

func runCompress(raw []byte, logf func(string, ...any)) ([]byte, error) {
	if len(raw)%2 != 0 {
		return nil, fmt.Errorf("input length %d is not a whole number of 16-bit samples", len(raw))
	}
	params, err := loadParams(dashConfig, dashP)
	if err != nil {
		return nil, err
	}
	if res := params.Validate(); res.IsError() {
		return nil, res.AsError()
	}

	samples := make([]int16, len(raw)/2)
	for i := range samples {
		samples[i] = int16(uint16(raw[2*i])<<8 | uint16(raw[2*i+1]))
	}
	reader := airs.NewI16Reader(samples)

	srcSize := reader.PackedSize()
	work := make([]byte, airs.WorkBufSize(params, srcSize))
	ctx, res := airs.NewContext(*params, work)
	if res.IsError() {
		return nil, res.AsError()
	}
	defer ctx.Teardown()

	boundRes := airs.CompressBound(srcSize)
	if boundRes.IsError() {
		return nil, boundRes.AsError()
	}
	dst := make([]byte, boundRes)

	logf("compressing %d samples (seq=%d)", reader.Len(), ctx.SequenceNumber())
	n := ctx.Compress(dst, &reader)
	if n.IsError() {
		return nil, n.AsError()
	}
	return dst[:n], nil
}

func runDecode(raw []byte) ([]byte, error) {
	hdr, n, res := airs.DeserializeHeader(raw)
	if res.IsError() {
		return nil, res.AsError()
	}
	if hdr.Preprocessing != airs.PreprocessNone || hdr.EncoderType != airs.EncoderUncompressed {
		return nil, fmt.Errorf("frame uses preprocessing=%d encoder=%d, which this build cannot decode (golomb/iwt/model decoding is out of scope)",
			hdr.Preprocessing, hdr.EncoderType)
	}
	payloadEnd := n + int(hdr.OriginalSize)
	if payloadEnd > len(raw) {
		return nil, fmt.Errorf("frame payload is truncated")
	}
	if hdr.ChecksumEnabled {
		checksumEnd := payloadEnd + airs.ChecksumSize
		if checksumEnd > len(raw) {
			return nil, fmt.Errorf("frame checksum is truncated")
		}
		samples := make([]int16, hdr.OriginalSize/2)
		for i := range samples {
			samples[i] = int16(uint16(raw[n+2*i])<<8 | uint16(raw[n+2*i+1]))
		}
		reader := airs.NewI16Reader(samples)
		want := uint32(raw[payloadEnd])<<24 | uint32(raw[payloadEnd+1])<<16 |
			uint32(raw[payloadEnd+2])<<8 | uint32(raw[payloadEnd+3])
		if got := airs.Checksum(&reader); got != want {
			return nil, fmt.Errorf("checksum mismatch: frame=%#x computed=%#x", want, got)
		}
	}
	return raw[n:payloadEnd], nil
}
