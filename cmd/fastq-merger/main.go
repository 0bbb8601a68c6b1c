package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/atgtools/fastq-merger/merger"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
)

var (
	sampleName        string
	read1             string
	read2             string
	samplesFile       string
	outDir            string
	keepIntermediates bool
)

func init() {
	flag.StringVar(&sampleName, "sample-name", "", "Sample name for single-sample mode; alphanumeric, becomes the output filename")
	flag.StringVar(&sampleName, "n", "", "Shorthand for -sample-name")
	flag.StringVar(&read1, "read1", "", "R1 FASTQ(.gz) path for single-sample mode")
	flag.StringVar(&read1, "r1", "", "Shorthand for -read1")
	flag.StringVar(&read2, "read2", "", "R2 FASTQ(.gz) path for single-sample mode")
	flag.StringVar(&read2, "r2", "", "Shorthand for -read2")
	flag.StringVar(&samplesFile, "samples-file", "", "Tab-delimited samples file with sample_name, read1 and read2 columns; this xor the single-sample flags required")
	flag.StringVar(&samplesFile, "f", "", "Shorthand for -samples-file")
	flag.StringVar(&outDir, "out-dir", "", "Output directory; created if absent")
	flag.StringVar(&outDir, "o", "", "Shorthand for -out-dir")
	flag.BoolVar(&keepIntermediates, "keep-intermediates", false, "Keep FLASH logs, histograms and uncombined reads instead of removing them")
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s -n NAME -r1 R1 -r2 R2 -o DIR\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "       %s -f SAMPLES_TSV -o DIR\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
}

func usageExit(msg string) {
	fmt.Fprintf(os.Stderr, "fastq-merger: %s\n", msg)
	usage()
	os.Exit(2)
}

func main() {
	flag.Usage = usage
	shutdown := grail.Init()
	defer shutdown()

	single := sampleName != "" || read1 != "" || read2 != ""
	switch {
	case outDir == "":
		usageExit("-out-dir is required")
	case single && samplesFile != "":
		usageExit("-samples-file cannot be combined with -sample-name/-read1/-read2")
	case !single && samplesFile == "":
		usageExit("either -samples-file or -sample-name/-read1/-read2 is required")
	case single && (sampleName == "" || read1 == "" || read2 == ""):
		usageExit("-sample-name, -read1 and -read2 must be given together")
	}

	ctx := vcontext.Background()
	err := merger.Run(ctx, merger.Opts{
		SampleName:        sampleName,
		Read1:             read1,
		Read2:             read2,
		SamplesFile:       samplesFile,
		OutDir:            outDir,
		KeepIntermediates: keepIntermediates,
	})
	if err != nil {
		log.Fatalf("fastq-merger: %v", err)
	}
}
