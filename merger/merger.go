// Package merger batches an external paired-end read merging tool (FLASH)
// across samples and aggregates its per-sample statistics into one table.
package merger

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
)

// Opts configures one merger run. Exactly one of the single-sample fields
// (SampleName, Read1, Read2, all three together) or SamplesFile must be set.
type Opts struct {
	SampleName string
	Read1      string
	Read2      string

	SamplesFile string

	OutDir string

	// KeepIntermediates retains the tool's report and side outputs
	// (histograms, uncombined reads) instead of removing them.
	KeepIntermediates bool

	// Runner overrides the external tool invocation; nil means FLASH on
	// $PATH. Tests substitute a fake here.
	Runner Runner
}

func (o Opts) resolveSamples() ([]Sample, error) {
	single := o.SampleName != "" || o.Read1 != "" || o.Read2 != ""
	batch := o.SamplesFile != ""
	switch {
	case o.OutDir == "":
		return nil, errors.E("an output directory is required")
	case single && batch:
		return nil, errors.E("a samples file cannot be combined with single-sample arguments")
	case !single && !batch:
		return nil, errors.E("either a samples file or sample-name/read1/read2 is required")
	}
	if single {
		if o.SampleName == "" || o.Read1 == "" || o.Read2 == "" {
			return nil, errors.E("sample-name, read1 and read2 must be given together")
		}
		s := Sample{Name: o.SampleName, Read1: o.Read1, Read2: o.Read2}
		if err := s.validate(); err != nil {
			return nil, err
		}
		return []Sample{s}, nil
	}
	return ReadSamplesFile(o.SamplesFile)
}

// Run merges every sample and writes the statistics table. Samples run
// sequentially, in input order. A failing sample is logged and skipped; its
// row is omitted from the table, and Run returns an error naming all failed
// samples once the batch completes. Outputs of completed samples are never
// rolled back.
func Run(ctx context.Context, opts Opts) error {
	samples, err := opts.resolveSamples()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(opts.OutDir, 0775); err != nil {
		return errors.E(err, "create output directory:", opts.OutDir)
	}
	runner := opts.Runner
	if runner == nil {
		runner = &FlashRunner{}
	}
	rows := make([]StatRow, 0, len(samples))
	var failed []string
	for _, sample := range samples {
		log.Printf("running flash for sample %s", sample.Name)
		row, err := mergeOne(ctx, runner, sample, opts)
		if err != nil {
			log.Error.Printf("sample %s: %v", sample.Name, err)
			failed = append(failed, sample.Name)
			continue
		}
		log.Printf("sample %s: %d/%d pairs combined (%s%%)",
			sample.Name, row.CombinedPairs, row.TotalPairs, row.PercentCombined)
		rows = append(rows, row)
	}
	statsPath := filepath.Join(opts.OutDir, StatsFileName)
	if err := WriteStats(ctx, statsPath, rows); err != nil {
		return err
	}
	if len(failed) > 0 {
		return errors.E(fmt.Sprintf("merge failed for %d of %d samples: %s",
			len(failed), len(samples), strings.Join(failed, ", ")))
	}
	log.Printf("merge done, statistics written to %s", statsPath)
	return nil
}

func mergeOne(ctx context.Context, runner Runner, sample Sample, opts Opts) (StatRow, error) {
	inv, err := runner.Run(ctx, sample, opts.OutDir)
	if err != nil {
		return StatRow{}, err
	}
	// Parse before cleanup: the report is one of the files removed below.
	row, err := ParseReport(inv.LogPath, sample.Name)
	if err != nil {
		return StatRow{}, err
	}
	dst := filepath.Join(opts.OutDir, sample.Name+".fastq")
	if err := os.Rename(inv.MergedPath, dst); err != nil {
		if os.IsNotExist(err) {
			return StatRow{}, errors.E("flash produced no merged output at " + inv.MergedPath)
		}
		return StatRow{}, errors.E(err, "collect merged output")
	}
	if !opts.KeepIntermediates {
		removeIntermediates(opts.OutDir, sample.Name)
	}
	return row, nil
}

// FLASH side outputs, relative to the per-sample output prefix.
var intermediateSuffixes = []string{
	".flash.log",
	".hist",
	".histogram",
	".notCombined_1.fastq",
	".notCombined_2.fastq",
}

func removeIntermediates(outDir, sampleName string) {
	for _, suffix := range intermediateSuffixes {
		path := filepath.Join(outDir, sampleName+suffix)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Error.Printf("remove %s: %v", path, err)
		}
	}
}
