package merger

import (
	"bufio"
	"context"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/tsv"
	"github.com/pkg/errors"
)

// StatsFileName is the aggregated statistics table, written under the output
// directory.
const StatsFileName = "merger_stats.tsv"

// A StatRow holds one sample's pair counts as reported by the merging tool.
// PercentCombined keeps the report's digit string verbatim (percent sign
// stripped) so the table reproduces the tool's own precision.
type StatRow struct {
	SampleName      string
	TotalPairs      uint32
	CombinedPairs   uint32
	UncombinedPairs uint32
	PercentCombined string
}

// FLASH report lines, e.g. "[FLASH]     Combined pairs:   871". Note
// "Uncombined" would not match the combined pattern: the leading capital
// distinguishes them.
var (
	totalPairsRE      = regexp.MustCompile(`Total pairs:\s+(\d+)`)
	combinedPairsRE   = regexp.MustCompile(`Combined pairs:\s+(\d+)`)
	uncombinedPairsRE = regexp.MustCompile(`Uncombined pairs:\s+(\d+)`)
	percentCombinedRE = regexp.MustCompile(`Percent combined:\s+([\d.]+)%`)
)

// ParseReport extracts a sample's StatRow from the merging tool's report
// file. All four statistics must be present and well formed; a partial report
// is an error rather than a row with blanks.
func ParseReport(path, sampleName string) (StatRow, error) {
	in, err := os.Open(path)
	if err != nil {
		return StatRow{}, errors.Wrap(err, "open report")
	}
	defer in.Close() // nolint: errcheck
	row := StatRow{SampleName: sampleName}
	var gotTotal, gotCombined, gotUncombined, gotPercent bool
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		if m := totalPairsRE.FindStringSubmatch(line); m != nil {
			if row.TotalPairs, err = parseCount(m[1]); err != nil {
				return StatRow{}, err
			}
			gotTotal = true
		} else if m := combinedPairsRE.FindStringSubmatch(line); m != nil {
			if row.CombinedPairs, err = parseCount(m[1]); err != nil {
				return StatRow{}, err
			}
			gotCombined = true
		} else if m := uncombinedPairsRE.FindStringSubmatch(line); m != nil {
			if row.UncombinedPairs, err = parseCount(m[1]); err != nil {
				return StatRow{}, err
			}
			gotUncombined = true
		} else if m := percentCombinedRE.FindStringSubmatch(line); m != nil {
			row.PercentCombined = m[1]
			gotPercent = true
		}
	}
	if err := scanner.Err(); err != nil {
		return StatRow{}, errors.Wrap(err, "read report")
	}
	var missing []string
	for _, f := range []struct {
		ok   bool
		name string
	}{
		{gotTotal, "Total pairs"},
		{gotCombined, "Combined pairs"},
		{gotUncombined, "Uncombined pairs"},
		{gotPercent, "Percent combined"},
	} {
		if !f.ok {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return StatRow{}, errors.Errorf("report %s: missing statistics: %s", path, strings.Join(missing, ", "))
	}
	return row, nil
}

func parseCount(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "bad pair count %q", s)
	}
	return uint32(v), nil
}

// WriteStats writes the rows, in order, as a tab-delimited table with a fixed
// header.
func WriteStats(ctx context.Context, path string, rows []StatRow) (err error) {
	out, err := file.Create(ctx, path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer file.CloseAndReport(ctx, out, &err)
	w := tsv.NewWriter(out.Writer(ctx))
	w.WriteString("sample_name\tTotalPairs\tCombinedPairs\tUncombinedPairs\tPercentCombined")
	if err = w.EndLine(); err != nil {
		return err
	}
	for _, row := range rows {
		w.WriteString(row.SampleName)
		w.WriteUint32(row.TotalPairs)
		w.WriteUint32(row.CombinedPairs)
		w.WriteUint32(row.UncombinedPairs)
		w.WriteString(row.PercentCombined)
		if err = w.EndLine(); err != nil {
			return err
		}
	}
	return w.Flush()
}
