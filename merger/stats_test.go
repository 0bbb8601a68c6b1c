package merger

import (
	"context"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/grailbio/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Trimmed from a real FLASH 1.2.11 run.
const flashReport = `[FLASH] Starting FLASH v1.2.11
[FLASH] Fast Length Adjustment of SHort reads
[FLASH]
[FLASH] Input files:
[FLASH]     sampleA_R1.fastq.gz
[FLASH]     sampleA_R2.fastq.gz
[FLASH]
[FLASH] Starting reader and writer threads
[FLASH] Starting 4 combiner threads
[FLASH] Processed 1000 read pairs
[FLASH]
[FLASH] Read combination statistics:
[FLASH]     Total pairs:      1000
[FLASH]     Combined pairs:   871
[FLASH]     Uncombined pairs: 129
[FLASH]     Percent combined: 87.10%
[FLASH]
[FLASH] Writing histogram files.
[FLASH] FLASH v1.2.11 complete!
`

func writeReport(t *testing.T, dir, name, contents string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, ioutil.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestParseReport(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	row, err := ParseReport(writeReport(t, dir, "a.flash.log", flashReport), "sampleA")
	require.NoError(t, err)
	want := StatRow{
		SampleName:      "sampleA",
		TotalPairs:      1000,
		CombinedPairs:   871,
		UncombinedPairs: 129,
		PercentCombined: "87.10",
	}
	assert.Equal(t, want, row)
}

func TestParseReportMissingFields(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	for _, test := range []struct {
		name     string
		contents string
		missing  string
	}{
		{"empty", "", "Total pairs, Combined pairs, Uncombined pairs, Percent combined"},
		{"no-percent", "Total pairs: 10\nCombined pairs: 9\nUncombined pairs: 1\n", "Percent combined"},
		{"truncated", "[FLASH] Total pairs:      1000\n", "Combined pairs, Uncombined pairs, Percent combined"},
	} {
		path := writeReport(t, dir, test.name+".log", test.contents)
		_, err := ParseReport(path, "s")
		require.Error(t, err, test.name)
		assert.Contains(t, err.Error(), test.missing, test.name)
	}
}

func TestParseReportMissingFile(t *testing.T) {
	_, err := ParseReport("/nonexistent/x.log", "s")
	require.Error(t, err)
}

func TestWriteStats(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	ctx := context.Background()
	path := filepath.Join(dir, StatsFileName)
	rows := []StatRow{
		{SampleName: "s1", TotalPairs: 1000, CombinedPairs: 871, UncombinedPairs: 129, PercentCombined: "87.10"},
		{SampleName: "s2", TotalPairs: 10, CombinedPairs: 0, UncombinedPairs: 10, PercentCombined: "0.00"},
	}
	require.NoError(t, WriteStats(ctx, path, rows))
	got, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	want := "sample_name\tTotalPairs\tCombinedPairs\tUncombinedPairs\tPercentCombined\n" +
		"s1\t1000\t871\t129\t87.10\n" +
		"s2\t10\t0\t10\t0.00\n"
	assert.Equal(t, want, string(got))
}

func TestWriteStatsHeaderOnly(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	path := filepath.Join(dir, StatsFileName)
	require.NoError(t, WriteStats(context.Background(), path, nil))
	got, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "sample_name\tTotalPairs\tCombinedPairs\tUncombinedPairs\tPercentCombined\n", string(got))
}
