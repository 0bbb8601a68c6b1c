package merger

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/grailbio/base/errors"
)

// A Sample names one paired-end library to be merged.
type Sample struct {
	Name  string
	Read1 string
	Read2 string
}

// Sample names become output filenames, so they are restricted to characters
// that are safe in any filesystem path.
var validName = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

func (s Sample) validate() error {
	if !validName.MatchString(s.Name) {
		return errors.E(fmt.Sprintf("invalid sample name %q: names must be alphanumeric (underscores allowed)", s.Name))
	}
	if s.Read1 == "" || s.Read2 == "" {
		return errors.E(fmt.Sprintf("sample %s: read1 and read2 paths are both required", s.Name))
	}
	return nil
}

// Required samples-file columns. Matched case-insensitively; column order and
// extra columns don't matter.
var requiredColumns = []string{"sample_name", "read1", "read2"}

// ReadSamplesFile parses a tab-delimited samples file into Samples, in file
// order. The header row must contain sample_name, read1 and read2 columns.
func ReadSamplesFile(path string) ([]Sample, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, errors.E(err, "open samples file:", path)
	}
	defer in.Close() // nolint: errcheck
	samples, err := readSamples(in)
	if err != nil {
		return nil, errors.E(err, "samples file "+path)
	}
	return samples, nil
}

func readSamples(in io.Reader) ([]Sample, error) {
	r := csv.NewReader(in)
	r.Comma = '\t'
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err == io.EOF {
		return nil, errors.E("empty samples file")
	}
	if err != nil {
		return nil, err
	}
	cols := map[string]int{}
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, errors.E("missing required column(s): " + strings.Join(missing, ", "))
	}
	var samples []Sample
	for line := 2; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		field := func(name string) string {
			if col := cols[name]; col < len(rec) {
				return strings.TrimSpace(rec[col])
			}
			return ""
		}
		s := Sample{
			Name:  field("sample_name"),
			Read1: field("read1"),
			Read2: field("read2"),
		}
		if err := s.validate(); err != nil {
			return nil, errors.E(err, fmt.Sprintf("line %d", line))
		}
		samples = append(samples, s)
	}
	return samples, nil
}
