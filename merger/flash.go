package merger

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/grailbio/base/errors"
)

// An Invocation records where one merge run left its outputs.
type Invocation struct {
	// MergedPath is the tool's combined-reads FASTQ.
	MergedPath string
	// LogPath holds the tool's report, from which statistics are parsed.
	LogPath string
}

// Runner runs the external read-merging tool for one sample, blocking until
// it exits. Implementations must leave the merged reads and the report at the
// returned paths.
type Runner interface {
	Run(ctx context.Context, sample Sample, outDir string) (Invocation, error)
}

// FlashRunner invokes FLASH (Magoč & Salzberg 2011) with its default
// algorithmic parameters. FLASH writes its report to stdout; the runner
// captures it to <outDir>/<sample>.flash.log.
type FlashRunner struct {
	// Path is the flash executable to invoke. Empty means "flash" on $PATH.
	Path string
}

func (r *FlashRunner) Run(ctx context.Context, sample Sample, outDir string) (Invocation, error) {
	prefix := filepath.Join(outDir, sample.Name)
	inv := Invocation{
		MergedPath: prefix + ".extendedFrags.fastq",
		LogPath:    prefix + ".flash.log",
	}
	logOut, err := os.Create(inv.LogPath)
	if err != nil {
		return Invocation{}, errors.E(err, "create flash log:", inv.LogPath)
	}
	binary := r.Path
	if binary == "" {
		binary = "flash"
	}
	cmd := exec.CommandContext(ctx, binary, sample.Read1, sample.Read2, "-o", prefix)
	var stderr bytes.Buffer
	cmd.Stdout = logOut
	cmd.Stderr = &stderr
	runErr := cmd.Run()
	closeErr := logOut.Close()
	if runErr != nil {
		msg := fmt.Sprintf("flash %s %s -o %s", sample.Read1, sample.Read2, prefix)
		if s := strings.TrimSpace(stderr.String()); s != "" {
			msg += ": " + s
		}
		return Invocation{}, errors.E(runErr, msg)
	}
	if closeErr != nil {
		return Invocation{}, errors.E(closeErr, "close flash log:", inv.LogPath)
	}
	return inv, nil
}
