package extract

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// Runner abstracts external command execution so the page rendering path can
// be stubbed in tests.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct {
	logger *slog.Logger
}

func (r execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb

	err := cmd.Run()
	if err != nil {
		r.logger.Error("render command failed",
			"cmd", name,
			"args", strings.Join(args, " "),
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err,
			"stderr", truncate(errb.String(), 8<<10),
		)
		return out.Bytes(), errb.Bytes(), err
	}

	r.logger.Debug("render command ok",
		"cmd", name,
		"args", strings.Join(args, " "),
		"duration_ms", time.Since(start).Milliseconds(),
		"stdout_bytes", out.Len(),
		"stderr_bytes", errb.Len(),
	)
	return out.Bytes(), errb.Bytes(), nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
