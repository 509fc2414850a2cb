package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// renderPages rasterizes a PDF to one PNG per page at the configured DPI and
// returns a page-number -> file-path map. Call cleanup() to remove the files.
func (e *Extractor) renderPages(ctx context.Context, content []byte) (map[int]string, func(), error) {
	tmpDir, err := os.MkdirTemp("", "cvp-pp-*")
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			e.logger.Warn("failed to remove temp dir", "path", tmpDir, "error", err)
		}
	}

	in := filepath.Join(tmpDir, "doc.pdf")
	if err := os.WriteFile(in, content, 0o600); err != nil {
		cleanup()
		return nil, nil, err
	}

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r 300 -png <in.pdf> <tmp/page>
	if _, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm, "-r", strconv.Itoa(e.cfg.DPI), "-png", in, prefix); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("pdftoppm: %w (%s)", err, truncate(string(errb), 512))
	}

	// collect generated pngs (prefix-1.png or zero-padded prefix-01.png etc.)
	matches, _ := filepath.Glob(prefix + "-*.png")
	if len(matches) == 0 {
		cleanup()
		return nil, nil, fmt.Errorf("pdftoppm produced no images")
	}

	rendered := make(map[int]string, len(matches))
	for _, m := range matches {
		n, err := pageNumber(m)
		if err != nil {
			e.logger.Warn("unparseable rendered page name", "path", m)
			continue
		}
		if e.cfg.MaxPages > 0 && n > e.cfg.MaxPages {
			continue
		}
		rendered[n] = m
	}
	return rendered, cleanup, nil
}

// pageNumber parses the trailing page index out of a pdftoppm output name.
func pageNumber(path string) (int, error) {
	base := strings.TrimSuffix(filepath.Base(path), ".png")
	idx := strings.LastIndexByte(base, '-')
	if idx < 0 {
		return 0, fmt.Errorf("no page suffix in %q", base)
	}
	return strconv.Atoi(base[idx+1:])
}
