// Package pdfrender rasterizes PDF pages to PNG images for OCR of
// scanned documents.
package pdfrender

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// RenderPages renders every page of the PDF to a PNG at the given DPI,
// in page order. Rendering shells out to pdftoppm (poppler-utils); the
// page count comes from pdfcpu, which also validates the document before
// any subprocess runs.
func RenderPages(ctx context.Context, pdfData []byte, dpi int) ([][]byte, error) {
	pageCount, err := api.PageCount(bytes.NewReader(pdfData), nil)
	if err != nil {
		return nil, fmt.Errorf("page count: %w", err)
	}
	if pageCount == 0 {
		return nil, fmt.Errorf("pdf has no pages")
	}

	tmpDir, err := os.MkdirTemp("", "paperforge-render-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	pdfPath := filepath.Join(tmpDir, "input.pdf")
	if err := os.WriteFile(pdfPath, pdfData, 0o600); err != nil {
		return nil, fmt.Errorf("write temp pdf: %w", err)
	}

	pages := make([][]byte, 0, pageCount)
	for page := 1; page <= pageCount; page++ {
		img, err := renderPage(ctx, pdfPath, tmpDir, page, dpi)
		if err != nil {
			return nil, fmt.Errorf("render page %d: %w", page, err)
		}
		pages = append(pages, img)
	}
	return pages, nil
}

// renderPage renders a single page using pdftoppm.
func renderPage(ctx context.Context, pdfPath, tmpDir string, page, dpi int) ([]byte, error) {
	outputPrefix := filepath.Join(tmpDir, "page-"+strconv.Itoa(page))
	pageStr := strconv.Itoa(page)

	cmd := exec.CommandContext(ctx, "pdftoppm",
		"-png",
		"-f", pageStr,
		"-l", pageStr,
		"-r", strconv.Itoa(dpi),
		"-singlefile",
		pdfPath,
		outputPrefix,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("pdftoppm: %w: %s", err, stderr.String())
	}

	img, err := os.ReadFile(outputPrefix + ".png")
	if err != nil {
		return nil, fmt.Errorf("read rendered page: %w", err)
	}
	return img, nil
}
