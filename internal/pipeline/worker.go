package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/avast/retry-go/v4"

	"github.com/nkapre/paperforge/internal/config"
	"github.com/nkapre/paperforge/internal/ocr"
	"github.com/nkapre/paperforge/internal/parser"
	"github.com/nkapre/paperforge/internal/pdfrender"
	"github.com/nkapre/paperforge/internal/session"
	"github.com/nkapre/paperforge/internal/textproc"
)

// TextExtractor transcribes one scanned image.
type TextExtractor interface {
	ExtractText(ctx context.Context, image []byte, mimeType string) (string, error)
}

// renderFunc rasterizes a PDF to per-page images.
type renderFunc func(ctx context.Context, pdfData []byte, dpi int) ([][]byte, error)

// Worker processes one job at a time against the shared session.
type Worker struct {
	extractor TextExtractor
	sess      *session.Session
	log       *slog.Logger
	cfg       config.Config
	render    renderFunc
}

func NewWorker(extractor TextExtractor, sess *session.Session, log *slog.Logger, cfg config.Config) *Worker {
	return &Worker{
		extractor: extractor,
		sess:      sess,
		log:       log,
		cfg:       cfg,
		render:    pdfrender.RenderPages,
	}
}

// Process runs a job to completion and records its final status.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "kind", job.Kind)

	var err error
	switch job.Kind {
	case KindSection:
		err = w.processSection(ctx, job, log)
	case KindDocument:
		err = w.processDocument(ctx, job, log)
	default:
		err = fmt.Errorf("unknown job kind %q", job.Kind)
	}

	switch {
	case errors.Is(err, session.ErrStaleSection):
		log.Warn("result dropped, section left the active schema", "section_id", job.SectionID)
		job.SetStatus(StatusStaleDropped)
	case err != nil:
		log.Error("job failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed)
	default:
		job.SetStatus(StatusCommitted)
	}
}

// processSection OCRs the section's page images in upload order, joins
// the normalized texts and commits the result to the session.
func (w *Worker) processSection(ctx context.Context, job *Job, log *slog.Logger) error {
	job.SetStatus(StatusExtracting)

	var parts []string
	for _, file := range job.Files() {
		text, err := w.extractWithRetry(ctx, file.Data, file.MimeType)
		if err != nil {
			return fmt.Errorf("extract %s: %w", file.Name, err)
		}
		parts = append(parts, textproc.Normalize(text))
		job.IncrFilesDone()
	}

	joined := strings.TrimSpace(strings.Join(parts, "\n\n"))
	if err := w.sess.CommitSectionText(job.SectionID, joined); err != nil {
		return err
	}
	log.Info("section text committed", "section_id", job.SectionID, "chars", len(joined))
	return nil
}

// processDocument parses a whole-document upload into the session's raw
// text. Scanned PDFs with a near-empty text layer are rerouted through
// rasterization and OCR.
func (w *Worker) processDocument(ctx context.Context, job *Job, log *slog.Logger) error {
	files := job.Files()
	if len(files) != 1 {
		return fmt.Errorf("document job needs exactly one file, got %d", len(files))
	}
	file := files[0]

	job.SetStatus(StatusParsing)
	p, err := parser.ForFile(file.Name)
	if err != nil {
		return err
	}
	if pp, ok := p.(*parser.PDFParser); ok {
		pp.FallbackPdftotext = w.cfg.PDFFallbackPdftotext
	}
	text, err := p.Parse(bytes.NewReader(file.Data), file.Name)
	isPDF := strings.EqualFold(filepath.Ext(file.Name), ".pdf")
	if err != nil && !isPDF {
		return fmt.Errorf("parse %s: %w", file.Name, err)
	}

	// Scanned PDFs have no usable text layer; rasterize and OCR instead.
	if isPDF && len(strings.TrimSpace(text)) < w.cfg.MinPDFTextChars {
		log.Info("pdf text layer too small, falling back to ocr", "chars", len(strings.TrimSpace(text)))
		text, err = w.extractScannedPDF(ctx, job, file.Data)
		if err != nil {
			return err
		}
	}

	text = strings.TrimSpace(textproc.Normalize(text))
	if text == "" {
		return fmt.Errorf("no text extracted from %s", file.Name)
	}
	w.sess.SetRawText(text)
	job.IncrFilesDone()
	log.Info("document text stored", "chars", len(text))
	return nil
}

func (w *Worker) extractScannedPDF(ctx context.Context, job *Job, pdfData []byte) (string, error) {
	job.SetStatus(StatusRendering)
	pages, err := w.render(ctx, pdfData, w.cfg.RenderDPI)
	if err != nil {
		return "", fmt.Errorf("render pdf: %w", err)
	}

	job.SetStatus(StatusExtracting)
	var parts []string
	for i, page := range pages {
		text, err := w.extractWithRetry(ctx, page, "image/png")
		if err != nil {
			return "", fmt.Errorf("extract page %d: %w", i+1, err)
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "\n\n"), nil
}

// extractWithRetry retries transient API failures with exponential
// backoff; client errors fail immediately.
func (w *Worker) extractWithRetry(ctx context.Context, image []byte, mimeType string) (string, error) {
	return retry.DoWithData(
		func() (string, error) {
			return w.extractor.ExtractText(ctx, image, mimeType)
		},
		retry.Context(ctx),
		retry.Attempts(w.cfg.OCRMaxRetries),
		retry.RetryIf(ocr.IsRetryable),
		retry.LastErrorOnly(true),
	)
}
