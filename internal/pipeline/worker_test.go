package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/nkapre/paperforge/internal/config"
	"github.com/nkapre/paperforge/internal/ocr"
	"github.com/nkapre/paperforge/internal/schema"
	"github.com/nkapre/paperforge/internal/session"
)

type fakeExtractor struct {
	texts []string
	calls int
	fails int
	err   error
}

func (f *fakeExtractor) ExtractText(ctx context.Context, image []byte, mimeType string) (string, error) {
	f.calls++
	if f.fails > 0 {
		f.fails--
		if f.err != nil {
			return "", f.err
		}
		return "", &ocr.RetryableError{StatusCode: 503, Message: "busy"}
	}
	if len(f.texts) == 0 {
		return "extracted text", nil
	}
	text := f.texts[0]
	f.texts = f.texts[1:]
	return text, nil
}

func testWorker(t *testing.T, extractor TextExtractor) (*Worker, *session.Session) {
	t.Helper()
	sess, err := session.New(schema.NewRegistry(), "english-lang-9")
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.Config{
		OCRMaxRetries:   3,
		RenderDPI:       144,
		MinPDFTextChars: 64,
	}
	return NewWorker(extractor, sess, log, cfg), sess
}

func TestWorker_SectionJob(t *testing.T) {
	ex := &fakeExtractor{texts: []string{"Page one text. (a) first part", "Page two text."}}
	w, sess := testWorker(t, ex)

	job := newJob(KindSection, "Q2", []FileInput{
		{Name: "p1.png", MimeType: "image/png", Data: []byte("x")},
		{Name: "p2.png", MimeType: "image/png", Data: []byte("y")},
	})
	w.Process(context.Background(), job)

	if job.Status != StatusCommitted {
		t.Fatalf("status = %q, errors = %v", job.Status, job.Snapshot().Progress.Errors)
	}
	blocks := sess.Blocks()
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	want := "Page one text.\n(a) first part\n\nPage two text."
	if blocks[0].Text != want {
		t.Errorf("text = %q, want %q", blocks[0].Text, want)
	}
	if job.Snapshot().Progress.FilesDone != 2 {
		t.Errorf("files done = %d", job.Snapshot().Progress.FilesDone)
	}
}

func TestWorker_SectionJob_RetriesTransientFailure(t *testing.T) {
	ex := &fakeExtractor{fails: 2, texts: []string{"recovered text"}}
	w, sess := testWorker(t, ex)

	job := newJob(KindSection, "Q1", []FileInput{{Name: "p1.png", MimeType: "image/png", Data: []byte("x")}})
	w.Process(context.Background(), job)

	if job.Status != StatusCommitted {
		t.Fatalf("status = %q", job.Status)
	}
	if ex.calls != 3 {
		t.Errorf("expected 3 attempts, got %d", ex.calls)
	}
	if got := sess.Blocks()[0].Text; got != "recovered text" {
		t.Errorf("text = %q", got)
	}
}

func TestWorker_SectionJob_NonRetryableFailsFast(t *testing.T) {
	ex := &fakeExtractor{fails: 5, err: fmt.Errorf("bad api key")}
	w, sess := testWorker(t, ex)

	job := newJob(KindSection, "Q1", []FileInput{{Name: "p1.png", MimeType: "image/png", Data: []byte("x")}})
	w.Process(context.Background(), job)

	if job.Status != StatusFailed {
		t.Fatalf("status = %q", job.Status)
	}
	if ex.calls != 1 {
		t.Errorf("expected 1 attempt for a non-retryable error, got %d", ex.calls)
	}
	if len(sess.Blocks()) != 0 {
		t.Error("failed job must not commit a block")
	}
}

func TestWorker_SectionJob_StaleDrop(t *testing.T) {
	ex := &fakeExtractor{}
	w, sess := testWorker(t, ex)
	if _, err := sess.SelectSchema("generic"); err != nil {
		t.Fatalf("SelectSchema: %v", err)
	}

	job := newJob(KindSection, "Q1", []FileInput{{Name: "p1.png", MimeType: "image/png", Data: []byte("x")}})
	w.Process(context.Background(), job)

	if job.Status != StatusStaleDropped {
		t.Fatalf("status = %q", job.Status)
	}
	if len(sess.Blocks()) != 0 {
		t.Error("stale result must not create a block")
	}
}

func TestWorker_SectionJob_FailureKeepsPriorText(t *testing.T) {
	w, sess := testWorker(t, &fakeExtractor{texts: []string{"first upload"}})
	job := newJob(KindSection, "Q3", []FileInput{{Name: "p1.png", MimeType: "image/png", Data: []byte("x")}})
	w.Process(context.Background(), job)
	if job.Status != StatusCommitted {
		t.Fatalf("setup commit failed: %q", job.Status)
	}

	failing := &fakeExtractor{fails: 5, err: fmt.Errorf("boom")}
	w2 := NewWorker(failing, sess, w.log, w.cfg)
	job2 := newJob(KindSection, "Q3", []FileInput{{Name: "p2.png", MimeType: "image/png", Data: []byte("y")}})
	w2.Process(context.Background(), job2)

	if job2.Status != StatusFailed {
		t.Fatalf("status = %q", job2.Status)
	}
	if got := sess.Blocks()[0].Text; got != "first upload" {
		t.Errorf("prior text must survive a failed re-upload, got %q", got)
	}
}

func TestWorker_DocumentJob_TextFile(t *testing.T) {
	w, sess := testWorker(t, &fakeExtractor{})

	content := "Question 1\nWrite a composition.\n\nQuestion 2\nWrite a letter."
	job := newJob(KindDocument, "", []FileInput{{Name: "paper.txt", MimeType: "text/plain", Data: []byte(content)}})
	w.Process(context.Background(), job)

	if job.Status != StatusCommitted {
		t.Fatalf("status = %q, errors = %v", job.Status, job.Snapshot().Progress.Errors)
	}
	if sess.RawText() == "" {
		t.Fatal("expected raw text to be stored")
	}
	n, err := sess.SegmentRawText()
	if err != nil {
		t.Fatalf("SegmentRawText: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 segments, got %d", n)
	}
}

func TestWorker_DocumentJob_ScannedPDFFallback(t *testing.T) {
	ex := &fakeExtractor{texts: []string{"Question 1 from page one", "Question 2 from page two"}}
	w, sess := testWorker(t, ex)
	w.render = func(ctx context.Context, pdfData []byte, dpi int) ([][]byte, error) {
		if dpi != 144 {
			t.Errorf("dpi = %d", dpi)
		}
		return [][]byte{[]byte("png1"), []byte("png2")}, nil
	}

	// Minimal data that the text-layer parsers reject, forcing the
	// rasterize+OCR path.
	job := newJob(KindDocument, "", []FileInput{{Name: "scan.pdf", MimeType: "application/pdf", Data: []byte("%PDF-1.4 no text layer")}})
	w.Process(context.Background(), job)

	if job.Status != StatusCommitted {
		t.Fatalf("status = %q, errors = %v", job.Status, job.Snapshot().Progress.Errors)
	}
	want := "Question 1 from page one\n\nQuestion 2 from page two"
	if got := sess.RawText(); got != want {
		t.Errorf("raw text = %q, want %q", got, want)
	}
	if ex.calls != 2 {
		t.Errorf("expected one OCR call per page, got %d", ex.calls)
	}
}

func TestWorker_DocumentJob_UnsupportedExtension(t *testing.T) {
	w, _ := testWorker(t, &fakeExtractor{})
	job := newJob(KindDocument, "", []FileInput{{Name: "paper.xlsx", Data: []byte("x")}})
	w.Process(context.Background(), job)
	if job.Status != StatusFailed {
		t.Errorf("status = %q", job.Status)
	}
}
