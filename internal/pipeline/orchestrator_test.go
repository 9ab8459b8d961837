package pipeline

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/nkapre/paperforge/internal/config"
	"github.com/nkapre/paperforge/internal/schema"
	"github.com/nkapre/paperforge/internal/session"
)

func testOrchestrator(t *testing.T, queueSize int) (*Orchestrator, *session.Session) {
	t.Helper()
	sess, err := session.New(schema.NewRegistry(), "english-lang-9")
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	cfg := config.Config{
		OCRMaxRetries:   1,
		RenderDPI:       144,
		MinPDFTextChars: 64,
		MaxQueueSize:    queueSize,
		JobTTL:          time.Hour,
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewOrchestrator(cfg, &fakeExtractor{texts: []string{"section text"}}, sess, log), sess
}

func TestOrchestrator_ProcessesSubmittedJob(t *testing.T) {
	o, sess := testOrchestrator(t, 4)
	o.Start(context.Background())
	defer o.Stop()

	job, err := o.SubmitSection("Q1", []FileInput{{Name: "p1.png", MimeType: "image/png", Data: []byte("x")}})
	if err != nil {
		t.Fatalf("SubmitSection: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		if got := o.GetJob(job.ID); got != nil && got.Snapshot().Status == StatusCommitted {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("job never committed, status = %q", o.GetJob(job.ID).Snapshot().Status)
		case <-time.After(10 * time.Millisecond):
		}
	}

	if got := sess.Blocks(); len(got) != 1 || got[0].Text != "section text" {
		t.Errorf("blocks = %+v", got)
	}
}

func TestOrchestrator_QueueFull(t *testing.T) {
	o, _ := testOrchestrator(t, 1)
	// Not started: the queue fills without being drained.

	if _, err := o.SubmitSection("Q1", nil); err != nil {
		t.Fatalf("first submit should fit: %v", err)
	}
	job, err := o.SubmitSection("Q2", nil)
	if err == nil {
		t.Fatal("expected queue-full error")
	}
	if job.Snapshot().Status != StatusFailed {
		t.Errorf("rejected job status = %q", job.Snapshot().Status)
	}
}
