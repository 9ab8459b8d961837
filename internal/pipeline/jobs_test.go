package pipeline

import (
	"testing"
	"time"
)

func TestJob_StateTransitions(t *testing.T) {
	job := newJob(KindSection, "Q1", []FileInput{{Name: "p1.png"}})

	if job.Status != StatusQueued {
		t.Fatalf("new job status = %q", job.Status)
	}
	for _, status := range []JobStatus{StatusExtracting, StatusCommitted} {
		before := job.UpdatedAt
		time.Sleep(time.Millisecond)
		job.SetStatus(status)
		if job.Status != status {
			t.Errorf("expected status %q, got %q", status, job.Status)
		}
		if !job.UpdatedAt.After(before) {
			t.Errorf("expected UpdatedAt to advance after SetStatus(%q)", status)
		}
	}
}

func TestJob_Snapshot(t *testing.T) {
	job := newJob(KindDocument, "", []FileInput{{Name: "paper.pdf"}})
	job.AddError("page 2 unreadable")
	job.IncrFilesDone()

	snap := job.Snapshot()
	if snap.Kind != KindDocument {
		t.Errorf("kind = %q", snap.Kind)
	}
	if snap.Progress.FilesTotal != 1 || snap.Progress.FilesDone != 1 {
		t.Errorf("progress = %+v", snap.Progress)
	}
	if len(snap.Progress.Errors) != 1 {
		t.Errorf("errors = %v", snap.Progress.Errors)
	}
}

func TestJob_SnapshotEmptyErrorsNotNil(t *testing.T) {
	job := newJob(KindSection, "Q1", nil)
	if errs := job.Snapshot().Progress.Errors; errs == nil {
		t.Error("snapshot errors should serialize as [], not null")
	}
}

func TestJobStore_PutGetCleanup(t *testing.T) {
	store := NewJobStore(10 * time.Millisecond)
	job := newJob(KindSection, "Q1", nil)
	store.Put(job)

	if got := store.Get(job.ID); got != job {
		t.Fatal("expected to retrieve stored job")
	}
	if got := store.Get("missing"); got != nil {
		t.Error("expected nil for unknown id")
	}

	time.Sleep(20 * time.Millisecond)
	store.Cleanup()
	if got := store.Get(job.ID); got != nil {
		t.Error("expected expired job to be evicted")
	}
}
