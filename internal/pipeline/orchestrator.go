package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nkapre/paperforge/internal/config"
	"github.com/nkapre/paperforge/internal/session"
)

// Orchestrator manages the upload pipeline. A single worker drains the
// queue so uploads are processed strictly in submission order.
type Orchestrator struct {
	jobs  *JobStore
	queue chan *Job
	sess  *session.Session
	log   *slog.Logger
	cfg   config.Config

	extractor TextExtractor
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// NewOrchestrator creates the pipeline; call Start to begin processing.
func NewOrchestrator(cfg config.Config, extractor TextExtractor, sess *session.Session, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		jobs:      NewJobStore(cfg.JobTTL),
		queue:     make(chan *Job, cfg.MaxQueueSize),
		sess:      sess,
		log:       log,
		cfg:       cfg,
		extractor: extractor,
	}
}

// Start launches the worker and job store cleanup.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		w := NewWorker(o.extractor, o.sess, o.log, o.cfg)
		for {
			select {
			case <-workerCtx.Done():
				return
			case job, ok := <-o.queue:
				if !ok {
					return
				}
				w.Process(workerCtx, job)
			}
		}
	}()

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// SubmitSection queues the ordered page images of one section.
func (o *Orchestrator) SubmitSection(sectionID string, files []FileInput) (*Job, error) {
	job := newJob(KindSection, sectionID, files)
	return job, o.submit(job)
}

// SubmitDocument queues a whole-document upload.
func (o *Orchestrator) SubmitDocument(file FileInput) (*Job, error) {
	job := newJob(KindDocument, "", []FileInput{file})
	return job, o.submit(job)
}

func newJob(kind JobKind, sectionID string, files []FileInput) *Job {
	now := time.Now()
	return &Job{
		ID:        uuid.New().String(),
		Kind:      kind,
		SectionID: sectionID,
		Status:    StatusQueued,
		Progress:  Progress{FilesTotal: len(files)},
		CreatedAt: now,
		UpdatedAt: now,
		files:     files,
	}
}

func (o *Orchestrator) submit(job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.SetStatus(StatusFailed)
		return fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}
