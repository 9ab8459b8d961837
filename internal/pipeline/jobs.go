package pipeline

import (
	"sync"
	"time"
)

// JobKind distinguishes the two upload paths.
type JobKind string

const (
	KindSection  JobKind = "section"
	KindDocument JobKind = "document"
)

// JobStatus represents the state of an upload job.
type JobStatus string

const (
	StatusQueued       JobStatus = "queued"
	StatusParsing      JobStatus = "parsing"
	StatusRendering    JobStatus = "rendering"
	StatusExtracting   JobStatus = "extracting"
	StatusCommitted    JobStatus = "committed"
	StatusFailed       JobStatus = "failed"
	StatusStaleDropped JobStatus = "stale_dropped"
)

// FileInput is one uploaded file held in memory until the worker picks
// the job up.
type FileInput struct {
	Name     string
	MimeType string
	Data     []byte
}

// Progress tracks per-file processing progress.
type Progress struct {
	FilesTotal int      `json:"files_total"`
	FilesDone  int      `json:"files_done"`
	Errors     []string `json:"errors"`
}

// Job tracks the state of a single upload.
type Job struct {
	mu sync.Mutex

	ID        string    `json:"job_id"`
	Kind      JobKind   `json:"kind"`
	SectionID string    `json:"section_id,omitempty"`
	Status    JobStatus `json:"status"`
	Progress  Progress  `json:"progress"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	files  []FileInput
	errors []string
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.UpdatedAt = time.Now()
}

// AddError records a per-file error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// IncrFilesDone atomically increments the processed-file counter.
func (j *Job) IncrFilesDone() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.FilesDone++
	j.UpdatedAt = time.Now()
}

// Files returns the raw file inputs.
func (j *Job) Files() []FileInput {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.files
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID        string    `json:"job_id"`
	Kind      JobKind   `json:"kind"`
	SectionID string    `json:"section_id,omitempty"`
	Status    JobStatus `json:"status"`
	Progress  Progress  `json:"progress"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	return JobSnapshot{
		ID:        j.ID,
		Kind:      j.Kind,
		SectionID: j.SectionID,
		Status:    j.Status,
		Progress: Progress{
			FilesTotal: j.Progress.FilesTotal,
			FilesDone:  j.Progress.FilesDone,
			Errors:     errs,
		},
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}
