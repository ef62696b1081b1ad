package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"
)

// JobStatus represents the state of an ingestion job.
type JobStatus string

const (
	StatusQueued    JobStatus = "queued"
	StatusChunking  JobStatus = "chunking"
	StatusEmbedding JobStatus = "embedding"
	StatusStoring   JobStatus = "storing"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
	StatusPartial   JobStatus = "partial"
)

// Job tracks the state of a single document ingestion.
type Job struct {
	mu sync.Mutex

	ID string `json:"job_id"`

	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Filename string    `json:"filename"`

	DocumentNumber string `json:"document_number,omitempty"`
	DocumentTitle  string `json:"document_title,omitempty"`

	Progress Progress `json:"progress"`

	ContentHash string    `json:"content_hash,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData []byte
	errors   []string
}

// Progress tracks processing progress.
type Progress struct {
	TotalChunks    int      `json:"total_chunks"`
	ChunksEmbedded int      `json:"chunks_embedded"`
	ChunksStored   int      `json:"chunks_stored"`
	Errors         []string `json:"errors"`
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

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// SetDocument records the metadata extracted during chunking.
func (j *Job) SetDocument(number, title string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.DocumentNumber = number
	j.DocumentTitle = title
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// IncrChunksEmbedded atomically increments the embedded-chunk count.
func (j *Job) IncrChunksEmbedded() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.ChunksEmbedded++
	j.UpdatedAt = time.Now()
}

// AddChunksStored records chunks persisted to the store.
func (j *Job) AddChunksStored(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.ChunksStored += n
	j.UpdatedAt = time.Now()
}

// SetTotalChunks records total chunk count.
func (j *Job) SetTotalChunks(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.TotalChunks = n
	j.UpdatedAt = time.Now()
}

// SetFileData sets the raw file bytes for processing.
func (j *Job) SetFileData(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = data
}

// FileData returns the raw file bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID             string    `json:"job_id"`
	Status         JobStatus `json:"status"`
	Phase          string    `json:"phase"`
	Filename       string    `json:"filename"`
	DocumentNumber string    `json:"document_number,omitempty"`
	DocumentTitle  string    `json:"document_title,omitempty"`
	Progress       Progress  `json:"progress"`
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
		ID:             j.ID,
		Status:         j.Status,
		Phase:          j.Phase,
		Filename:       j.Filename,
		DocumentNumber: j.DocumentNumber,
		DocumentTitle:  j.DocumentTitle,
		Progress: Progress{
			TotalChunks:    j.Progress.TotalChunks,
			ChunksEmbedded: j.Progress.ChunksEmbedded,
			ChunksStored:   j.Progress.ChunksStored,
			Errors:         errs,
		},
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
