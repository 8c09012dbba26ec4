package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"
)

// JobStatus represents the state of a report analysis job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusParsing    JobStatus = "parsing"
	StatusDetecting  JobStatus = "detecting"
	StatusAnalyzing  JobStatus = "analyzing"
	StatusScoring    JobStatus = "scoring"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
	StatusPartial    JobStatus = "partial"
	StatusDupSkipped JobStatus = "duplicate_skipped"
)

// Job tracks the state of a single report analysis.
type Job struct {
	mu sync.Mutex

	ID    string `json:"job_id"`
	DocID string `json:"doc_id"`

	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Filename string    `json:"filename"`
	Title    string    `json:"title"`

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
	TotalPoints    int      `json:"total_points"`
	PointsAnalyzed int      `json:"points_analyzed"`
	FindingsValid  int      `json:"findings_valid"`
	Score          int      `json:"score"`
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

// SetContentHash records the content hash once parsing is done.
func (j *Job) SetContentHash(hash string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.ContentHash = hash
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

// IncrPointsAnalyzed atomically increments points analyzed.
func (j *Job) IncrPointsAnalyzed() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.PointsAnalyzed++
	j.UpdatedAt = time.Now()
}

// AddFindings records the valid finding count.
func (j *Job) AddFindings(valid int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.FindingsValid += valid
	j.UpdatedAt = time.Now()
}

// SetTotalPoints records the detected point count.
func (j *Job) SetTotalPoints(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.TotalPoints = n
	j.UpdatedAt = time.Now()
}

// SetScore records the computed safety score.
func (j *Job) SetScore(score int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.Score = score
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
	ID          string    `json:"job_id"`
	DocID       string    `json:"doc_id"`
	Status      JobStatus `json:"status"`
	Phase       string    `json:"phase"`
	Filename    string    `json:"filename"`
	Title       string    `json:"title"`
	ContentHash string    `json:"content_hash,omitempty"`
	Progress    Progress  `json:"progress"`
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
		ID:          j.ID,
		DocID:       j.DocID,
		Status:      j.Status,
		Phase:       j.Phase,
		Filename:    j.Filename,
		Title:       j.Title,
		ContentHash: j.ContentHash,
		Progress: Progress{
			TotalPoints:    j.Progress.TotalPoints,
			PointsAnalyzed: j.Progress.PointsAnalyzed,
			FindingsValid:  j.Progress.FindingsValid,
			Score:          j.Progress.Score,
			Errors:         errs,
		},
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
