package domain

import "time"

// Status is the backend-reported job state.
type Status string

// Job status constants. Completed and failed are terminal.
const (
	StatusQueued     Status = "queued"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Job is a server-tracked asynchronous translation unit.
// Clients never mutate a Job; only the backend writes job state.
type Job struct {
	ID        string
	Status    Status
	Progress  int // 0..100, non-decreasing while processing
	Message   string
	CreatedAt time.Time
}

// JobHandle is the opaque reference returned by a successful submission.
type JobHandle struct {
	JobID   string
	Message string
}

// ArtifactKind selects which binary result to fetch.
type ArtifactKind string

// Artifact kinds.
const (
	ArtifactTranslated ArtifactKind = "translated"
	ArtifactOriginal   ArtifactKind = "original"
)

// Valid reports whether the kind is one of the known artifact kinds.
func (k ArtifactKind) Valid() bool {
	return k == ArtifactTranslated || k == ArtifactOriginal
}
