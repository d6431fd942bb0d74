package anuvad

import (
	"time"

	"github.com/anuvad-labs/anuvad-go/internal/domain"
)

// Language is a supported Indic language code.
type Language string

// Language constants.
const (
	LanguageGujarati Language = "gu"
	LanguageHindi    Language = "hi"
	LanguageMarathi  Language = "mr"
)

// Direction selects which way a document is translated.
type Direction string

// Direction constants.
const (
	DirectionToTarget Direction = "to_target" // English to the Indic language
	DirectionToSource Direction = "to_source" // the Indic language to English
)

// Mode selects the translation register.
type Mode string

// Mode constants.
const (
	ModeGeneral Mode = "general"
	ModeFormal  Mode = "formal"
)

// JobStatus is the lifecycle state of a translation job.
type JobStatus string

// JobStatus constants.
const (
	StatusQueued     JobStatus = "queued"
	StatusProcessing JobStatus = "processing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// Terminal reports whether the status is final.
func (s JobStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// ArtifactKind selects which document stream to retrieve.
type ArtifactKind string

// ArtifactKind constants.
const (
	ArtifactTranslated ArtifactKind = "translated"
	ArtifactOriginal   ArtifactKind = "original"
)

// UploadParams describes a document submission.
type UploadParams struct {
	Filename  string
	Size      int64
	Language  Language
	Direction Direction
	Mode      Mode
}

// JobHandle is the acknowledgement returned by a successful upload.
type JobHandle struct {
	JobID   string
	Message string
}

// Job is a point-in-time job snapshot.
type Job struct {
	ID       string
	Status   JobStatus
	Progress int
	Message  string
}

// Phase returns a human-readable description of what the job is doing.
// The server message wins when present; otherwise the progress value is
// mapped to a coarse processing phase.
func (j Job) Phase() string {
	return domain.DisplayPhase(j.Progress, j.Message)
}

// UsageEntry is one recorded billable operation.
type UsageEntry struct {
	Timestamp time.Time
	Operation string
	Pages     int
	Cost      float64
}

// UsageReport is the server's usage and budget snapshot. All figures are
// computed server-side; the client never derives them locally.
type UsageReport struct {
	CurrentUsage    float64
	BudgetLimit     float64
	RemainingBudget float64
	PercentageUsed  float64
	TotalRequests   int
	Recent          []UsageEntry
}

// --- Converters ---

func toDomainUpload(p UploadParams) domain.UploadRequest {
	return domain.UploadRequest{
		Filename:  p.Filename,
		Size:      p.Size,
		Language:  domain.Language(p.Language),
		Direction: domain.Direction(p.Direction),
		Mode:      domain.Mode(p.Mode),
	}
}

func fromDomainHandle(h domain.JobHandle) JobHandle {
	return JobHandle{JobID: h.JobID, Message: h.Message}
}

func fromDomainJob(j domain.Job) Job {
	return Job{
		ID:       j.ID,
		Status:   JobStatus(j.Status),
		Progress: j.Progress,
		Message:  j.Message,
	}
}

func fromDomainLedger(l domain.Ledger) UsageReport {
	report := UsageReport{
		CurrentUsage:    l.CurrentUsage,
		BudgetLimit:     l.BudgetLimit,
		RemainingBudget: l.RemainingBudget,
		PercentageUsed:  l.DisplayPercent(),
		TotalRequests:   l.TotalRequests,
	}
	for _, r := range l.RecentRequests {
		report.Recent = append(report.Recent, UsageEntry{
			Timestamp: r.Timestamp,
			Operation: r.Operation,
			Pages:     r.Pages,
			Cost:      r.Cost,
		})
	}
	return report
}
