package anuvad

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/anuvad-labs/anuvad-go/internal/domain"
)

func TestNew_RequiresBaseURL(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Fatal("expected error for empty base URL")
	}
}

func TestUpload_ConvertsParams(t *testing.T) {
	c, m := newMockClient()
	var got domain.UploadRequest
	m.upload.submitFn = func(req domain.UploadRequest, _ io.Reader) (domain.JobHandle, error) {
		got = req
		return domain.JobHandle{JobID: "j1", Message: "accepted"}, nil
	}

	handle, err := c.Upload(context.Background(), UploadParams{
		Filename:  "circular.pdf",
		Size:      1024,
		Language:  LanguageMarathi,
		Direction: DirectionToSource,
		Mode:      ModeFormal,
	}, strings.NewReader("%PDF-1.7"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if handle.JobID != "j1" {
		t.Errorf("unexpected handle %+v", handle)
	}
	if got.Language != domain.LanguageMarathi || got.Direction != domain.DirectionToSource {
		t.Errorf("params not converted: %+v", got)
	}
	if got.Mode != domain.ModeFormal {
		t.Errorf("mode not converted: %+v", got)
	}
}

func TestJobStatus_Converts(t *testing.T) {
	c, m := newMockClient()
	m.poll.getFn = func(jobID string) (domain.Job, error) {
		return domain.Job{ID: jobID, Status: domain.StatusProcessing, Progress: 42, Message: ""}, nil
	}

	job, err := c.JobStatus(context.Background(), "j1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.Status != StatusProcessing || job.Progress != 42 {
		t.Errorf("unexpected job %+v", job)
	}
	if job.Phase() != "translating" {
		t.Errorf("expected translating phase fallback, got %q", job.Phase())
	}
}

func TestWatchJob_ForwardsUntilClose(t *testing.T) {
	c, m := newMockClient()
	h := &mockWatchHandle{updates: make(chan domain.Job, 3)}
	m.poll.watchFn = func(string) watchHandle { return h }

	h.updates <- domain.Job{ID: "j", Status: domain.StatusProcessing, Progress: 50}
	h.updates <- domain.Job{ID: "j", Status: domain.StatusCompleted, Progress: 100}
	close(h.updates)

	w := c.WatchJob(context.Background(), "j")
	var got []Job
	for job := range w.Updates() {
		got = append(got, job)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 updates, got %d", len(got))
	}
	if !got[1].Status.Terminal() {
		t.Errorf("expected terminal final update, got %+v", got[1])
	}
	if w.Err() != nil {
		t.Errorf("unexpected watch error: %v", w.Err())
	}
}

func TestWatch_StopIsIdempotent(t *testing.T) {
	c, m := newMockClient()
	h := &mockWatchHandle{updates: make(chan domain.Job)}
	m.poll.watchFn = func(string) watchHandle { return h }

	w := c.WatchJob(context.Background(), "j")
	w.Stop()
	w.Stop()
	close(h.updates)

	if h.stops != 1 {
		t.Errorf("expected one underlying stop, got %d", h.stops)
	}
	select {
	case _, ok := <-w.Updates():
		if ok {
			t.Error("no update should arrive after stop")
		}
	case <-time.After(time.Second):
		t.Error("updates channel should close after stop")
	}
}

func TestSaveArtifact(t *testing.T) {
	c, m := newMockClient()
	m.artifact.saveFn = func(jobID string, kind domain.ArtifactKind, path string) (int64, error) {
		if kind != domain.ArtifactOriginal {
			t.Errorf("unexpected kind %q", kind)
		}
		return 2048, nil
	}

	n, err := c.SaveArtifact(context.Background(), "j", ArtifactOriginal, "/tmp/x.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2048 {
		t.Errorf("unexpected byte count %d", n)
	}
}

func TestDashboard_ConvertsLedger(t *testing.T) {
	c, m := newMockClient()
	m.ledger.loadFn = func() (domain.Ledger, error) {
		return domain.Ledger{
			CurrentUsage:    45,
			BudgetLimit:     100,
			RemainingBudget: 55,
			PercentageUsed:  45,
			TotalRequests:   9,
			RecentRequests: []domain.UsageRecord{
				{Operation: "translate", Pages: 5, Cost: 45},
			},
		}, nil
	}

	report, err := c.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.RemainingBudget != 55 || report.PercentageUsed != 45 {
		t.Errorf("unexpected report %+v", report)
	}
	if len(report.Recent) != 1 || report.Recent[0].Operation != "translate" {
		t.Errorf("recent entries not converted: %+v", report.Recent)
	}
}

func TestResetUsage_ErrorsPassThrough(t *testing.T) {
	c, m := newMockClient()
	m.ledger.resetFn = func(confirmed bool) (domain.Ledger, error) {
		if !confirmed {
			return domain.Ledger{}, domain.ErrResetNotConfirmed
		}
		return domain.Ledger{BudgetLimit: 100, RemainingBudget: 100}, nil
	}

	_, err := c.ResetUsage(context.Background(), false)
	if !errors.Is(err, ErrResetNotConfirmed) {
		t.Fatalf("expected ErrResetNotConfirmed, got %v", err)
	}

	report, err := c.ResetUsage(context.Background(), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.CurrentUsage != 0 {
		t.Errorf("expected zeroed report, got %+v", report)
	}
}

func TestChangePassword(t *testing.T) {
	c, m := newMockClient()
	m.rotation.rotateFn = func(current, next string) error {
		if next == "weak" {
			return domain.ErrWeakPassword
		}
		return nil
	}

	if err := c.ChangePassword(context.Background(), "old12345", "weak"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	if err := c.ChangePassword(context.Background(), "old12345", "newsecret1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestObserverRecordsOperationSubject(t *testing.T) {
	var buf bytes.Buffer
	obs, err := newObserver(
		slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c, m := newMockClient()
	c.obs = obs
	m.poll.getFn = func(jobID string) (domain.Job, error) {
		return domain.Job{ID: jobID, Status: domain.StatusQueued}, nil
	}

	if _, err := c.JobStatus(context.Background(), "job-7"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"job_id":"job-7"`) {
		t.Errorf("log should carry the job id, got %s", out)
	}
	if !strings.Contains(out, `"op":"status"`) {
		t.Errorf("log should carry the operation, got %s", out)
	}
}

func TestHealth(t *testing.T) {
	c, m := newMockClient()
	m.pinger.err = domain.ErrTransport

	if err := c.Health(context.Background()); !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}
