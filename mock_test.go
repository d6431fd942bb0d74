package anuvad

import (
	"context"
	"io"

	"github.com/anuvad-labs/anuvad-go/internal/domain"
)

// --- Mocks for internal use-case interfaces ---

type mockUpload struct {
	submitFn func(req domain.UploadRequest, file io.Reader) (domain.JobHandle, error)
}

func (m *mockUpload) Submit(_ context.Context, req domain.UploadRequest, file io.Reader) (domain.JobHandle, error) {
	return m.submitFn(req, file)
}

type mockWatchHandle struct {
	updates chan domain.Job
	stops   int
	err     error
}

func (m *mockWatchHandle) Updates() <-chan domain.Job { return m.updates }
func (m *mockWatchHandle) Stop()                      { m.stops++ }
func (m *mockWatchHandle) Err() error                 { return m.err }

type mockPoll struct {
	getFn   func(jobID string) (domain.Job, error)
	watchFn func(jobID string) watchHandle
}

func (m *mockPoll) Get(_ context.Context, jobID string) (domain.Job, error) {
	return m.getFn(jobID)
}

func (m *mockPoll) Watch(_ context.Context, jobID string) watchHandle {
	return m.watchFn(jobID)
}

type mockArtifact struct {
	fetchFn   func(jobID string, kind domain.ArtifactKind) (io.ReadCloser, error)
	previewFn func(jobID string, kind domain.ArtifactKind) (io.ReadCloser, error)
	saveFn    func(jobID string, kind domain.ArtifactKind, path string) (int64, error)
}

func (m *mockArtifact) Fetch(_ context.Context, jobID string, kind domain.ArtifactKind) (io.ReadCloser, error) {
	return m.fetchFn(jobID, kind)
}

func (m *mockArtifact) Preview(_ context.Context, jobID string, kind domain.ArtifactKind) (io.ReadCloser, error) {
	return m.previewFn(jobID, kind)
}

func (m *mockArtifact) SaveTo(_ context.Context, jobID string, kind domain.ArtifactKind, path string) (int64, error) {
	return m.saveFn(jobID, kind, path)
}

type mockSession struct {
	loginFn    func(username, password string) (domain.Ledger, error)
	logoutFn   func() error
	credential string
	downgrades []error
}

func (m *mockSession) Login(_ context.Context, username, password string) (domain.Ledger, error) {
	return m.loginFn(username, password)
}

func (m *mockSession) Logout() error {
	if m.logoutFn != nil {
		return m.logoutFn()
	}
	return nil
}

func (m *mockSession) Credential() (string, error) {
	if m.credential == "" {
		return "", domain.ErrNoSession
	}
	return m.credential, nil
}

func (m *mockSession) Downgrade(err error) { m.downgrades = append(m.downgrades, err) }

type mockLedger struct {
	loadFn   func() (domain.Ledger, error)
	snapshot domain.Ledger
	loaded   bool
	resetFn  func(confirmed bool) (domain.Ledger, error)
}

func (m *mockLedger) Load(_ context.Context) (domain.Ledger, error) { return m.loadFn() }

func (m *mockLedger) Snapshot() (domain.Ledger, bool) { return m.snapshot, m.loaded }

func (m *mockLedger) Reset(_ context.Context, confirmed bool) (domain.Ledger, error) {
	return m.resetFn(confirmed)
}

type mockRotation struct {
	rotateFn func(current, next string) error
}

func (m *mockRotation) Rotate(_ context.Context, current, next string) error {
	return m.rotateFn(current, next)
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

// newMockClient builds a Client with every dependency mocked out.
func newMockClient() (*Client, *mocks) {
	m := &mocks{
		upload:   &mockUpload{},
		poll:     &mockPoll{},
		artifact: &mockArtifact{},
		session:  &mockSession{},
		ledger:   &mockLedger{},
		rotation: &mockRotation{},
		pinger:   &mockPinger{},
	}
	obs, _ := newObserver(nil, nil)
	c := &Client{
		uploadSvc:   m.upload,
		pollSvc:     m.poll,
		artifactSvc: m.artifact,
		sessionSvc:  m.session,
		ledgerSvc:   m.ledger,
		rotationSvc: m.rotation,
		health:      m.pinger,
		obs:         obs,
	}
	return c, m
}

type mocks struct {
	upload   *mockUpload
	poll     *mockPoll
	artifact *mockArtifact
	session  *mockSession
	ledger   *mockLedger
	rotation *mockRotation
	pinger   *mockPinger
}
