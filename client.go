package anuvad

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/anuvad-labs/anuvad-go/internal/domain"
	"github.com/anuvad-labs/anuvad-go/internal/repository/credfile"
	"github.com/anuvad-labs/anuvad-go/internal/transport/rest"
	artifactuc "github.com/anuvad-labs/anuvad-go/internal/usecase/artifact"
	"github.com/anuvad-labs/anuvad-go/internal/usecase/ledger"
	polluc "github.com/anuvad-labs/anuvad-go/internal/usecase/poll"
	"github.com/anuvad-labs/anuvad-go/internal/usecase/rotation"
	"github.com/anuvad-labs/anuvad-go/internal/usecase/session"
	uploaduc "github.com/anuvad-labs/anuvad-go/internal/usecase/upload"
)

// Internal interfaces for test substitution.
type uploadUseCase interface {
	Submit(ctx context.Context, req domain.UploadRequest, file io.Reader) (domain.JobHandle, error)
}

type watchHandle interface {
	Updates() <-chan domain.Job
	Stop()
	Err() error
}

type pollUseCase interface {
	Get(ctx context.Context, jobID string) (domain.Job, error)
	Watch(ctx context.Context, jobID string) watchHandle
}

type artifactUseCase interface {
	Fetch(ctx context.Context, jobID string, kind domain.ArtifactKind) (io.ReadCloser, error)
	Preview(ctx context.Context, jobID string, kind domain.ArtifactKind) (io.ReadCloser, error)
	SaveTo(ctx context.Context, jobID string, kind domain.ArtifactKind, path string) (int64, error)
}

type sessionUseCase interface {
	Login(ctx context.Context, username, password string) (domain.Ledger, error)
	Logout() error
	Credential() (string, error)
	Downgrade(err error)
}

type ledgerUseCase interface {
	Load(ctx context.Context) (domain.Ledger, error)
	Snapshot() (domain.Ledger, bool)
	Reset(ctx context.Context, confirmed bool) (domain.Ledger, error)
}

type rotationUseCase interface {
	Rotate(ctx context.Context, currentPassword, newPassword string) error
}

type pinger interface {
	Ping(ctx context.Context) error
}

// Client is the anuvad SDK entry point.
type Client struct {
	uploadSvc   uploadUseCase
	pollSvc     pollUseCase
	artifactSvc artifactUseCase
	sessionSvc  sessionUseCase
	ledgerSvc   ledgerUseCase
	rotationSvc rotationUseCase
	health      pinger
	obs         *observer
}

// New creates an anuvad Client for the backend at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("anuvad: backend base URL required")
	}

	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	restClient := rest.NewClient(&rest.Config{
		BaseURL:    baseURL,
		Timeout:    cfg.timeout,
		HTTPClient: cfg.httpClient,
	})

	store, err := buildStore(cfg)
	if err != nil {
		return nil, err
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	sessionMgr := session.NewManager(restClient, store, nil)
	return &Client{
		uploadSvc:   uploaduc.New(restClient, cfg.maxUploadBytes, nil),
		pollSvc:     pollAdapter{svc: polluc.New(restClient, cfg.pollInterval, nil)},
		artifactSvc: artifactuc.New(restClient, nil),
		sessionSvc:  sessionMgr,
		ledgerSvc:   ledger.New(restClient, sessionMgr, nil),
		rotationSvc: rotation.New(restClient, sessionMgr, nil),
		health:      restClient,
		obs:         obs,
	}, nil
}

func buildStore(cfg *clientConfig) (session.Store, error) {
	if cfg.sessionStore != nil {
		return storeAdapter{inner: cfg.sessionStore}, nil
	}

	path := cfg.credentialPath
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("anuvad: resolve home dir for credential store: %w", err)
		}
		path = filepath.Join(home, ".anuvad", "credentials.yaml")
	}
	return credfile.New(path), nil
}

// pollAdapter narrows *poll.Handle to the watchHandle interface.
type pollAdapter struct {
	svc *polluc.Service
}

func (a pollAdapter) Get(ctx context.Context, jobID string) (domain.Job, error) {
	return a.svc.Get(ctx, jobID)
}

func (a pollAdapter) Watch(ctx context.Context, jobID string) watchHandle {
	return a.svc.Watch(ctx, jobID)
}

// storeAdapter bridges a user-supplied SessionStore to the session layer.
type storeAdapter struct {
	inner SessionStore
}

func (s storeAdapter) Get() (domain.Credential, error) {
	token, err := s.inner.Load()
	if err != nil {
		return domain.Credential{}, err
	}
	return domain.Credential{Token: token}, nil
}

func (s storeAdapter) Set(cred domain.Credential) error {
	return s.inner.Save(cred.Token)
}

func (s storeAdapter) Clear() error {
	return s.inner.Clear()
}
