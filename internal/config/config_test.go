package config

import "testing"

func TestValidate_MissingBaseURL(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing backend.base_url")
	}
}

func TestValidate_BadScheme(t *testing.T) {
	cfg := Config{Backend: BackendConfig{BaseURL: "ftp://translator.local"}}
	cfg.ApplyDefaults()

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for non-http scheme")
	}
}

func TestValidate_UploadCeiling(t *testing.T) {
	cfg := Config{
		Backend: BackendConfig{BaseURL: "http://localhost:8000"},
		Upload:  UploadConfig{MaxBytes: 30 << 20},
	}
	cfg.ApplyDefaults()

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for max_bytes above the backend ceiling")
	}

	expected := "upload.max_bytes may not exceed the 25 MB backend ceiling, got 31457280"
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Backend.TimeoutSec != 30 {
		t.Errorf("expected TimeoutSec=30, got %d", cfg.Backend.TimeoutSec)
	}
	if cfg.Poll.IntervalSec != 2 {
		t.Errorf("expected IntervalSec=2, got %d", cfg.Poll.IntervalSec)
	}
	if cfg.Upload.MaxBytes != 25<<20 {
		t.Errorf("expected MaxBytes=25MB, got %d", cfg.Upload.MaxBytes)
	}
	if cfg.Admin.CredentialFile == "" {
		t.Error("expected a default credential file path")
	}
	if cfg.History.Path == "" {
		t.Error("expected a default history path")
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		Backend: BackendConfig{BaseURL: "https://translator.example.com", TimeoutSec: 60},
		Poll:    PollConfig{IntervalSec: 5},
		Upload:  UploadConfig{MaxBytes: 10 << 20},
		History: HistoryConfig{Path: "/tmp/history.db"},
		Admin:   AdminConfig{CredentialFile: "/tmp/creds.yaml"},
	}
	cfg.ApplyDefaults()

	if cfg.Backend.TimeoutSec != 60 {
		t.Errorf("expected TimeoutSec=60, got %d", cfg.Backend.TimeoutSec)
	}
	if cfg.Poll.IntervalSec != 5 {
		t.Errorf("expected IntervalSec=5, got %d", cfg.Poll.IntervalSec)
	}
	if cfg.Upload.MaxBytes != 10<<20 {
		t.Errorf("expected MaxBytes=10MB, got %d", cfg.Upload.MaxBytes)
	}
	if cfg.History.Path != "/tmp/history.db" {
		t.Errorf("expected history path preserved, got %q", cfg.History.Path)
	}
	if cfg.Admin.CredentialFile != "/tmp/creds.yaml" {
		t.Errorf("expected credential file preserved, got %q", cfg.Admin.CredentialFile)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("ANUVAD_TEST_URL", "http://backend:9000")

	out := string(expandEnvVars([]byte("base_url: ${ANUVAD_TEST_URL}\nlevel: ${ANUVAD_TEST_LEVEL:-info}\n")))
	expected := "base_url: http://backend:9000\nlevel: info\n"
	if out != expected {
		t.Errorf("unexpected expansion:\ngot:  %q\nwant: %q", out, expected)
	}
}
