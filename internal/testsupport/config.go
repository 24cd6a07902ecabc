package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"mp3sync/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Source lives under <base>/flac, destination under <base>/mp3, and the run
// targets the "album" subdirectory. The source subdirectory is created.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.TempDir = filepath.Join(base, "tmp")
	cfgVal.Run = config.Run{
		SourceDir:   filepath.Join(base, "flac"),
		DestDir:     filepath.Join(base, "mp3"),
		RelativeDir: "album",
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	for _, dir := range []string{cfgVal.Paths.TempDir, SourceDir(builder.cfg)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	return builder.cfg
}

// WithVerbose enables verbose progress output.
func WithVerbose() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Run.Verbose = true
	}
}

// WithRelativeDir overrides the relative subdirectory.
func WithRelativeDir(rel string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Run.RelativeDir = rel
	}
}

// WithStubbedBinaries installs working flac and lame stand-ins and points the
// config at them. See InstallStubTools for their behavior.
func WithStubbedBinaries() ConfigOption {
	return func(b *configBuilder) {
		binDir := InstallStubTools(b.t, filepath.Join(b.baseDir, "bin"))
		b.cfg.Tools.FlacBinary = filepath.Join(binDir, "flac")
		b.cfg.Tools.LameBinary = filepath.Join(binDir, "lame")
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Run.SourceDir)
}

// SourceDir returns the unresolved source working directory.
func SourceDir(cfg *config.Config) string {
	return filepath.Join(cfg.Run.SourceDir, cfg.Run.RelativeDir)
}

// DestDir returns the unresolved destination working directory.
func DestDir(cfg *config.Config) string {
	return filepath.Join(cfg.Run.DestDir, cfg.Run.RelativeDir)
}
