package syncer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"mp3sync/internal/config"
	"mp3sync/internal/discover"
	"mp3sync/internal/logging"
	"mp3sync/internal/mp3verify"
	"mp3sync/internal/runlock"
	"mp3sync/internal/syncpaths"
	"mp3sync/internal/tempfile"
	"mp3sync/internal/toolexec"
)

// ErrVerification marks an encoded file that failed the MP3 frame check.
var ErrVerification = errors.New("mp3 verification failed")

// Transcoder decodes FLAC into WAV and encodes WAV into MP3.
type Transcoder interface {
	Decode(ctx context.Context, src, wav string) error
	Encode(ctx context.Context, wav, dest string) error
}

// Result summarizes a run.
type Result struct {
	Dirs      syncpaths.Dirs
	Converted []string
	Skipped   []string
}

// Option configures a Syncer.
type Option func(*Syncer)

// WithOutput sets the writer for verbose progress lines.
func WithOutput(w io.Writer) Option {
	return func(s *Syncer) {
		if w != nil {
			s.out = w
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Syncer) {
		s.logger = logging.NewComponentLogger(logger, "syncer")
	}
}

// WithVerifier overrides the post-encode check. It runs only when
// validation.verify_mp3 is enabled.
func WithVerifier(verify func(path string) error) Option {
	return func(s *Syncer) {
		if verify != nil {
			s.verify = verify
		}
	}
}

// Syncer runs the conversion pipeline for one configuration.
type Syncer struct {
	cfg        *config.Config
	transcoder Transcoder
	verify     func(path string) error
	out        io.Writer
	logger     *slog.Logger
}

// New constructs a Syncer. cfg.Run must name the source, destination, and
// relative directories.
func New(cfg *config.Config, transcoder Transcoder, opts ...Option) *Syncer {
	s := &Syncer{
		cfg:        cfg,
		transcoder: transcoder,
		verify:     verifyMP3,
		out:        io.Discard,
		logger:     logging.NewComponentLogger(nil, "syncer"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run performs the sync. Errors are returned unmodified in kind:
// *discover.NoInputFilesError for an empty source, *toolexec.CommandError
// for a failed or interrupted tool, ErrVerification for a rejected encode,
// and wrapped filesystem errors otherwise.
func (s *Syncer) Run(ctx context.Context) (Result, error) {
	run := s.cfg.Run
	dirs, err := syncpaths.Resolve(run.SourceDir, run.DestDir, run.RelativeDir)
	if err != nil {
		return Result{}, err
	}
	result := Result{Dirs: dirs}

	s.printf("Source dir: %s\n", dirs.Source)
	s.printf("Dest dir: %s\n", dirs.Dest)

	if err := syncpaths.EnsureDest(dirs); err != nil {
		return result, err
	}

	if s.cfg.Lock.Enabled {
		lock, err := runlock.Acquire(runlock.PathFor(s.cfg.TempDir(), dirs.Dest))
		if err != nil {
			return result, err
		}
		defer func() {
			if err := lock.Release(); err != nil {
				s.logger.Warn("release run lock", logging.Error(err))
			}
		}()
	}

	files, err := discover.FLACFiles(dirs.Source)
	if err != nil {
		return result, err
	}
	s.logger.Info("sync started",
		logging.String(logging.FieldSource, dirs.Source),
		logging.String(logging.FieldDest, dirs.Dest),
		logging.Int("files", len(files)),
	)

	for _, name := range files {
		if ctx.Err() != nil {
			return result, toolexec.NewInterruptError()
		}
		candidate := NewCandidate(dirs, name)
		converted, err := s.process(ctx, candidate)
		if err != nil {
			s.removePartial(candidate.Dest)
			s.logger.Info("conversion aborted",
				logging.String(logging.FieldSource, candidate.Source),
				logging.String(logging.FieldDest, candidate.Dest),
				logging.Error(err),
			)
			return result, err
		}
		if converted {
			result.Converted = append(result.Converted, candidate.Dest)
		} else {
			result.Skipped = append(result.Skipped, candidate.Dest)
		}
	}

	s.logger.Info("sync complete",
		logging.Int("converted", len(result.Converted)),
		logging.Int("skipped", len(result.Skipped)),
	)
	return result, nil
}

// process converts one candidate. It reports false when the destination
// already existed and nothing was run.
func (s *Syncer) process(ctx context.Context, c Candidate) (bool, error) {
	if exists(c.Dest) {
		s.printf("skipping: %s\n", c.Dest)
		s.logger.Debug("destination exists", logging.String(logging.FieldDest, c.Dest))
		return false, nil
	}

	tmp, err := tempfile.Acquire(s.cfg.Paths.TempDir, TempPrefix, TempSuffix)
	if err != nil {
		return false, err
	}
	defer func() {
		if err := tmp.Release(); err != nil {
			s.logger.Warn("remove temp file", logging.Error(err))
		}
	}()

	s.printf("%s\n", c.Dest)
	start := time.Now()

	if err := s.transcoder.Decode(ctx, c.Source, tmp.Path()); err != nil {
		return false, err
	}
	if err := s.transcoder.Encode(ctx, tmp.Path(), c.Dest); err != nil {
		return false, err
	}
	if s.cfg.Validation.VerifyMP3 {
		if err := s.verify(c.Dest); err != nil {
			return false, fmt.Errorf("%w: %s: %w", ErrVerification, c.Dest, err)
		}
	}

	s.logger.Info("converted file",
		logging.String(logging.FieldSource, c.Source),
		logging.String(logging.FieldDest, c.Dest),
		logging.Duration("elapsed", time.Since(start)),
	)
	return true, nil
}

// removePartial deletes a destination left behind by a failed conversion.
func (s *Syncer) removePartial(dest string) {
	if _, err := os.Lstat(dest); err != nil {
		return
	}
	s.printf("cleaning up: %s\n", dest)
	if err := os.Remove(dest); err != nil {
		s.logger.Warn("remove partial destination",
			logging.String(logging.FieldDest, dest),
			logging.Error(err),
		)
	}
}

func (s *Syncer) printf(format string, args ...any) {
	if !s.cfg.Run.Verbose {
		return
	}
	fmt.Fprintf(s.out, format, args...)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func verifyMP3(path string) error {
	_, err := mp3verify.File(path)
	return err
}
