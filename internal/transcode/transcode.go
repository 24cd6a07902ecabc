// Package transcode holds the fixed command-line contracts of the external
// FLAC decoder and MP3 encoder.
//
// Argument vectors are part of the external contract and must not change;
// only the executable names are configurable.
package transcode

import (
	"context"
	"errors"

	"mp3sync/internal/toolexec"
)

const (
	defaultFlacBinary = "flac"
	defaultLameBinary = "lame"
)

// DecodeArgs returns the flac arguments that decode in into out, overwriting
// out and suppressing all console output.
func DecodeArgs(in, out string) []string {
	return []string{"-d", "-f", "--totally-silent", in, "-o", out}
}

// EncodeArgs returns the lame arguments that encode in into out using the
// high quality VBR preset (-h -V default) in silent mode.
func EncodeArgs(in, out string) []string {
	return []string{"-Shv", in, out}
}

// Option configures a Transcoder.
type Option func(*Transcoder)

// WithFlacBinary overrides the decoder executable.
func WithFlacBinary(binary string) Option {
	return func(t *Transcoder) {
		if binary != "" {
			t.flac = binary
		}
	}
}

// WithLameBinary overrides the encoder executable.
func WithLameBinary(binary string) Option {
	return func(t *Transcoder) {
		if binary != "" {
			t.lame = binary
		}
	}
}

// Transcoder invokes flac and lame through a toolexec.Runner.
type Transcoder struct {
	runner toolexec.Runner
	flac   string
	lame   string
}

// New constructs a Transcoder using runner for every invocation.
func New(runner toolexec.Runner, opts ...Option) *Transcoder {
	t := &Transcoder{runner: runner, flac: defaultFlacBinary, lame: defaultLameBinary}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Decode converts the FLAC file src into the WAV file wav.
func (t *Transcoder) Decode(ctx context.Context, src, wav string) error {
	if src == "" || wav == "" {
		return errors.New("decode requires input and output paths")
	}
	return t.runner.Run(ctx, t.flac, DecodeArgs(src, wav)...)
}

// Encode converts the WAV file wav into the MP3 file dest.
func (t *Transcoder) Encode(ctx context.Context, wav, dest string) error {
	if wav == "" || dest == "" {
		return errors.New("encode requires input and output paths")
	}
	return t.runner.Run(ctx, t.lame, EncodeArgs(wav, dest)...)
}

// FlacBinary returns the configured decoder executable.
func (t *Transcoder) FlacBinary() string { return t.flac }

// LameBinary returns the configured encoder executable.
func (t *Transcoder) LameBinary() string { return t.lame }
