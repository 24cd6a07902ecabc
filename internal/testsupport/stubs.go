package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// Environment variables understood by the stub tools.
const (
	// StubFailEnv names a file (base name) the stubs refuse to process.
	StubFailEnv = "MP3SYNC_STUB_FAIL"
	// StubExitEnv sets the exit status of a refused file. Defaults to 3.
	StubExitEnv = "MP3SYNC_STUB_EXIT"
	// StubLogEnv appends one line per invocation ("<tool> <args>") to a file.
	StubLogEnv = "MP3SYNC_STUB_LOG"
)

// The decoder copies its input to the -o target with a marker line. It is
// called as: flac -d -f --totally-silent IN -o OUT.
const flacStub = `#!/bin/sh
[ -n "$MP3SYNC_STUB_LOG" ] && echo "flac $*" >> "$MP3SYNC_STUB_LOG"
in="$4"
out="$6"
if [ -n "$MP3SYNC_STUB_FAIL" ] && [ "$(basename "$in")" = "$MP3SYNC_STUB_FAIL" ]; then
	echo "$in: ERROR while decoding data"
	echo "state = FLAC__STREAM_DECODER_READ_FRAME" >&2
	exit "${MP3SYNC_STUB_EXIT:-3}"
fi
{ echo "WAV"; cat "$in"; } > "$out"
`

// The encoder writes a partial output before failing so callers can observe
// cleanup. It is called as: lame -Shv IN OUT.
const lameStub = `#!/bin/sh
[ -n "$MP3SYNC_STUB_LOG" ] && echo "lame $*" >> "$MP3SYNC_STUB_LOG"
in="$2"
out="$3"
if [ -n "$MP3SYNC_STUB_FAIL" ] && [ "$(basename "$out")" = "$MP3SYNC_STUB_FAIL" ]; then
	echo "partial" > "$out"
	echo "lame: write error"
	exit "${MP3SYNC_STUB_EXIT:-3}"
fi
{ echo "MP3"; cat "$in"; } > "$out"
`

// InstallStubTools writes stub flac and lame executables into dir, prepends
// dir to PATH for the duration of the test, and returns dir.
func InstallStubTools(t testing.TB, dir string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir bin dir: %v", err)
	}
	stubs := map[string]string{"flac": flacStub, "lame": lameStub}
	for name, script := range stubs {
		target := filepath.Join(dir, name)
		if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
			t.Fatalf("write stub %s: %v", name, err)
		}
	}

	oldPath := os.Getenv("PATH")
	if err := os.Setenv("PATH", dir+string(os.PathListSeparator)+oldPath); err != nil {
		t.Fatalf("set PATH: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Setenv("PATH", oldPath)
	})
	return dir
}
