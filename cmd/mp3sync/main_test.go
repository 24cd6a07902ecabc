package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"mp3sync/internal/config"
	"mp3sync/internal/discover"
	"mp3sync/internal/testsupport"
	"mp3sync/internal/toolexec"
)

type cliTestEnv struct {
	cfg     *config.Config
	srcDir  string
	destDir string
	tempDir string
	logPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	home := filepath.Join(testsupport.BaseDir(cfg), "home")
	if err := os.MkdirAll(home, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", home)
	t.Chdir(home)
	for _, key := range []string{"MP3SYNC_FLAC", "MP3SYNC_LAME", "MP3SYNC_TEMP_DIR", testsupport.StubFailEnv, testsupport.StubExitEnv} {
		t.Setenv(key, "")
	}
	logPath := filepath.Join(testsupport.BaseDir(cfg), "tools.log")
	t.Setenv(testsupport.StubLogEnv, logPath)

	return &cliTestEnv{
		cfg:     cfg,
		srcDir:  testsupport.SourceDir(cfg),
		destDir: testsupport.DestDir(cfg),
		tempDir: cfg.Paths.TempDir,
		logPath: logPath,
	}
}

func (e *cliTestEnv) syncArgs(extra ...string) []string {
	args := append([]string{"--temp-dir", e.tempDir}, extra...)
	return append(args, e.cfg.Run.SourceDir, e.cfg.Run.DestDir, e.cfg.Run.RelativeDir)
}

func (e *cliTestEnv) toolLog(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(e.logPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("read tool log: %v", err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func (e *cliTestEnv) assertNoTempFiles(t *testing.T) {
	t.Helper()
	if names := testsupport.ListDir(t, e.tempDir); len(names) != 0 {
		t.Fatalf("temp files left behind: %q", names)
	}
}

func realDir(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("eval symlinks %s: %v", path, err)
	}
	return resolved
}

func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	return executeContext(t, context.Background(), args...)
}

func executeContext(t *testing.T, ctx context.Context, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(ctx, args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestNoArgumentsPrintsHelp(t *testing.T) {
	setupCLITestEnv(t)

	code, stdout, stderr := execute(t)
	if code != exitOK {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, stderr)
	}
	if !strings.Contains(stdout, "Usage:") || !strings.Contains(stdout, "source_dir dest_dir relative_dir") {
		t.Fatalf("expected usage text, got %q", stdout)
	}
}

func TestMissingPositionalArgumentsIsUsageError(t *testing.T) {
	env := setupCLITestEnv(t)

	code, _, stderr := execute(t, env.cfg.Run.SourceDir, env.cfg.Run.DestDir)
	if code != exitFailure {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr, "expected source_dir, dest_dir and relative_dir") {
		t.Fatalf("unexpected stderr %q", stderr)
	}
}

func TestSyncConvertsFiles(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteSources(t, env.srcDir, "b.flac", "a.flac", "notes.txt")

	code, stdout, stderr := execute(t, env.syncArgs()...)
	if code != exitOK {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, stderr)
	}
	if stdout != "" || stderr != "" {
		t.Fatalf("quiet run should print nothing, got stdout %q stderr %q", stdout, stderr)
	}
	if got := testsupport.ListDir(t, env.destDir); !slices.Equal(got, []string{"a.mp3", "b.mp3"}) {
		t.Fatalf("dest contents = %q", got)
	}
	data, err := os.ReadFile(filepath.Join(env.destDir, "a.mp3"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "MP3\nWAV\na.flac" {
		t.Fatalf("unexpected output payload %q", data)
	}

	lines := env.toolLog(t)
	if len(lines) != 4 {
		t.Fatalf("expected four tool invocations, got %q", lines)
	}
	src := filepath.Join(realDir(t, env.srcDir), "a.flac")
	dest := filepath.Join(realDir(t, env.destDir), "a.mp3")
	decode := strings.Fields(lines[0])
	if len(decode) != 7 || !slices.Equal(decode[:5], []string{"flac", "-d", "-f", "--totally-silent", src}) || decode[5] != "-o" {
		t.Fatalf("unexpected decode invocation %q", lines[0])
	}
	temp := decode[6]
	if filepath.Dir(temp) != env.tempDir || !strings.HasPrefix(filepath.Base(temp), "mp3_sync") || !strings.HasSuffix(temp, ".wav") {
		t.Fatalf("unexpected temp file %q", temp)
	}
	if lines[1] != fmt.Sprintf("lame -Shv %s %s", temp, dest) {
		t.Fatalf("unexpected encode invocation %q", lines[1])
	}
	env.assertNoTempFiles(t)
}

func TestSyncEmptyRelativeDirUsesBaseDirectories(t *testing.T) {
	env := setupCLITestEnv(t)
	env.cfg.Run.RelativeDir = ""
	srcBase := env.cfg.Run.SourceDir
	destBase := env.cfg.Run.DestDir
	testsupport.WriteSources(t, srcBase, "a.flac")

	code, _, stderr := execute(t, env.syncArgs()...)
	if code != exitOK {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, stderr)
	}
	if got := testsupport.ListDir(t, destBase); !slices.Equal(got, []string{"a.mp3"}) {
		t.Fatalf("dest contents = %q", got)
	}
}

func TestSyncSkipsExistingVerbose(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteSources(t, env.srcDir, "a.flac")
	existing := filepath.Join(env.destDir, "a.mp3")
	testsupport.WriteFile(t, existing, "keep me")

	code, stdout, stderr := execute(t, env.syncArgs("-v")...)
	if code != exitOK {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, stderr)
	}
	src, dest := realDir(t, env.srcDir), realDir(t, env.destDir)
	want := "Source dir: " + src + "\n" +
		"Dest dir: " + dest + "\n" +
		"skipping: " + filepath.Join(dest, "a.mp3") + "\n"
	if stdout != want {
		t.Fatalf("stdout = %q, want %q", stdout, want)
	}
	if data, _ := os.ReadFile(existing); string(data) != "keep me" {
		t.Fatalf("existing destination modified: %q", data)
	}
	if lines := env.toolLog(t); len(lines) != 0 {
		t.Fatalf("no tool may run for an existing destination, got %q", lines)
	}
}

func TestSyncEmptySourceExitsTwo(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteSources(t, env.srcDir, "cover.jpg")

	code, stdout, stderr := execute(t, env.syncArgs()...)
	if code != exitNoInput {
		t.Fatalf("expected exit 2, got %d", code)
	}
	want := fmt.Sprintf("Source directory \"%s\" contains no FLAC files.\n", realDir(t, env.srcDir))
	if stderr != want {
		t.Fatalf("stderr = %q, want %q", stderr, want)
	}
	if stdout != "" {
		t.Fatalf("unexpected stdout %q", stdout)
	}
	if info, err := os.Stat(env.destDir); err != nil || !info.IsDir() {
		t.Fatalf("destination directory should be created: %v", err)
	}
}

func TestSyncDecoderFailureStopsRun(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteSources(t, env.srcDir, "a.flac", "b.flac", "c.flac", "d.flac")
	t.Setenv(testsupport.StubFailEnv, "c.flac")
	t.Setenv(testsupport.StubExitEnv, "3")

	code, _, stderr := execute(t, env.syncArgs()...)
	if code != 3 {
		t.Fatalf("expected decoder exit status 3, got %d (stderr %q)", code, stderr)
	}
	src := filepath.Join(realDir(t, env.srcDir), "c.flac")
	want := src + ": ERROR while decoding data\nstate = FLAC__STREAM_DECODER_READ_FRAME\n\n"
	if stderr != want {
		t.Fatalf("stderr = %q, want %q", stderr, want)
	}
	if got := testsupport.ListDir(t, env.destDir); !slices.Equal(got, []string{"a.mp3", "b.mp3"}) {
		t.Fatalf("dest contents = %q", got)
	}
	for _, line := range env.toolLog(t) {
		if strings.Contains(line, "d.flac") {
			t.Fatalf("files after the failure must not be attempted: %q", line)
		}
	}
	env.assertNoTempFiles(t)
}

func TestSyncEncoderFailureCleansUpDestination(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteSources(t, env.srcDir, "a.flac")
	t.Setenv(testsupport.StubFailEnv, "a.mp3")
	t.Setenv(testsupport.StubExitEnv, "4")

	code, stdout, stderr := execute(t, env.syncArgs("--verbose")...)
	if code != 4 {
		t.Fatalf("expected encoder exit status 4, got %d", code)
	}
	dest := filepath.Join(realDir(t, env.destDir), "a.mp3")
	if !strings.HasSuffix(stdout, dest+"\ncleaning up: "+dest+"\n") {
		t.Fatalf("expected cleanup notice, got %q", stdout)
	}
	if stderr != "lame: write error\n\n" {
		t.Fatalf("unexpected stderr %q", stderr)
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Fatalf("partial destination must be removed, stat err = %v", err)
	}
	env.assertNoTempFiles(t)
}

func TestSyncSecondRunIsNoop(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteSources(t, env.srcDir, "a.flac", "b.flac")

	if code, _, stderr := execute(t, env.syncArgs()...); code != exitOK {
		t.Fatalf("first run exit %d (stderr %q)", code, stderr)
	}
	if err := os.Remove(env.logPath); err != nil {
		t.Fatalf("reset tool log: %v", err)
	}
	if code, _, stderr := execute(t, env.syncArgs()...); code != exitOK {
		t.Fatalf("second run exit %d (stderr %q)", code, stderr)
	}
	if lines := env.toolLog(t); len(lines) != 0 {
		t.Fatalf("second run invoked tools: %q", lines)
	}
}

func TestSyncInterruptedExits255(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteSources(t, env.srcDir, "a.flac")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	code, _, stderr := executeContext(t, ctx, env.syncArgs()...)
	if code != toolexec.InterruptExitCode {
		t.Fatalf("expected exit 255, got %d", code)
	}
	if stderr != "\n"+toolexec.InterruptMessage+"\n" {
		t.Fatalf("unexpected stderr %q", stderr)
	}
	if names := testsupport.ListDir(t, env.destDir); len(names) != 0 {
		t.Fatalf("no destination may remain, got %q", names)
	}
}

func TestSyncMissingEncoderBinary(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteSources(t, env.srcDir, "a.flac")

	code, _, stderr := execute(t, env.syncArgs("--lame", "lame-does-not-exist")...)
	if code != exitFailure {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr, "lame-does-not-exist") {
		t.Fatalf("expected error naming the binary, got %q", stderr)
	}
	if names := testsupport.ListDir(t, env.destDir); len(names) != 0 {
		t.Fatalf("no destination may remain, got %q", names)
	}
	env.assertNoTempFiles(t)
}

func TestSyncRejectsInvalidConfig(t *testing.T) {
	env := setupCLITestEnv(t)
	configPath := filepath.Join(testsupport.BaseDir(env.cfg), "bad.toml")
	testsupport.WriteFile(t, configPath, "[logging]\nformat = \"xml\"\n")

	code, _, stderr := execute(t, env.syncArgs("--config", configPath)...)
	if code != exitFailure {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if stderr == "" {
		t.Fatal("expected config error on stderr")
	}
}

func TestCheckCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	code, stdout, stderr := execute(t, "check", "--temp-dir", env.tempDir,
		env.cfg.Run.SourceDir, env.cfg.Run.DestDir, env.cfg.Run.RelativeDir)
	if code != exitOK {
		t.Fatalf("expected exit 0, got %d (stdout %q stderr %q)", code, stdout, stderr)
	}
	for _, want := range []string{"FLAC decoder", "LAME encoder", "Source directory", "will be created", "OK"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("check output missing %q:\n%s", want, stdout)
		}
	}
	if strings.Contains(stdout, "FAILED") {
		t.Fatalf("unexpected failure in check output:\n%s", stdout)
	}
}

func TestCheckCommandReportsMissingBinary(t *testing.T) {
	setupCLITestEnv(t)

	code, stdout, stderr := execute(t, "check", "--flac", "flac-does-not-exist")
	if code != exitFailure {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stdout, "FAILED") || !strings.Contains(stdout, `binary "flac-does-not-exist" not found`) {
		t.Fatalf("expected failed row, got:\n%s", stdout)
	}
	if !strings.Contains(stderr, errCheckFailed.Error()) {
		t.Fatalf("unexpected stderr %q", stderr)
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	env := setupCLITestEnv(t)
	target := filepath.Join(testsupport.BaseDir(env.cfg), "conf", "mp3sync.toml")

	code, stdout, stderr := execute(t, "config", "init", "--path", target)
	if code != exitOK {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, stderr)
	}
	if !strings.Contains(stdout, target) {
		t.Fatalf("expected target in output, got %q", stdout)
	}
	if _, _, exists, err := config.Load(target); err != nil || !exists {
		t.Fatalf("sample should load: exists=%v err=%v", exists, err)
	}

	code, _, stderr = execute(t, "config", "init", "--path", target)
	if code != exitFailure || !strings.Contains(stderr, "already exists") {
		t.Fatalf("expected refusal without --overwrite, got %d %q", code, stderr)
	}
	if code, _, _ := execute(t, "config", "init", "--path", target, "--overwrite"); code != exitOK {
		t.Fatalf("expected overwrite to succeed, got %d", code)
	}
}

func TestConfigValidate(t *testing.T) {
	setupCLITestEnv(t)

	code, stdout, _ := execute(t, "config", "validate")
	if code != exitOK {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(stdout, "defaults were used") || !strings.Contains(stdout, "Configuration valid") {
		t.Fatalf("unexpected output %q", stdout)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: exitOK},
		{name: "no input", err: &discover.NoInputFilesError{Dir: "/x"}, want: exitNoInput},
		{name: "tool", err: fmt.Errorf("wrapped: %w", &toolexec.CommandError{ExitCode: 9}), want: 9},
		{name: "interrupt", err: toolexec.NewInterruptError("flac"), want: 255},
		{name: "other", err: errors.New("boom"), want: exitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Fatalf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
