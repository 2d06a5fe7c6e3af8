package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"

	"github.com/mattjoyce/remex/internal/protocol"
	"github.com/mattjoyce/remex/internal/staging"
	"github.com/mattjoyce/remex/internal/transport"
	"github.com/mattjoyce/remex/internal/transport/transporttest"
)

func captureOutputWithExitCode(t *testing.T, run func() int) (int, string, string) {
	t.Helper()

	oldStdout := os.Stdout
	oldStderr := os.Stderr

	stdoutR, stdoutW, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe stdout failed: %v", err)
	}
	stderrR, stderrW, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe stderr failed: %v", err)
	}

	os.Stdout = stdoutW
	os.Stderr = stderrW

	stdoutCh := make(chan []byte)
	stderrCh := make(chan []byte)
	go func() { b, _ := io.ReadAll(stdoutR); stdoutCh <- b }()
	go func() { b, _ := io.ReadAll(stderrR); stderrCh <- b }()

	code := run()

	_ = stdoutW.Close()
	_ = stderrW.Close()
	os.Stdout = oldStdout
	os.Stderr = oldStderr

	stdoutBytes := <-stdoutCh
	stderrBytes := <-stderrCh
	_ = stdoutR.Close()
	_ = stderrR.Close()

	return code, string(stdoutBytes), string(stderrBytes)
}

// useFakeExecutor routes the CLI's transport to an in-process executor.
func useFakeExecutor(t *testing.T) *transporttest.Server {
	t.Helper()
	srv := transporttest.Start(t, protocol.DefaultService)

	orig := dialTransport
	dialTransport = func(cfg transport.Config, logger *slog.Logger) (*transport.GRPC, error) {
		cfg.Target = srv.Target()
		cfg.DialOptions = []grpc.DialOption{srv.DialOption()}
		return orig(cfg, logger)
	}
	t.Cleanup(func() { dialTransport = orig })
	return srv
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	p := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestRunCommandRoundTrip(t *testing.T) {
	srv := useFakeExecutor(t)
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, "journal:\n  path: "+filepath.Join(dir, "remex.db")+"\nlog:\n  level: error\n")

	in := filepath.Join(dir, "Client_ToRemote.py")
	out := filepath.Join(dir, "Client_FromRemote.py")
	require.NoError(t, os.WriteFile(in, []byte("print('hi')\n"), 0o644))

	srv.OnRun(func(s *transporttest.Server, req *protocol.RunCmdRequest) *protocol.RunCmdReply {
		fields := strings.Fields(req.CmdString)
		if len(fields) != 3 || fields[0] != "cp" {
			return &protocol.RunCmdReply{ReturnCode: 127}
		}
		content, ok := s.File(path.Join(req.CurrentDir, fields[1]))
		if !ok {
			return &protocol.RunCmdReply{ReturnCode: 1}
		}
		s.PutFile(path.Join(req.CurrentDir, fields[2]), content)
		return &protocol.RunCmdReply{Stdout: []byte("copied\n")}
	})

	code, stdout, stderr := captureOutputWithExitCode(t, func() int {
		return runCLI([]string{"run", "--config", cfgPath, "--base", "Test_R",
			"--upload", in + "=src", "--download", out + "=result", "--", "cp", "{src}", "{result}"})
	})
	require.Equal(t, 0, code, "stderr: %s", stderr)
	assert.Equal(t, stdoutBanner+"\ncopied\n", stdout)
	assert.Contains(t, stderr, stderrBanner+"\n")

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "print('hi')\n", string(got))

	calls := srv.Calls()
	require.NotEmpty(t, calls)
	assert.Equal(t, protocol.MethodCreateWorkspace, calls[0].Method)
	assert.True(t, strings.HasPrefix(calls[0].Arg, "Test_R_"))
	assert.Equal(t, protocol.MethodDeleteWorkspace, calls[len(calls)-1].Method)
	assert.False(t, srv.HasWorkspace(calls[0].Arg))

	code, stdout, stderr = captureOutputWithExitCode(t, func() int {
		return runCLI([]string{"history", "--config", cfgPath, "--json"})
	})
	require.Equal(t, 0, code, "stderr: %s", stderr)
	var report struct {
		Sessions []struct {
			Workspace string `json:"workspace"`
			Outcome   string `json:"outcome"`
			Runs      []struct {
				Command string `json:"command"`
			} `json:"runs"`
		} `json:"sessions"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	require.Len(t, report.Sessions, 1)
	assert.Equal(t, calls[0].Arg, report.Sessions[0].Workspace)
	assert.Equal(t, "deleted", report.Sessions[0].Outcome)
	require.Len(t, report.Sessions[0].Runs, 1)
	up, err := staging.UploadPath(in)
	require.NoError(t, err)
	down, err := staging.DownloadPath(out)
	require.NoError(t, err)
	assert.Equal(t, "cp "+up+" "+down, report.Sessions[0].Runs[0].Command)
}

func TestRunMirrorsRemoteExitCode(t *testing.T) {
	srv := useFakeExecutor(t)
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, "journal:\n  enabled: false\nlog:\n  level: error\n")

	srv.OnRun(func(_ *transporttest.Server, _ *protocol.RunCmdRequest) *protocol.RunCmdReply {
		return &protocol.RunCmdReply{ReturnCode: 3, Stderr: []byte("failed\n")}
	})

	code, _, stderr := captureOutputWithExitCode(t, func() int {
		return runCLI([]string{"run", "--config", cfgPath, "--", "false"})
	})
	assert.Equal(t, 3, code)
	assert.Contains(t, stderr, stderrBanner+"\nfailed\n")
}

func TestRunKeepLeavesWorkspace(t *testing.T) {
	srv := useFakeExecutor(t)
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, "journal:\n  enabled: false\nlog:\n  level: error\n")

	code, _, stderr := captureOutputWithExitCode(t, func() int {
		return runCLI([]string{"run", "--config", cfgPath, "--keep", "--", "true"})
	})
	require.Equal(t, 0, code, "stderr: %s", stderr)
	assert.Contains(t, stderr, "Workspace kept: ")

	calls := srv.Calls()
	require.Len(t, calls, 2)
	assert.True(t, srv.HasWorkspace(calls[0].Arg))
}

func TestRunReportsCreationFailure(t *testing.T) {
	srv := useFakeExecutor(t)
	srv.Reject(protocol.MethodCreateWorkspace)
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, "journal:\n  enabled: false\nlog:\n  level: error\n")

	code, _, stderr := captureOutputWithExitCode(t, func() int {
		return runCLI([]string{"run", "--config", cfgPath, "--", "true"})
	})
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "create workspace")
	assert.Len(t, srv.Calls(), 1)
}

func TestRunRequiresCommand(t *testing.T) {
	code, _, stderr := captureOutputWithExitCode(t, func() int {
		return runCLI([]string{"run"})
	})
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Usage: remex run")
}

func TestRunValidatesLogLevelFlag(t *testing.T) {
	srv := useFakeExecutor(t)
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, "journal:\n  enabled: false\n")

	code, _, stderr := captureOutputWithExitCode(t, func() int {
		return runCLI([]string{"run", "--config", cfgPath, "--log-level", "verbose", "--", "true"})
	})
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "--log-level")
	assert.Empty(t, srv.Calls())

	code, _, stderr = captureOutputWithExitCode(t, func() int {
		return runCLI([]string{"run", "--config", cfgPath, "--log-level", "ERROR", "--", "true"})
	})
	require.Equal(t, 0, code, "stderr: %s", stderr)
}

func TestTransferFlagsParse(t *testing.T) {
	var f transferFlags
	require.NoError(t, f.Set("a.txt"))
	require.NoError(t, f.Set("out/b.txt=result"))
	assert.Error(t, f.Set("=id"))

	assert.Equal(t, transferFlags{{Path: "a.txt"}, {Path: "out/b.txt", Identifier: "result"}}, f)
	assert.Equal(t, "a.txt,out/b.txt=result", f.String())
}

func TestConfigCheckAndLock(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, "remote:\n  address: exec.internal\n")

	code, stdout, stderr := captureOutputWithExitCode(t, func() int {
		return runCLI([]string{"config", "check", "--config", cfgPath})
	})
	require.Equal(t, 0, code, "stderr: %s", stderr)
	assert.Contains(t, stdout, "exec.internal:50051")

	code, stdout, stderr = captureOutputWithExitCode(t, func() int {
		return runCLI([]string{"config", "lock", "--config", cfgPath})
	})
	require.Equal(t, 0, code, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Locked ")
	assert.FileExists(t, filepath.Join(dir, ".checksums"))

	require.NoError(t, os.WriteFile(cfgPath, []byte("remote:\n  address: elsewhere\n"), 0o644))
	code, _, stderr = captureOutputWithExitCode(t, func() int {
		return runCLI([]string{"config", "check", "--config", cfgPath})
	})
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "hash mismatch")

	code, _, _ = captureOutputWithExitCode(t, func() int {
		return runCLI([]string{"config", "lock", "--config", cfgPath})
	})
	assert.Equal(t, 0, code)
}

func TestConfigCheckInvalid(t *testing.T) {
	cfgPath := writeConfig(t, t.TempDir(), "log:\n  level: loud\n")

	code, _, stderr := captureOutputWithExitCode(t, func() int {
		return runCLI([]string{"config", "check", "--config", cfgPath})
	})
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "log.level")
}

func TestHistoryWithoutJournal(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, "journal:\n  path: "+filepath.Join(dir, "missing.db")+"\n")

	code, _, stderr := captureOutputWithExitCode(t, func() int {
		return runCLI([]string{"history", "--config", cfgPath})
	})
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "No journal at")
}

func TestVersionJSON(t *testing.T) {
	code, stdout, _ := captureOutputWithExitCode(t, func() int {
		return runCLI([]string{"version", "--json"})
	})
	require.Equal(t, 0, code)

	var info versionInfo
	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	assert.Equal(t, strings.TrimSpace(version), info.Version)
}

func TestUnknownCommand(t *testing.T) {
	code, stdout, stderr := captureOutputWithExitCode(t, func() int {
		return runCLI([]string{"frobnicate"})
	})
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Unknown command: frobnicate")
	assert.Contains(t, stdout, "remex - run commands")
}
