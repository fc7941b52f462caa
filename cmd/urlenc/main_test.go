package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/isseis/go-urlenc/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockInputDetector is a testify mock of terminal.InputDetector
type mockInputDetector struct {
	mock.Mock
}

func (m *mockInputDetector) IsTerminal() bool {
	args := m.Called()
	return args.Bool(0)
}

func newPipeDetector(t *testing.T) *mockInputDetector {
	t.Helper()
	d := &mockInputDetector{}
	d.On("IsTerminal").Return(false).Once()
	t.Cleanup(func() { d.AssertExpectations(t) })
	return d
}

func setupCleanEnv(t *testing.T) {
	t.Helper()
	t.Setenv(config.PathEnvVar, "")
	t.Setenv(config.LogLevelEnvVar, "")
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "urlenc.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRun_EncodesPipedInput(t *testing.T) {
	setupCleanEnv(t)
	var stdout, stderr bytes.Buffer

	code := run(strings.NewReader("Hello World!\n100% done\n"), &stdout, &stderr, newPipeDetector(t))

	assert.Equal(t, exitSuccess, code)
	assert.Equal(t, "Hello%20World!\n100%25%20done\n", stdout.String())
	assert.Empty(t, stderr.String(), "no diagnostics without a configured log level")
}

func TestRun_TerminalInputFails(t *testing.T) {
	setupCleanEnv(t)
	var stdout, stderr bytes.Buffer
	d := &mockInputDetector{}
	d.On("IsTerminal").Return(true).Once()

	code := run(strings.NewReader("ignored\n"), &stdout, &stderr, d)

	assert.Equal(t, exitFailure, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "Error: interactive_input")
	assert.Contains(t, stderr.String(), "It's not a pipe")
	d.AssertExpectations(t)
}

func TestRun_EncodingFailuresKeepExitZero(t *testing.T) {
	setupCleanEnv(t)
	t.Setenv(config.PathEnvVar, writeConfig(t, "max_output_size = 8\n"))
	var stdout, stderr bytes.Buffer

	code := run(strings.NewReader("ok\n"+strings.Repeat("%", 5)+"\n"), &stdout, &stderr, newPipeDetector(t))

	assert.Equal(t, exitSuccess, code)
	assert.Equal(t, "ok\n", stdout.String())
	assert.Contains(t, stderr.String(), "Error encoding line 2:")
}

func TestRun_TerminalInputCreatesNoLogFile(t *testing.T) {
	setupCleanEnv(t)
	logDir := filepath.Join(t.TempDir(), "logs")
	t.Setenv(config.PathEnvVar, writeConfig(t, "log_level = \"debug\"\nlog_dir = \""+filepath.ToSlash(logDir)+"\"\n"))
	var stdout, stderr bytes.Buffer
	d := &mockInputDetector{}
	d.On("IsTerminal").Return(true).Once()

	code := run(strings.NewReader("ignored\n"), &stdout, &stderr, d)

	assert.Equal(t, exitFailure, code)
	assert.NoDirExists(t, logDir)
	d.AssertExpectations(t)
}

func TestRun_InvalidConfig(t *testing.T) {
	setupCleanEnv(t)
	t.Setenv(config.PathEnvVar, writeConfig(t, "max_line_length = 0\n"))
	var stdout, stderr bytes.Buffer

	code := run(strings.NewReader("x\n"), &stdout, &stderr, newPipeDetector(t))

	assert.Equal(t, exitFailure, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "Error: config_parsing_failed")
}

func TestRun_ConsoleLogging(t *testing.T) {
	setupCleanEnv(t)
	t.Setenv(config.LogLevelEnvVar, "info")
	var stdout, stderr bytes.Buffer

	code := run(strings.NewReader("a b\n"), &stdout, &stderr, newPipeDetector(t))

	assert.Equal(t, exitSuccess, code)
	assert.Equal(t, "a%20b\n", stdout.String())
	assert.Contains(t, stderr.String(), "Input exhausted")
	assert.Contains(t, stderr.String(), "lines=1")
}

func TestRun_FileLogging(t *testing.T) {
	setupCleanEnv(t)
	logDir := filepath.Join(t.TempDir(), "logs")
	t.Setenv(config.PathEnvVar, writeConfig(t, "log_level = \"debug\"\nlog_dir = \""+filepath.ToSlash(logDir)+"\"\n"))
	var stdout, stderr bytes.Buffer

	code := run(strings.NewReader("x y\n"), &stdout, &stderr, newPipeDetector(t))
	require.Equal(t, exitSuccess, code)

	entries, err := os.ReadDir(logDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	content, err := os.ReadFile(filepath.Join(logDir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"Filter starting"`)
	assert.Contains(t, string(content), `"msg":"Input exhausted"`)
}

type errWriter struct{}

func (errWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed pipe")
}

func TestRun_OutputErrorFails(t *testing.T) {
	setupCleanEnv(t)
	var stderr bytes.Buffer

	code := run(strings.NewReader("data\n"), errWriter{}, &stderr, newPipeDetector(t))

	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr.String(), "Error: system_error")
	assert.Contains(t, stderr.String(), "closed pipe")
}
