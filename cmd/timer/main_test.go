package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/SanjoDeundiak/process-timer/pkg/lib"
	"github.com/SanjoDeundiak/process-timer/pkg/lib/handover"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var timerBin string

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "timer-e2e-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "mkdtemp: %v\n", err)
		os.Exit(1)
	}
	timerBin = filepath.Join(dir, "timer")

	build := exec.Command("go", "build", "-o", timerBin, ".")
	build.Stdout = os.Stdout
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to build timer: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

type result struct {
	stdout string
	stderr string
	code   int
}

func runTimer(t *testing.T, env []string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := exec.Command(timerBin, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if env != nil {
		cmd.Env = env
	}

	err := cmd.Run()
	code := 0
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			t.Fatalf("run timer: %v", err)
		}
		code = exitErr.ExitCode()
	}
	return result{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

var (
	startRe   = regexp.MustCompile(`\nStarting Time\(parent\): (\d+)\.(\d+)\n`)
	endRe     = regexp.MustCompile(`\nEnding time: (\d+)\.(\d+)\n`)
	elapsedRe = regexp.MustCompile(`\nElaspsed time\(microseconds\): (-?\d+)\n\n`)
)

type parsedReport struct {
	start, end lib.Timestamp
	elapsed    int64
}

func parseTimestamp(t *testing.T, re *regexp.Regexp, out string) lib.Timestamp {
	t.Helper()
	m := re.FindStringSubmatch(out)
	require.NotNil(t, m, "no match for %s in:\n%s", re, out)
	sec, err := strconv.ParseInt(m[1], 10, 64)
	require.NoError(t, err)
	usec, err := strconv.ParseInt(m[2], 10, 64)
	require.NoError(t, err)
	return lib.Timestamp{Sec: sec, Usec: usec}
}

// parseReport extracts the report and checks the printed elapsed value
// against the printed timestamps.
func parseReport(t *testing.T, command, out string) parsedReport {
	t.Helper()
	assert.Contains(t, out, "\nName of command: "+command+"\n")
	assert.Contains(t, out, "\nOutput of command:\n")
	assert.Contains(t, out, "\nStarting time(child): ")

	r := parsedReport{
		start: parseTimestamp(t, startRe, out),
		end:   parseTimestamp(t, endRe, out),
	}
	m := elapsedRe.FindStringSubmatch(out)
	require.NotNil(t, m, "no elapsed line in:\n%s", out)
	elapsed, err := strconv.ParseInt(m[1], 10, 64)
	require.NoError(t, err)
	r.elapsed = elapsed

	assert.Equal(t, lib.Elapsed(r.start, r.end), r.elapsed)
	assert.True(t, strings.HasSuffix(out, "\n\n"), "report must end with a blank line")
	return r
}

func TestE2E_Whoami(t *testing.T) {
	whoami, err := exec.LookPath("whoami")
	if err != nil {
		t.Skip("Skipping: whoami not in PATH")
	}
	expected, err := exec.Command(whoami).Output()
	require.NoError(t, err)

	res := runTimer(t, nil, "whoami")
	require.Equal(t, 0, res.code, "stderr: %s", res.stderr)

	r := parseReport(t, "whoami", res.stdout)
	assert.Contains(t, res.stdout, string(expected))
	assert.GreaterOrEqual(t, r.elapsed, int64(0))
	assert.Less(t, r.elapsed, int64(5_000_000))
	assert.Empty(t, res.stderr)
}

func TestE2E_NoOp(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("Skipping: true not in PATH")
	}
	res := runTimer(t, nil, "true")
	require.Equal(t, 0, res.code, "stderr: %s", res.stderr)

	r := parseReport(t, "true", res.stdout)
	assert.GreaterOrEqual(t, r.elapsed, int64(0))
	assert.Less(t, r.elapsed, int64(5_000_000))
}

func TestE2E_WrongArgumentCount(t *testing.T) {
	for _, args := range [][]string{{}, {"whoami", "extra"}} {
		res := runTimer(t, nil, args...)
		assert.Equal(t, 3, res.code, "args %q", args)
		assert.Equal(t, "Invalid number of arguments, program terminated.\n", res.stderr, "args %q", args)
		assert.Empty(t, res.stdout, "args %q", args)
	}
}

func TestE2E_MissingBinary(t *testing.T) {
	res := runTimer(t, nil, "/no/such/binary")
	require.Equal(t, 0, res.code, "stderr: %s", res.stderr)

	r := parseReport(t, "/no/such/binary", res.stdout)
	assert.GreaterOrEqual(t, r.elapsed, int64(0))
	assert.Less(t, r.elapsed, int64(5_000_000))
	assert.Empty(t, res.stderr)
}

func TestE2E_Repeated(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("Skipping: true not in PATH")
	}
	for i := 0; i < 100; i++ {
		res := runTimer(t, nil, "true")
		require.Equal(t, 0, res.code, "run %d stderr: %s", i, res.stderr)
		r := parseReport(t, "true", res.stdout)
		require.GreaterOrEqual(t, r.elapsed, int64(0), "run %d", i)
	}
}

func TestE2E_Sleep(t *testing.T) {
	dir := t.TempDir()
	nap := filepath.Join(dir, "nap")
	require.NoError(t, os.WriteFile(nap, []byte("#!/bin/sh\nsleep 0.2\n"), 0o755))

	res := runTimer(t, nil, nap)
	require.Equal(t, 0, res.code, "stderr: %s", res.stderr)

	r := parseReport(t, nap, res.stdout)
	assert.GreaterOrEqual(t, r.elapsed, int64(200_000))
	assert.Less(t, r.elapsed, int64(2_200_000))
}

func TestE2E_SearchPath(t *testing.T) {
	dir := t.TempDir()
	tool := filepath.Join(dir, "timer-e2e-tool")
	require.NoError(t, os.WriteFile(tool, []byte("#!/bin/sh\necho found-on-path\n"), 0o755))

	env := append(handover.Strip(os.Environ()), "PATH="+dir+string(os.PathListSeparator)+os.Getenv("PATH"))
	res := runTimer(t, env, "timer-e2e-tool")
	require.Equal(t, 0, res.code, "stderr: %s", res.stderr)

	parseReport(t, "timer-e2e-tool", res.stdout)
	assert.Contains(t, res.stdout, "found-on-path\n")
}

func TestE2E_Voluminous(t *testing.T) {
	dir := t.TempDir()
	loud := filepath.Join(dir, "loud")
	script := "#!/bin/sh\ni=0\nwhile [ $i -lt 5000 ]; do echo line-$i-yyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyy; i=$((i+1)); done\n"
	require.NoError(t, os.WriteFile(loud, []byte(script), 0o755))

	res := runTimer(t, nil, loud)
	require.Equal(t, 0, res.code, "stderr: %s", res.stderr)

	parseReport(t, loud, res.stdout)
	assert.Contains(t, res.stdout, "line-4999-")
}
