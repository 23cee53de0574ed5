package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	subjects []string
	bodies   []string
}

func (m *fakeMailer) Send(subject, body string) error {
	m.subjects = append(m.subjects, subject)
	m.bodies = append(m.bodies, body)
	return nil
}

func newTestLogger(t *testing.T, fileV, consoleV string) (*Logger, string) {
	t.Helper()
	dir := t.TempDir()
	logfile := filepath.Join(dir, "logfile.log")
	l, err := New(Settings{
		LogfileName:      logfile,
		LogfileMaxLines:  500,
		LogfileVerbosity: fileV,
		ConsoleVerbosity: consoleV,
	})
	require.NoError(t, err)
	return l, logfile
}

func TestParseVerbosity(t *testing.T) {
	for name, want := range map[string]Verbosity{
		"none": None, "error": Error, "warning": Warning,
		"summary": Summary, "detailed": Detailed, "debug": Debug, "all": All,
	} {
		got, err := ParseVerbosity(name)
		require.NoError(t, err)
		assert.Equal(t, want, got, name)
	}
	_, err := ParseVerbosity("verbose")
	assert.Error(t, err)
}

func TestVerbosityGate(t *testing.T) {
	l, logfile := newTestLogger(t, "summary", "none")

	l.Infof("summary line")
	l.Detailf("detailed line")
	l.Sync()

	b, err := os.ReadFile(logfile)
	require.NoError(t, err)
	assert.Contains(t, string(b), "summary line")
	assert.NotContains(t, string(b), "detailed line")
}

func TestFatalfRecordsFlagAndAlerts(t *testing.T) {
	l, logfile := newTestLogger(t, "detailed", "none")
	mailer := &fakeMailer{}
	l.SetMailer(mailer, "Portfolio: ")

	assert.False(t, l.HadPriorFailure())

	l.Fatalf("price file %s missing", "prices.csv")
	l.Sync()

	assert.True(t, l.HadPriorFailure())
	assert.Equal(t, 1, l.FatalsThisRun())
	require.Len(t, mailer.subjects, 1)
	assert.Equal(t, "Portfolio: Fatal error", mailer.subjects[0])
	assert.Contains(t, mailer.bodies[0], "prices.csv")

	flag := strings.TrimSuffix(logfile, ".log") + ".fatal"
	_, err := os.Stat(flag)
	assert.NoError(t, err)

	require.NoError(t, l.ClearFailure())
	assert.False(t, l.HadPriorFailure())
}

func TestFatalStateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.fatal")
	fs := NewFatalState(path)

	assert.False(t, fs.Has())
	assert.Equal(t, "", fs.Message())

	require.NoError(t, fs.Record("it broke"))
	assert.True(t, fs.Has())
	assert.Equal(t, "it broke", fs.Message())

	require.NoError(t, fs.Clear())
	assert.False(t, fs.Has())
	// Clearing twice is fine.
	require.NoError(t, fs.Clear())
}

func TestTrimLogfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logfile.log")
	var sb strings.Builder
	for i := 0; i < 10; i++ {
		sb.WriteString("line\n")
	}
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0644))

	require.NoError(t, trimLogfile(path, 4))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(string(b), "line"))

	// maxLines 0 disables trimming.
	require.NoError(t, trimLogfile(path, 0))
}
