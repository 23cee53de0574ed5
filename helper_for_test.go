package portfolio

import (
	"path/filepath"
	"testing"

	"github.com/spelloconsulting/portfolioperf/logging"
)

// newTestLogger returns a silent logger whose logfile and fatal flag
// live in a per-test temp dir.
func newTestLogger(t *testing.T) *logging.Logger {
	t.Helper()
	log, err := logging.New(logging.Settings{
		LogfileName:      filepath.Join(t.TempDir(), "test.log"),
		LogfileVerbosity: "none",
		ConsoleVerbosity: "none",
	})
	if err != nil {
		t.Fatalf("creating test logger: %v", err)
	}
	return log
}
