package logging

import (
	"os"
	"path/filepath"
	"strings"
)

// FatalState is the persistent "last run failed" flag. It is a sidecar
// file: present means a previous run recorded a fatal error.
type FatalState struct {
	path string
}

func NewFatalState(path string) *FatalState { return &FatalState{path: path} }

// fatalFlagPath derives the flag file location from the logfile name.
func fatalFlagPath(logfile string) string {
	if logfile == "" {
		return "fatal_error.flag"
	}
	ext := filepath.Ext(logfile)
	return strings.TrimSuffix(logfile, ext) + ".fatal"
}

// Record stores the fatal message in the flag file.
func (f *FatalState) Record(msg string) error {
	return os.WriteFile(f.path, []byte(msg+"\n"), 0644)
}

// Has reports whether the flag is set.
func (f *FatalState) Has() bool {
	_, err := os.Stat(f.path)
	return err == nil
}

// Message returns the recorded fatal message, or "" when unset.
func (f *FatalState) Message() string {
	b, err := os.ReadFile(f.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

// Clear removes the flag. Clearing an unset flag is not an error.
func (f *FatalState) Clear() error {
	err := os.Remove(f.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// trimLogfile keeps only the trailing maxLines lines of the logfile, so
// the file stays bounded across scheduled runs.
func trimLogfile(path string, maxLines int) error {
	if maxLines <= 0 {
		return nil
	}
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	lines := strings.Split(strings.TrimRight(string(b), "\n"), "\n")
	if len(lines) <= maxLines {
		return nil
	}
	kept := lines[len(lines)-maxLines:]
	return os.WriteFile(path, []byte(strings.Join(kept, "\n")+"\n"), 0644)
}
