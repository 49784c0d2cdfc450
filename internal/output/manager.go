package output

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Manager owns the output tree: detecting leftovers from a previous run,
// archiving or deleting them, and creating the per-format subfolders.
type Manager struct {
	OutputDir  string
	ArchiveDir string
}

func NewManager(outputDir, archiveDir string) *Manager {
	return &Manager{OutputDir: outputDir, ArchiveDir: archiveDir}
}

// HasPrevious reports whether the output directory exists and is non-empty.
func (m *Manager) HasPrevious() (bool, error) {
	entries, err := os.ReadDir(m.OutputDir)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return len(entries) > 0, nil
}

// Archive moves the whole output directory into a timestamped folder
// under the archive root and returns the new location.
func (m *Manager) Archive() (string, error) {
	if err := os.MkdirAll(m.ArchiveDir, 0755); err != nil {
		return "", fmt.Errorf("create archive root %s: %w", m.ArchiveDir, err)
	}

	timestamp := time.Now().Format("2006-01-02_150405")
	dest := filepath.Join(m.ArchiveDir, fmt.Sprintf("output_%s", timestamp))

	if err := os.Rename(m.OutputDir, dest); err != nil {
		return "", fmt.Errorf("archive %s -> %s: %w", m.OutputDir, dest, err)
	}
	return dest, nil
}

// Delete removes the previous output irrecoverably.
func (m *Manager) Delete() error {
	if err := os.RemoveAll(m.OutputDir); err != nil {
		return fmt.Errorf("delete %s: %w", m.OutputDir, err)
	}
	return nil
}

// Prepare creates the gif/ and mp4/ subfolders and returns their paths.
func (m *Manager) Prepare() (gifDir, mp4Dir string, err error) {
	gifDir = filepath.Join(m.OutputDir, "gif")
	mp4Dir = filepath.Join(m.OutputDir, "mp4")
	for _, d := range []string{gifDir, mp4Dir} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return "", "", fmt.Errorf("create %s: %w", d, err)
		}
	}
	return gifDir, mp4Dir, nil
}
