package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Archiver writes audit events that are about to be pruned to JSON files.
type Archiver struct {
	Dir string
}

func NewArchiver(dir string) *Archiver {
	return &Archiver{Dir: dir}
}

// SaveJSON writes data as indented JSON to a new file with a random UUID name
// and returns that name.
func (a *Archiver) SaveJSON(data any) (string, error) {
	if err := os.MkdirAll(a.Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	filename := fmt.Sprintf("audit-%s.json", uuid.New().String())

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal audit archive: %w", err)
	}

	if err := os.WriteFile(filepath.Join(a.Dir, filename), jsonData, 0644); err != nil {
		return "", fmt.Errorf("failed to write audit archive: %w", err)
	}

	return filename, nil
}
