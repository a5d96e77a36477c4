// Package manifest manages the slice index document (index.json) written
// alongside the slice files of one run.
package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/sonnes/parashu/core"
)

// Manifest aggregates one entry per produced slice plus conversation-level
// metadata.
type Manifest struct {
	SourceFile        string               `json:"source_file"`
	ConversationID    string               `json:"conversation_id"`
	ConversationTitle string               `json:"conversation_title"`
	Date              string               `json:"date"`
	Time              string               `json:"time"`
	Slices            []core.ManifestEntry `json:"slices"`
}

// New creates a manifest keyed by the source conversation's metadata.
func New(sourceFile string, c *core.Conversation) *Manifest {
	return &Manifest{
		SourceFile:        sourceFile,
		ConversationID:    c.ID,
		ConversationTitle: c.Title,
		Date:              c.Date,
		Time:              c.Time,
		Slices:            []core.ManifestEntry{},
	}
}

// Append adds one slice entry. Entries are expected in sequence order.
func (m *Manifest) Append(entry core.ManifestEntry) {
	m.Slices = append(m.Slices, entry)
}

// ReadFile reads a manifest from disk.
func ReadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// WriteFile writes the manifest to disk atomically using a temporary file
// and rename, which is safe against concurrent writers.
func (m *Manifest) WriteFile(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".index-*.json")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	return os.Rename(tmpPath, path)
}
