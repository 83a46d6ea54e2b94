package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/thomas-vilte/matejira/internal/document"
)

// CachedMetadata is the stored envelope for one (project, issue type) key.
type CachedMetadata struct {
	Project   string          `json:"project"`
	IssueType string          `json:"issue_type"`
	FetchedAt time.Time       `json:"fetched_at"`
	Fields    json.RawMessage `json:"fields"`
}

// FileStore persists field schema documents, one JSON file per
// (project, issue type) pair. Entries carry no TTL: they stay until an
// explicit refresh overwrites them or a clear removes them. Single-process
// CLI semantics, no locking.
type FileStore struct {
	dir string
}

// NewFileStore opens (creating if needed) the cache directory. An empty dir
// selects the default ~/.matejira/cache.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("metadata: resolve home directory: %w", err)
		}
		dir = filepath.Join(home, ".matejira", "cache")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("metadata: create cache directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the backing directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// Read loads the entry for (project, issueType). A missing entry is
// (zero, false, nil), not an error.
func (s *FileStore) Read(project, issueType string) (document.Document, bool, error) {
	data, err := os.ReadFile(s.entryPath(project, issueType))
	if err != nil {
		if os.IsNotExist(err) {
			return document.Document{}, false, nil
		}
		return document.Document{}, false, fmt.Errorf("metadata: read cache entry: %w", err)
	}

	var entry CachedMetadata
	if err := json.Unmarshal(data, &entry); err != nil {
		return document.Document{}, false, fmt.Errorf("metadata: corrupt cache entry for %s/%s: %w", project, issueType, err)
	}

	doc, err := document.FromJSON(entry.Fields)
	if err != nil {
		return document.Document{}, false, fmt.Errorf("metadata: corrupt cache entry for %s/%s: %w", project, issueType, err)
	}
	return doc, true, nil
}

// Write stores (overwriting) the entry for (project, issueType).
func (s *FileStore) Write(project, issueType string, doc document.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("metadata: encode fields: %w", err)
	}

	entry := CachedMetadata{
		Project:   project,
		IssueType: issueType,
		FetchedAt: time.Now().UTC(),
		Fields:    raw,
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("metadata: encode cache entry: %w", err)
	}

	if err := os.WriteFile(s.entryPath(project, issueType), data, 0644); err != nil {
		return fmt.Errorf("metadata: write cache entry: %w", err)
	}
	return nil
}

// Delete removes one entry. Removing a missing entry is not an error.
func (s *FileStore) Delete(project, issueType string) error {
	err := os.Remove(s.entryPath(project, issueType))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("metadata: delete cache entry: %w", err)
	}
	return nil
}

// Clear removes every entry and leaves an empty cache directory behind.
func (s *FileStore) Clear() error {
	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("metadata: clear cache: %w", err)
	}
	return os.MkdirAll(s.dir, 0755)
}

// List returns the stored envelopes (fields omitted) sorted by project and
// issue type, for cache introspection.
func (s *FileStore) List() ([]CachedMetadata, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "createmeta_*.json"))
	if err != nil {
		return nil, fmt.Errorf("metadata: list cache entries: %w", err)
	}

	entries := make([]CachedMetadata, 0, len(matches))
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var entry CachedMetadata
		if err := json.Unmarshal(data, &entry); err != nil {
			continue
		}
		entry.Fields = nil
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Project != entries[j].Project {
			return entries[i].Project < entries[j].Project
		}
		return entries[i].IssueType < entries[j].IssueType
	})
	return entries, nil
}

func (s *FileStore) entryPath(project, issueType string) string {
	return filepath.Join(s.dir, fmt.Sprintf("createmeta_%s_%s.json", sanitizeKey(project), sanitizeKey(issueType)))
}

// sanitizeKey maps arbitrary project keys and issue-type names onto the
// path character set used for cache file names.
func sanitizeKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}
