package records

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vitalmesh/frontdesk/internal/patient"
)

const recordExt = ".yaml"

// FileStore keeps one YAML document per patient identifier in a directory.
// Writes go through a temp file and rename so readers never observe a
// partially written record.
type FileStore struct {
	dir   string
	locks keyedMutex
}

// NewFileStore creates a file-backed record store rooted at dir,
// creating the directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create records directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Checkpoint appends a fresh snapshot of the session to the patient's record
// document. A missing or corrupt existing document is treated as an empty
// prior record; the failure is logged but the checkpoint proceeds.
func (s *FileStore) Checkpoint(ctx context.Context, sess *patient.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	identifier := sess.Identifier()
	unlock := s.locks.Lock(identifier)
	defer unlock()

	record, err := s.load(identifier)
	if err != nil {
		record = &PatientRecord{Identifier: identifier}
		if err != ErrRecordNotFound {
			log.Printf("[RECORDS]: Failed to load record for %q, starting fresh: %v", identifier, err)
		}
	}

	record.Append(sess.Snapshot(), time.Now())
	return s.write(identifier, record)
}

// Load fetches the record stored under an identifier.
func (s *FileStore) Load(ctx context.Context, identifier string) (*PatientRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.load(identifier)
}

// List returns every parseable record in the directory, most recently
// updated first. Corrupt documents are logged and skipped.
func (s *FileStore) List(ctx context.Context) ([]*PatientRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	paths, err := filepath.Glob(filepath.Join(s.dir, "*"+recordExt))
	if err != nil {
		return nil, fmt.Errorf("failed to scan records directory: %w", err)
	}

	var result []*PatientRecord
	for _, path := range paths {
		record, err := s.read(path)
		if err != nil {
			log.Printf("[RECORDS]: Skipping unreadable record %s: %v", filepath.Base(path), err)
			continue
		}
		result = append(result, record)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].LastUpdated.After(result[j].LastUpdated)
	})
	return result, nil
}

// Latest returns the most recently updated record.
func (s *FileStore) Latest(ctx context.Context) (*PatientRecord, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, ErrRecordNotFound
	}
	return all[0], nil
}

// Prune removes record documents not updated within the retention window.
func (s *FileStore) Prune(ctx context.Context, olderThan time.Duration) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-olderThan)
	paths, err := filepath.Glob(filepath.Join(s.dir, "*"+recordExt))
	if err != nil {
		return 0, fmt.Errorf("failed to scan records directory: %w", err)
	}

	removed := 0
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(path); err != nil {
			log.Printf("[RECORDS]: Failed to remove old record %s: %v", filepath.Base(path), err)
			continue
		}
		removed++
	}
	return removed, nil
}

// Close is a no-op for the file-backed store.
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) load(identifier string) (*PatientRecord, error) {
	record, err := s.read(s.path(identifier))
	if os.IsNotExist(err) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	record.Identifier = identifier
	return record, nil
}

func (s *FileStore) read(path string) (*PatientRecord, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var record PatientRecord
	if err := yaml.Unmarshal(content, &record); err != nil {
		return nil, fmt.Errorf("failed to parse record: %w", err)
	}
	record.Identifier = strings.TrimSuffix(filepath.Base(path), recordExt)
	return &record, nil
}

func (s *FileStore) write(identifier string, record *PatientRecord) error {
	content, err := yaml.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record for %q: %w", identifier, err)
	}

	tmp, err := os.CreateTemp(s.dir, ".record-*")
	if err != nil {
		return fmt.Errorf("failed to create temp record file: %w", err)
	}
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write record for %q: %w", identifier, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close record file for %q: %w", identifier, err)
	}

	if err := os.Rename(tmp.Name(), s.path(identifier)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace record for %q: %w", identifier, err)
	}
	return nil
}

func (s *FileStore) path(identifier string) string {
	return filepath.Join(s.dir, sanitizeIdentifier(identifier)+recordExt)
}

// sanitizeIdentifier strips characters that are unsafe in filenames,
// collapsing spaces to underscores.
func sanitizeIdentifier(identifier string) string {
	var b strings.Builder
	for _, r := range identifier {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "unknown_patient"
	}
	return b.String()
}
