package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/codetrail/devtrack/models"
	"github.com/codetrail/devtrack/schema"
	"github.com/codetrail/devtrack/types"
)

const (
	dataFileName   = "project-data.json"
	backupPrefix   = "backup-"
	exportPrefix   = "export-"
	checksumSuffix = ".checksum"

	dataDirKey      = "dataDir"
	dataFileKey     = "dataFile"
	projectNameKey  = "projectName"
	backupRetainKey = "backupRetain"

	defaultDataDir      = ".devtrack"
	defaultBackupRetain = 5
)

// immutableFields can never be overwritten through a partial update.
var immutableFields = map[string]bool{
	"id":        true,
	"type":      true,
	"createdAt": true,
}

// FileProjectStore implements ProjectStore on a JSON file inside a
// hidden per-project data directory.
//
// Every public operation performs one full load, mutate, save cycle
// while holding both an in-process mutex and an exclusive flock on a
// lock sidecar. The mutex serializes interleaved goroutine callers,
// the flock serializes other processes, so concurrent
// read-modify-write races on the whole-file granularity cannot occur.
type FileProjectStore struct {
	dataDir     string
	filePath    string
	projectName string
	retain      int
	mu          sync.Mutex
	flk         *flock.Flock
}

// NewFileProjectStore creates a new instance. Initialize must be
// called before any other operation.
func NewFileProjectStore() *FileProjectStore {
	return &FileProjectStore{retain: defaultBackupRetain}
}

// Initialize configures the store from a config map with keys
// "dataDir", "projectName" and "backupRetain". If no dataset exists at
// the data location, an empty one is created with the project name
// derived from the enclosing folder. Idempotent.
func (s *FileProjectStore) Initialize(config map[string]string) error {
	if val, ok := config[dataDirKey]; ok && val != "" {
		s.dataDir = val
	} else {
		s.dataDir = defaultDataDir
	}
	abs, err := filepath.Abs(s.dataDir)
	if err == nil {
		s.dataDir = abs
	}
	fileName := dataFileName
	if val, ok := config[dataFileKey]; ok && val != "" {
		fileName = val
	}
	s.filePath = filepath.Join(s.dataDir, fileName)

	if val, ok := config[projectNameKey]; ok && val != "" {
		s.projectName = val
	} else {
		// The data dir lives inside the project folder; its parent names the project.
		s.projectName = filepath.Base(filepath.Dir(s.dataDir))
	}

	if val, ok := config[backupRetainKey]; ok && val != "" {
		n, err := strconv.Atoi(val)
		if err != nil || n < 1 {
			return fmt.Errorf("invalid backupRetain %q: must be a positive integer", val)
		}
		s.retain = n
	}

	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return &types.StorageError{Op: "mkdir", Path: s.dataDir, Err: err}
	}

	// The lock lives on a sidecar path: the data file itself is replaced
	// by rename on every save, which would orphan a lock held on it.
	s.flk = flock.New(s.filePath + ".lock")
	if err := s.lock(); err != nil {
		return err
	}
	defer s.unlock()

	if _, err := os.Stat(s.filePath); errors.Is(err, fs.ErrNotExist) {
		return s.saveInternal(models.NewProjectData(s.projectName))
	} else if err != nil {
		return &types.StorageError{Op: "stat", Path: s.filePath, Err: err}
	}
	return nil
}

// calculateChecksum computes the SHA256 checksum of the given data.
func calculateChecksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// generateID synthesizes a unique, monotonically distinguishable item
// identifier: a nanosecond timestamp plus a random suffix.
func generateID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixNano(), uuid.NewString()[:8])
}

// lock serializes the calling operation against other goroutines in this
// process and, through the lock file, against other processes.
func (s *FileProjectStore) lock() error {
	s.mu.Lock()
	if err := s.flk.Lock(); err != nil {
		s.mu.Unlock()
		return &types.StorageError{Op: "lock", Path: s.filePath, Err: err}
	}
	return nil
}

func (s *FileProjectStore) unlock() {
	_ = s.flk.Unlock()
	s.mu.Unlock()
}

// loadInternal reads, checksums, parses and validates the dataset.
// The caller must hold the file lock.
func (s *FileProjectStore) loadInternal() (*models.ProjectData, error) {
	raw, err := os.ReadFile(s.filePath)
	if err != nil {
		return nil, &types.StorageError{Op: "read", Path: s.filePath, Err: err}
	}

	checksumPath := s.filePath + checksumSuffix
	if expected, err := os.ReadFile(checksumPath); err == nil {
		want := strings.TrimSpace(string(expected))
		if got := calculateChecksum(raw); got != want {
			return nil, &types.CorruptDataError{
				Path: s.filePath,
				Err:  fmt.Errorf("checksum mismatch: expected %s, got %s", want, got),
			}
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, &types.StorageError{Op: "read", Path: checksumPath, Err: err}
	}
	// A missing checksum file is tolerated: data written before checksums
	// existed, or hand-edited. The next save recreates it.

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &types.CorruptDataError{Path: s.filePath, Err: err}
	}
	if res := schema.ValidateProject(doc); !res.Valid {
		return nil, &types.CorruptDataError{Path: s.filePath, Err: res.Err("project data")}
	}

	var data models.ProjectData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, &types.CorruptDataError{Path: s.filePath, Err: err}
	}
	return &data, nil
}

// saveInternal validates, stamps lastUpdated, atomically replaces the
// canonical file, then writes a backup snapshot and prunes old ones.
// The caller must hold the file lock.
func (s *FileProjectStore) saveInternal(data *models.ProjectData) error {
	if res := schema.ValidateProject(data); !res.Valid {
		return res.Err("project data")
	}

	// lastUpdated is monotonically non-decreasing across saves.
	now := time.Now().UTC()
	if now.After(data.Metadata.LastUpdated) {
		data.Metadata.LastUpdated = now
	}

	marshaled, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal project data: %w", err)
	}

	tempPath := s.filePath + ".tmp"
	checksumPath := s.filePath + checksumSuffix
	tempChecksumPath := checksumPath + ".tmp"
	defer func() { _ = os.Remove(tempPath) }()
	defer func() { _ = os.Remove(tempChecksumPath) }()

	if err := os.WriteFile(tempPath, marshaled, 0o644); err != nil {
		return &types.StorageError{Op: "write", Path: tempPath, Err: err}
	}
	if err := os.WriteFile(tempChecksumPath, []byte(calculateChecksum(marshaled)), 0o644); err != nil {
		return &types.StorageError{Op: "write", Path: tempChecksumPath, Err: err}
	}
	if err := os.Rename(tempPath, s.filePath); err != nil {
		return &types.StorageError{Op: "rename", Path: s.filePath, Err: err}
	}
	if err := os.Rename(tempChecksumPath, checksumPath); err != nil {
		return &types.StorageError{Op: "rename", Path: checksumPath, Err: err}
	}

	// The canonical write succeeded; backup and prune failures must not
	// undo it, so they are logged and swallowed.
	backupPath := s.timestampedPath(backupPrefix)
	if err := os.WriteFile(backupPath, marshaled, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to write backup %s: %v\n", backupPath, err)
	}
	if err := s.pruneBackups(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to prune backups in %s: %v\n", s.dataDir, err)
	}
	return nil
}

// timestampedPath returns an unused <prefix><epoch-millis>.json path in
// the data directory, bumping the millisecond on collision so that
// rapid successive saves never overwrite a snapshot.
func (s *FileProjectStore) timestampedPath(prefix string) string {
	millis := time.Now().UnixMilli()
	for {
		path := filepath.Join(s.dataDir, fmt.Sprintf("%s%d.json", prefix, millis))
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return path
		}
		millis++
	}
}

// pruneBackups keeps the retain most recent backup files, deleting the
// rest. Backup names embed epoch millis, so descending filename order
// is descending recency; ties are broken by that same ordering.
func (s *FileProjectStore) pruneBackups() error {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		return err
	}
	var backups []string
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() && strings.HasPrefix(name, backupPrefix) && strings.HasSuffix(name, ".json") {
			backups = append(backups, name)
		}
	}
	if len(backups) <= s.retain {
		return nil
	}
	sort.Sort(sort.Reverse(sort.StringSlice(backups)))
	var firstErr error
	for _, name := range backups[s.retain:] {
		if err := os.Remove(filepath.Join(s.dataDir, name)); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Load reads and validates the current persisted dataset.
func (s *FileProjectStore) Load() (*models.ProjectData, error) {
	if err := s.lock(); err != nil {
		return nil, err
	}
	defer s.unlock()
	return s.loadInternal()
}

// Save validates and persists the given aggregate.
func (s *FileProjectStore) Save(data *models.ProjectData) error {
	if err := s.lock(); err != nil {
		return err
	}
	defer s.unlock()
	return s.saveInternal(data)
}

// CreateItem assembles, validates and persists a new item of the given
// kind. The store owns id, type, createdAt and updatedAt; caller values
// for those fields are discarded.
func (s *FileProjectStore) CreateItem(kind models.ItemKind, fields map[string]any) (models.Item, error) {
	if err := s.lock(); err != nil {
		return nil, err
	}
	defer s.unlock()

	data, err := s.loadInternal()
	if err != nil {
		return nil, err
	}

	record := make(map[string]any, len(fields)+4)
	for k, v := range fields {
		if v == nil {
			continue
		}
		record[k] = v
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	record["id"] = generateID()
	record["type"] = string(kind)
	record["createdAt"] = now
	record["updatedAt"] = now
	if _, ok := record["tags"]; !ok {
		record["tags"] = []string{}
	}

	if res := schema.ValidateItem(kind, record); !res.Valid {
		return nil, res.Err(string(kind))
	}
	item, err := models.DecodeItem(kind, record)
	if err != nil {
		return nil, err
	}

	data.Append(item)
	if err := s.saveInternal(data); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem merges partial field updates onto an existing item,
// validates the result and persists it. Updates to id, type and
// createdAt are silently ignored; a nil update value clears the field.
func (s *FileProjectStore) UpdateItem(kind models.ItemKind, id string, updates map[string]any) (models.Item, error) {
	if err := s.lock(); err != nil {
		return nil, err
	}
	defer s.unlock()

	data, err := s.loadInternal()
	if err != nil {
		return nil, err
	}

	existing, ok := data.Find(kind, id)
	if !ok {
		return nil, fmt.Errorf("%s %q: %w", kind, id, types.ErrNotFound)
	}

	merged, err := models.EncodeMap(existing)
	if err != nil {
		return nil, err
	}
	for k, v := range updates {
		if immutableFields[k] {
			continue
		}
		if v == nil {
			delete(merged, k)
			continue
		}
		merged[k] = v
	}
	merged["updatedAt"] = time.Now().UTC().Format(time.RFC3339Nano)

	if res := schema.ValidateItem(kind, merged); !res.Valid {
		return nil, res.Err(string(kind))
	}
	item, err := models.DecodeItem(kind, merged)
	if err != nil {
		return nil, err
	}

	data.Replace(item)
	if err := s.saveInternal(data); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes the item with the given id, reporting whether a
// removal occurred. A missing id leaves the persisted file untouched.
func (s *FileProjectStore) DeleteItem(kind models.ItemKind, id string) (bool, error) {
	if err := s.lock(); err != nil {
		return false, err
	}
	defer s.unlock()

	data, err := s.loadInternal()
	if err != nil {
		return false, err
	}
	if !data.Remove(kind, id) {
		return false, nil
	}
	if err := s.saveInternal(data); err != nil {
		return false, err
	}
	return true, nil
}

// GetItems returns the kind's collection from a fresh consistent load.
func (s *FileProjectStore) GetItems(kind models.ItemKind) ([]models.Item, error) {
	if err := s.lock(); err != nil {
		return nil, err
	}
	defer s.unlock()

	data, err := s.loadInternal()
	if err != nil {
		return nil, err
	}
	items := data.Items(kind)
	if items == nil {
		return nil, fmt.Errorf("unknown item kind %q", kind)
	}
	return items, nil
}

// GetItem returns a single item by id, or types.ErrNotFound.
func (s *FileProjectStore) GetItem(kind models.ItemKind, id string) (models.Item, error) {
	if err := s.lock(); err != nil {
		return nil, err
	}
	defer s.unlock()

	data, err := s.loadInternal()
	if err != nil {
		return nil, err
	}
	item, ok := data.Find(kind, id)
	if !ok {
		return nil, fmt.Errorf("%s %q: %w", kind, id, types.ErrNotFound)
	}
	return item, nil
}

// ExportData writes the current dataset to a timestamped export file
// and returns its path. Exports are never pruned and never read back.
func (s *FileProjectStore) ExportData() (string, error) {
	if err := s.lock(); err != nil {
		return "", err
	}
	defer s.unlock()

	data, err := s.loadInternal()
	if err != nil {
		return "", err
	}
	marshaled, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal project data: %w", err)
	}
	exportPath := s.timestampedPath(exportPrefix)
	if err := os.WriteFile(exportPath, marshaled, 0o644); err != nil {
		return "", &types.StorageError{Op: "write", Path: exportPath, Err: err}
	}
	return exportPath, nil
}

// ImportData replaces the entire dataset with the aggregate read from
// path. Destructive and all-or-nothing: on any validation failure the
// existing dataset is left untouched.
func (s *FileProjectStore) ImportData(path string) error {
	if err := s.lock(); err != nil {
		return err
	}
	defer s.unlock()

	raw, err := os.ReadFile(path)
	if err != nil {
		return &types.StorageError{Op: "read", Path: path, Err: err}
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return types.NewValidationError("import file", []types.FieldError{
			{Message: fmt.Sprintf("not valid JSON: %v", err)},
		})
	}
	if res := schema.ValidateProject(doc); !res.Valid {
		return res.Err("import file")
	}
	var data models.ProjectData
	if err := json.Unmarshal(raw, &data); err != nil {
		return types.NewValidationError("import file", []types.FieldError{
			{Message: fmt.Sprintf("cannot decode aggregate: %v", err)},
		})
	}
	return s.saveInternal(&data)
}

// Close releases the file lock. Unlock is idempotent.
func (s *FileProjectStore) Close() error {
	if s.flk != nil {
		return s.flk.Unlock()
	}
	return nil
}
