package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/softstreaks/internal/constants"
	"github.com/julianstephens/softstreaks/internal/logger"
	"github.com/julianstephens/softstreaks/internal/storage"
)

const (
	minuteLayout = "20060102-1504"
	secondLayout = "20060102-150405"
)

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager snapshots the stored state document into timestamped JSON files.
// Snapshots are backend independent, so a SQLite store can be restored from
// a backup taken while the JSON file store was active.
type Manager struct {
	store      *storage.Store
	backupDir  string
	maxBackups int
	now        func() time.Time
}

// NewManager creates a new backup manager. maxBackups <= 0 means the default retention.
func NewManager(store *storage.Store, backupDir string, maxBackups int) *Manager {
	if maxBackups <= 0 {
		maxBackups = constants.MaxBackups
	}
	return &Manager{
		store:      store,
		backupDir:  backupDir,
		maxBackups: maxBackups,
		now:        time.Now,
	}
}

// GetBackupDir returns the backup directory path
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// CreateBackup writes a snapshot of the stored state and rotates old ones
func (m *Manager) CreateBackup() (string, error) {
	return m.createBackup(false)
}

// createBackup skips rotation during restore so the pre-restore snapshot
// cannot push out the backup being restored.
func (m *Manager) createBackup(skipRotation bool) (string, error) {
	doc, ok, err := m.store.Slot().Read()
	if err != nil {
		return "", fmt.Errorf("failed to read state: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("nothing to back up: no state stored at %s", m.store.Location())
	}

	// Snapshot the coerced state so a backup is always restorable
	state, valid := storage.Decode(doc)
	if !valid {
		logger.Warn("Stored state unreadable, backing up defaults", "location", m.store.Location())
	}
	data, err := state.Encode()
	if err != nil {
		return "", fmt.Errorf("failed to encode state: %w", err)
	}

	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	backupPath, err := m.nextBackupPath()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(backupPath, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	logger.Debug("Backup created", "path", backupPath)

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}

	return backupPath, nil
}

// nextBackupPath picks a free filename, adding seconds and then a counter on collision
func (m *Manager) nextBackupPath() (string, error) {
	now := m.now()
	candidate := func(stamp string) string {
		return filepath.Join(m.backupDir, constants.BackupFilePrefix+stamp+constants.BackupFileSuffix)
	}

	path := candidate(now.Format(minuteLayout))
	if !exists(path) {
		return path, nil
	}

	stamp := now.Format(secondLayout)
	path = candidate(stamp)
	for counter := 1; exists(path); counter++ {
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = candidate(fmt.Sprintf("%s-%d", stamp, counter))
	}
	return path, nil
}

// ListBackups returns all available backups, newest first
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.backupDir)
	if os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []BackupInfo{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		timestamp, counter, ok := parseBackupName(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{
			Path: filepath.Join(m.backupDir, entry.Name()),
			// Counters order snapshots taken within the same second
			Timestamp: timestamp.Add(time.Duration(counter) * time.Millisecond),
			Size:      info.Size(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// parseBackupName extracts the timestamp and collision counter from a backup filename
func parseBackupName(name string) (time.Time, int, bool) {
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
		return time.Time{}, 0, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)

	counter := 0
	if parts := strings.Split(stamp, "-"); len(parts) == 3 {
		n, err := strconv.Atoi(parts[2])
		if err != nil || n < 1 {
			return time.Time{}, 0, false
		}
		counter = n
		stamp = parts[0] + "-" + parts[1]
	}

	for _, layout := range []string{minuteLayout, secondLayout} {
		if ts, err := time.ParseInLocation(layout, stamp, time.Local); err == nil {
			return ts, counter, true
		}
	}
	return time.Time{}, 0, false
}

// rotateBackups removes old backups beyond the retention limit
func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	for i := m.maxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// RestoreBackup replaces the stored state with a backup. The current state
// is snapshotted first and the backup goes through the same coercion as a
// normal load. It returns the path of the pre-restore snapshot, if any.
func (m *Manager) RestoreBackup(backupPath string) (string, error) {
	data, err := os.ReadFile(backupPath)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("backup file does not exist: %s", backupPath)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read backup: %w", err)
	}

	state, valid := storage.Decode(string(data))
	if !valid {
		return "", fmt.Errorf("backup file is corrupted or invalid: %s", backupPath)
	}

	var current string
	if _, ok, err := m.store.Slot().Read(); err != nil {
		return "", fmt.Errorf("failed to read current state: %w", err)
	} else if ok {
		current, err = m.createBackup(true)
		if err != nil {
			return "", fmt.Errorf("failed to backup current state before restore: %w", err)
		}
	}

	if err := m.store.Save(state); err != nil {
		return current, fmt.Errorf("failed to restore state: %w", err)
	}
	logger.Info("Backup restored", "path", backupPath)
	return current, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
