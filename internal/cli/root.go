package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/julianstephens/softstreaks/internal/backup"
	"github.com/julianstephens/softstreaks/internal/config"
	"github.com/julianstephens/softstreaks/internal/constants"
	apperrors "github.com/julianstephens/softstreaks/internal/errors"
	"github.com/julianstephens/softstreaks/internal/keyring"
	"github.com/julianstephens/softstreaks/internal/logger"
	"github.com/julianstephens/softstreaks/internal/storage"
	"github.com/julianstephens/softstreaks/internal/storage/postgres"
	"github.com/julianstephens/softstreaks/internal/storage/sqlite"
	"github.com/julianstephens/softstreaks/internal/tracker"
	"github.com/julianstephens/softstreaks/internal/utils"
)

type Context struct {
	Config     *config.Config
	ConfigPath string
	Store      *storage.Store

	// Out and In default to the process stdio
	Out io.Writer
	In  io.Reader

	// Tracker options, overridden in tests
	TrackerOptions []tracker.Option

	tracker *tracker.Tracker
}

// NewContext builds the command context for cfg. The slot is not opened
// until a command asks for it.
func NewContext(cfg *config.Config, configPath string) (*Context, error) {
	slot, err := NewSlot(cfg.Store)
	if err != nil {
		return nil, err
	}
	return &Context{
		Config:     cfg,
		ConfigPath: configPath,
		Store:      storage.NewStore(slot),
	}, nil
}

// NewSlot picks the slot backend for a store location: a .json path, a
// PostgreSQL URL (or "keyring"), or a SQLite database path.
func NewSlot(location string) (storage.Slot, error) {
	switch {
	case strings.HasSuffix(strings.ToLower(location), ".json"):
		return storage.NewJSONSlot(location), nil
	case location == keyring.Location || utils.IsPostgresURL(location):
		if location != keyring.Location {
			if _, err := postgres.ValidateConnString(location); err != nil {
				if apperrors.Is(err, postgres.ErrEmbeddedCredentials) {
					return nil, fmt.Errorf("%w; store the connection string with 'softstreaks keyring set' or set %s instead",
						err, constants.EnvDBConnection)
				}
				return nil, err
			}
		}
		connStr, err := keyring.ResolveConnectionString(location)
		if err != nil {
			return nil, err
		}
		return postgres.NewSlot(connStr), nil
	default:
		return sqlite.NewSlot(location), nil
	}
}

// Open connects to the slot, initializing it on first use.
func (c *Context) Open() error {
	slot := c.Store.Slot()
	err := slot.Open()
	if apperrors.Is(err, apperrors.ErrNotInitialized) {
		logger.Info("Initializing storage", "location", slot.Location())
		err = slot.Init()
	}
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	return nil
}

// Tracker opens the slot and the tracker on first call.
func (c *Context) Tracker() (*tracker.Tracker, error) {
	if c.tracker != nil {
		return c.tracker, nil
	}
	if err := c.Open(); err != nil {
		return nil, err
	}

	loc, err := utils.LoadLocation(c.Config.Timezone)
	if err != nil {
		return nil, err
	}
	opts := append([]tracker.Option{tracker.WithLocation(loc)}, c.TrackerOptions...)
	tr, err := tracker.Open(c.Store, opts...)
	if err != nil {
		return nil, err
	}
	c.tracker = tr
	return tr, nil
}

// Close releases the slot
func (c *Context) Close() error {
	return c.Store.Slot().Close()
}

// BackupManager returns a manager writing to the configured backup directory
func (c *Context) BackupManager() *backup.Manager {
	return backup.NewManager(c.Store, c.Config.BackupDir(), c.Config.Backup.Max)
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	_, err := c.BackupManager().CreateBackup()
	if err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ParseHabitSlot converts a 1-based habit number from the command line to
// a slot index.
func ParseHabitSlot(n int) (int, error) {
	if n < 1 || n > constants.HabitSlots {
		return 0, fmt.Errorf("%w: %d (expected 1-%d)", apperrors.ErrHabitIndex, n, constants.HabitSlots)
	}
	return n - 1, nil
}

// Stdout returns the writer commands print to
func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Stdin returns the reader prompts read from
func (c *Context) Stdin() io.Reader {
	if c.In == nil {
		return os.Stdin
	}
	return c.In
}

// Printf writes formatted output for the user
func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Stdout(), format, args...)
}

// Confirm asks a yes/no question; anything but y or yes is a no.
func (c *Context) Confirm(prompt string) (bool, error) {
	c.Printf("%s [y/N]: ", prompt)
	response, err := bufio.NewReader(c.Stdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
