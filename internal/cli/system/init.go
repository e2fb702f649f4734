package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/softstreaks/internal/cli"
	"github.com/julianstephens/softstreaks/internal/storage"
	"github.com/julianstephens/softstreaks/internal/utils"
)

type InitCmd struct {
	Force  bool   `help:"Delete the existing store file before initializing."`
	Source string `help:"Store location (.json file, SQLite path or PostgreSQL URL) to copy the state from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	location := ctx.Config.Store

	if c.Force {
		if utils.IsPostgresURL(location) {
			return errors.New("--force is only supported for file-based stores")
		}
		if c.Source != "" && samePath(c.Source, location) {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", location)
		}
		if _, err := os.Stat(location); err == nil {
			if err := ctx.Close(); err != nil {
				return fmt.Errorf("failed to close existing store: %w", err)
			}
			if err := os.Remove(location); err != nil {
				return fmt.Errorf("failed to delete existing store: %w", err)
			}
			ctx.Printf("Deleted existing store at: %s\n", location)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing store: %w", err)
		}
	}

	if err := ctx.Store.Slot().Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized softstreaks storage at: %s\n", ctx.Store.Location())

	if ctx.ConfigPath != "" {
		if _, err := os.Stat(ctx.ConfigPath); os.IsNotExist(err) {
			if err := ctx.Config.Save(ctx.ConfigPath); err != nil {
				return err
			}
			ctx.Printf("Wrote default config to: %s\n", ctx.ConfigPath)
		}
	}

	if c.Source != "" {
		ctx.Printf("Copying state from: %s\n", c.Source)
		if err := c.copyState(ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Printf("Migration completed successfully!\n")
	}
	return nil
}

// copyState moves the state document from another store. It goes through
// the normal load path so a damaged source still yields a usable state.
func (c *InitCmd) copyState(ctx *cli.Context) error {
	slot, err := cli.NewSlot(utils.ExpandHome(c.Source))
	if err != nil {
		return err
	}
	if err := slot.Open(); err != nil {
		return fmt.Errorf("failed to open source store: %w", err)
	}
	defer slot.Close()

	doc, ok, err := slot.Read()
	if err != nil {
		return fmt.Errorf("failed to read source state: %w", err)
	}
	if !ok {
		return fmt.Errorf("no state stored at %s", slot.Location())
	}
	state, valid := storage.Decode(doc)
	if !valid {
		ctx.Printf("⚠ Source state was unreadable, starting from defaults\n")
	}
	return ctx.Store.Save(state)
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(utils.ExpandHome(a))
	absB, errB := filepath.Abs(utils.ExpandHome(b))
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}
