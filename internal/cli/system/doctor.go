package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/softstreaks/internal/cli"
	"github.com/julianstephens/softstreaks/internal/keyring"
	"github.com/julianstephens/softstreaks/internal/storage"
	"github.com/julianstephens/softstreaks/internal/utils"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Printf("Running diagnostics...\n\n")

	hasError := false
	fail := func(name string, err error) {
		ctx.Printf("❌ %s: FAIL\n", name)
		ctx.Printf("   Error: %v\n", err)
		hasError = true
	}

	// Check 1: Storage reachable and schema current
	storageOK := false
	if err := ctx.Open(); err != nil {
		fail("Storage reachable", err)
	} else {
		ctx.Printf("✓ Storage reachable: OK (%s)\n", ctx.Store.Location())
		storageOK = true
	}

	// Check 2: State document readable (only if storage is reachable)
	if storageOK {
		if err := checkStateDocument(ctx); err != nil {
			fail("State document", err)
		} else {
			ctx.Printf("✓ State document: OK\n")
		}
	} else {
		ctx.Printf("⊘ State document: SKIPPED (storage not reachable)\n")
	}

	// Check 3: Backups present (warning only)
	if err := checkBackupsPresent(ctx); err != nil {
		ctx.Printf("⚠ Backups present: WARNING\n")
		ctx.Printf("   %v\n", err)
	} else {
		ctx.Printf("✓ Backups present: OK\n")
	}

	// Check 4: Clock/timezone sanity
	if err := checkClockTimezone(ctx.Config.Timezone); err != nil {
		fail("Clock/timezone", err)
	} else {
		ctx.Printf("✓ Clock/timezone: OK (%s)\n", ctx.Config.Timezone)
	}

	// Check 5: Keyring (only when the store uses it)
	if ctx.Config.Store == keyring.Location {
		if !keyring.IsAvailable() {
			fail("OS keyring", keyring.ErrKeyringUnavailable)
		} else {
			ctx.Printf("✓ OS keyring: OK\n")
		}
	}

	ctx.Printf("\n")
	if hasError {
		ctx.Printf("Diagnostics completed with errors.\n")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Printf("All diagnostics passed!\n")
	return nil
}

func checkStateDocument(ctx *cli.Context) error {
	doc, ok, err := ctx.Store.Slot().Read()
	if err != nil {
		return fmt.Errorf("failed to read state: %w", err)
	}
	if !ok {
		// Nothing stored yet is a valid first-run state
		return nil
	}
	state, valid := storage.Decode(doc)
	if !valid {
		return errors.New("stored state is unreadable; defaults will be used on next load")
	}

	lastDate := state.LastDateString()
	if lastDate == "" {
		return nil
	}
	if !utils.ValidateDate(lastDate) {
		return fmt.Errorf("lastDate %q is not a YYYY-MM-DD date; the streak will reset on next open", lastDate)
	}
	today, err := utils.GetTodayInTimezone(ctx.Config.Timezone)
	if err != nil {
		return err
	}
	if lastDate > today {
		return fmt.Errorf("lastDate %s is in the future (today is %s)", lastDate, today)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	backups, err := ctx.BackupManager().ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'softstreaks backup create'")
	}
	return nil
}

func checkClockTimezone(timezone string) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if _, err := utils.LoadLocation(timezone); err != nil {
		return err
	}
	return nil
}
