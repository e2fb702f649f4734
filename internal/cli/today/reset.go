package today

import (
	"github.com/julianstephens/softstreaks/internal/cli"
)

type ResetCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}

	if !c.Yes {
		ctx.Printf("⚠️  WARNING: This clears your habits, mood, favorites and streak.\n")
		ctx.Printf("A backup of the current state will be created first.\n\n")
		ok, err := ctx.Confirm("Continue?")
		if err != nil {
			return err
		}
		if !ok {
			ctx.Printf("Reset cancelled.\n")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()
	if _, err := tr.Reset(); err != nil {
		return err
	}
	ctx.Printf("✓ Fresh start 🌱\n")
	return nil
}
