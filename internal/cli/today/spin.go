package today

import (
	"github.com/julianstephens/softstreaks/internal/cli"
)

type SpinCmd struct {
	Save bool `help:"Save the suggestion to favorites."`
}

func (c *SpinCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	pick, _, err := tr.Spin()
	if err != nil {
		return err
	}
	if pick == "" {
		ctx.Printf("Nothing to suggest right now\n")
		return nil
	}
	ctx.Printf("🎡 %s\n", pick)

	if !c.Save {
		return nil
	}
	changed, _, err := tr.SaveFavorite()
	if err != nil {
		return err
	}
	if changed {
		ctx.Printf("⭐ Saved to favorites\n")
	} else {
		ctx.Printf("Already in favorites\n")
	}
	return nil
}
