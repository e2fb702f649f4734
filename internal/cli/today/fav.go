package today

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/softstreaks/internal/cli"
	"github.com/julianstephens/softstreaks/internal/constants"
	apperrors "github.com/julianstephens/softstreaks/internal/errors"
)

type FavCmd struct {
	List   FavListCmd   `cmd:"" help:"List saved favorites." default:"1"`
	Add    FavAddCmd    `cmd:"" help:"Save today's suggestion to favorites."`
	Remove FavRemoveCmd `cmd:"" help:"Remove a favorite."`
}

type FavListCmd struct{}

func (c *FavListCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	state, err := tr.State()
	if err != nil {
		return err
	}
	if len(state.Favorites) == 0 {
		ctx.Printf("No favorites yet. Try 'softstreaks spin --save'.\n")
		return nil
	}
	ctx.Printf("Favorites (%d/%d):\n\n", len(state.Favorites), constants.MaxFavorites)
	for i, fav := range state.FavoritesNewestFirst() {
		ctx.Printf("  %d. %s\n", i+1, fav)
	}
	return nil
}

type FavAddCmd struct{}

func (c *FavAddCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	changed, state, err := tr.SaveFavorite()
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNoPick) {
			return fmt.Errorf("%w; run 'softstreaks spin' first", err)
		}
		return err
	}
	if changed {
		ctx.Printf("⭐ Saved: %s\n", state.LastPickString())
	} else {
		ctx.Printf("Already in favorites: %s\n", state.LastPickString())
	}
	return nil
}

type FavRemoveCmd struct {
	Text string `arg:"" help:"Favorite text, or its number from 'fav list'."`
}

func (c *FavRemoveCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	state, err := tr.State()
	if err != nil {
		return err
	}

	text := c.Text
	if n, convErr := strconv.Atoi(c.Text); convErr == nil {
		if n < 1 || n > len(state.Favorites) {
			return fmt.Errorf("no favorite number %d", n)
		}
		text = state.FavoritesNewestFirst()[n-1]
	}

	changed, _, err := tr.RemoveFavorite(text)
	if err != nil {
		return err
	}
	if !changed {
		return fmt.Errorf("favorite not found: %q", text)
	}
	ctx.Printf("✓ Removed: %s\n", text)
	return nil
}
