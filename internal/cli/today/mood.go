package today

import (
	"strings"

	"github.com/julianstephens/softstreaks/internal/cli"
	"github.com/julianstephens/softstreaks/internal/models"
)

type MoodCmd struct {
	Mood string `arg:"" optional:"" help:"One of great, good, okay, low, rough, or clear. Omit to show today's mood."`
}

func (c *MoodCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}

	var state models.AppState
	switch strings.ToLower(strings.TrimSpace(c.Mood)) {
	case "":
		state, err = tr.State()
	case "clear", "none":
		state, err = tr.ClearMood()
	default:
		var mood models.Mood
		mood, err = models.ParseMood(c.Mood)
		if err != nil {
			return err
		}
		state, err = tr.SelectMood(mood)
	}
	if err != nil {
		return err
	}

	if state.Mood == nil {
		ctx.Printf("No mood set today\n")
		return nil
	}
	ctx.Printf("Mood: %s %s\n", state.Mood.Emoji(), *state.Mood)
	return nil
}
