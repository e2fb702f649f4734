package today

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/julianstephens/softstreaks/internal/cli"
	"github.com/julianstephens/softstreaks/internal/models"
	"github.com/julianstephens/softstreaks/internal/picker"
	"github.com/julianstephens/softstreaks/internal/utils"
)

type StatusCmd struct {
	Plain bool `help:"Print raw markdown instead of rendering it."`
}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	state, err := tr.State()
	if err != nil {
		return err
	}

	md := StatusMarkdown(tr.Today(), state)
	if c.Plain {
		ctx.Printf("%s", md)
		return nil
	}
	ctx.Printf("%s\n", renderMarkdown(md))
	return nil
}

// StatusMarkdown summarizes the day as markdown
func StatusMarkdown(today string, state models.AppState) string {
	var b strings.Builder

	title := today
	if t, err := utils.ParseDate(today); err == nil {
		title = utils.PrettyDate(t)
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "**🔥 %d day streak** · %d/%d habits done\n\n", state.Streak, state.Habits.DoneCount(), len(state.Habits))

	b.WriteString("## Habits\n\n")
	for _, habit := range state.Habits {
		if habit.Done {
			fmt.Fprintf(&b, "- [x] ~~%s~~\n", habit.Name)
		} else {
			fmt.Fprintf(&b, "- [ ] %s\n", habit.Name)
		}
	}

	b.WriteString("\n## Mood\n\n")
	if state.Mood != nil {
		fmt.Fprintf(&b, "%s %s\n", state.Mood.Emoji(), *state.Mood)
	} else {
		b.WriteString("_Not set_\n")
	}

	if pick := state.LastPickString(); pick != "" {
		b.WriteString("\n## Today's pick\n\n")
		if picker.IsBonus(pick) {
			fmt.Fprintf(&b, "> ✨ %s\n", picker.StripBonus(pick))
		} else {
			fmt.Fprintf(&b, "> %s\n", pick)
		}
	}

	if len(state.Favorites) > 0 {
		fmt.Fprintf(&b, "\n## Favorites (%d)\n\n", len(state.Favorites))
		for _, fav := range state.FavoritesNewestFirst() {
			fmt.Fprintf(&b, "- %s\n", fav)
		}
	}
	return b.String()
}

func renderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
