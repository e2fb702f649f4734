package today

import (
	"fmt"

	"github.com/julianstephens/softstreaks/internal/cli"
	"github.com/julianstephens/softstreaks/internal/models"
)

type HabitCmd struct {
	List   HabitListCmd   `cmd:"" help:"Show today's habits." default:"1"`
	Toggle HabitToggleCmd `cmd:"" help:"Mark a habit done or not done."`
	Edit   HabitEditCmd   `cmd:"" help:"Rename the habits."`
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	state, err := tr.State()
	if err != nil {
		return err
	}
	printHabits(ctx, state)
	return nil
}

type HabitToggleCmd struct {
	Number int `arg:"" help:"Habit number (1-3)."`
}

func (c *HabitToggleCmd) Run(ctx *cli.Context) error {
	idx, err := cli.ParseHabitSlot(c.Number)
	if err != nil {
		return err
	}
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	state, err := tr.ToggleHabit(idx)
	if err != nil {
		return err
	}

	habit := state.Habits[idx]
	if habit.Done {
		ctx.Printf("✓ Done: %s\n", habit.Name)
	} else {
		ctx.Printf("○ Not done: %s\n", habit.Name)
	}
	if state.AllDone() {
		ctx.Printf("🎉 All done today! Your streak grows tomorrow.\n")
	}
	return nil
}

type HabitEditCmd struct {
	Names []string `arg:"" help:"New habit names in order. Blank names get a placeholder."`
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	state, err := tr.EditHabits(c.Names...)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Habits updated\n")
	printHabits(ctx, state)
	return nil
}

func printHabits(ctx *cli.Context, state models.AppState) {
	for i, habit := range state.Habits {
		ctx.Printf("  %d. %s %s\n", i+1, checkbox(habit.Done), habit.Name)
	}
	ctx.Printf("\n%s\n", progress(state))
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func progress(state models.AppState) string {
	return fmt.Sprintf("%d/%d done · 🔥 %d day streak", state.Habits.DoneCount(), len(state.Habits), state.Streak)
}
