package main

import (
	"github.com/alecthomas/kong"
	_ "github.com/joho/godotenv/autoload"

	"github.com/julianstephens/softstreaks/internal/cli"
	"github.com/julianstephens/softstreaks/internal/cli/backups"
	"github.com/julianstephens/softstreaks/internal/cli/system"
	"github.com/julianstephens/softstreaks/internal/cli/today"
	"github.com/julianstephens/softstreaks/internal/config"
	"github.com/julianstephens/softstreaks/internal/constants"
	"github.com/julianstephens/softstreaks/internal/errors"
	"github.com/julianstephens/softstreaks/internal/logger"
	"github.com/julianstephens/softstreaks/internal/utils"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"string" default:"~/.config/softstreaks/config.yaml" env:"SOFTSTREAKS_CONFIG"`
	Store   string `help:"Store location: a .json file, a SQLite database path, a PostgreSQL URL without password, or 'keyring'. Overrides the config."`
	Debug   bool   `help:"Enable debug logging."`

	Init   system.InitCmd   `cmd:"" help:"Initialize softstreaks storage."`
	Tui    system.TuiCmd    `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Status today.StatusCmd  `cmd:"" help:"Show today's summary."`
	Habit  today.HabitCmd   `cmd:"" help:"Track and rename habits."`
	Mood   today.MoodCmd    `cmd:"" help:"Set or clear today's mood."`
	Spin   today.SpinCmd    `cmd:"" help:"Get a self-care suggestion."`
	Fav    today.FavCmd     `cmd:"" help:"Manage favorite suggestions."`
	Export today.ExportCmd  `cmd:"" help:"Export the state as JSON."`
	Reset  today.ResetCmd   `cmd:"" help:"Start over from a fresh state."`
	Serve  system.ServeCmd  `cmd:"" help:"Serve the local HTTP API."`
	Remind system.RemindCmd `cmd:"" help:"Send a reminder about unfinished habits."`
	Doctor system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage state backups."`
	Keyring system.KeyringCmd `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Gentle daily habits, streaks and self-care picks"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	configPath := utils.ExpandHome(CLI.Config)
	cfg, err := config.Load(configPath)
	if err != nil {
		errors.Fatal(err)
	}
	if CLI.Store != "" {
		cfg.Store = utils.ExpandHome(CLI.Store)
	}
	if CLI.Debug {
		cfg.Log.Debug = true
	}

	if err := logger.Init(logger.Config{
		Debug:     cfg.Log.Debug,
		ConfigDir: cfg.Dir,
		LogDir:    cfg.Log.Dir,
	}); err != nil {
		errors.Fatal(err)
	}

	appCtx, err := cli.NewContext(cfg, configPath)
	if err != nil {
		errors.Fatal(err)
	}

	err = ctx.Run(appCtx)
	if closeErr := appCtx.Close(); closeErr != nil {
		logger.Warn("Failed to close storage", "error", closeErr)
	}
	errors.Fatal(err)
}
