package system

import (
	"context"

	"github.com/julianstephens/softstreaks/internal/cli"
	"github.com/julianstephens/softstreaks/internal/server"
	"github.com/julianstephens/softstreaks/internal/storage"
)

type ServeCmd struct {
	Host  string `help:"Listen host. Defaults to server.host from the config."`
	Port  int    `help:"Listen port. Defaults to server.port from the config."`
	Token string `help:"Bearer token required on /api routes." env:"SOFTSTREAKS_API_TOKEN"`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}

	cfg := ctx.Config.Server
	if c.Host != "" {
		cfg.Host = c.Host
	}
	if c.Port != 0 {
		cfg.Port = c.Port
	}
	if c.Token != "" {
		cfg.Token = c.Token
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var watchPath string
	if js, ok := ctx.Store.Slot().(*storage.JSONSlot); ok {
		watchPath = js.Path()
	}

	return server.Run(context.Background(), server.Options{
		Tracker:   tr,
		Server:    cfg,
		WatchPath: watchPath,
		Ready: func(addr string) {
			ctx.Printf("Serving softstreaks on http://%s (Ctrl+C to stop)\n", addr)
		},
	})
}
