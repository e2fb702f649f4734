package today

import (
	"github.com/julianstephens/softstreaks/internal/cli"
)

type ExportCmd struct {
	Dir    string `help:"Directory to write the export into. Defaults to export.dir from the config." type:"path"`
	Stdout bool   `help:"Write the export to stdout instead of a file."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	if c.Stdout {
		return tr.Export(ctx.Stdout())
	}

	dir := c.Dir
	if dir == "" {
		dir = ctx.Config.Export.Dir
	}
	path, err := tr.ExportFile(dir)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Exported to %s\n", path)
	return nil
}
