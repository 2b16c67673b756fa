// Command voxpath builds distance fields over stored volumes and extracts
// paths through them.
//
// Usage:
//
//	voxpath [-db voxpath.db] [-config voxpath.json] <command> [flags]
//
// Commands:
//
//	synth   generate a test volume (slab, tube, random)
//	stats   admissible voxel count and connected components
//	build   build a distance field and store it as a grid
//	path    extract a path from goal back to seed and store its points
//	list    list stored grids and point sets
//	rm      delete a stored object
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/katalvlaran/voxpath/config"
	"github.com/katalvlaran/voxpath/store"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "voxpath:", err)
		os.Exit(1)
	}
}

// app carries what every subcommand needs.
type app struct {
	cfg  *config.Config
	repo store.Repository
	log  *zap.Logger
	out  io.Writer
}

type command func(ctx context.Context, a *app, args []string) error

var commands = map[string]command{
	"synth": cmdSynth,
	"stats": cmdStats,
	"build": cmdBuild,
	"path":  cmdPath,
	"list":  cmdList,
	"rm":    cmdRemove,
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("voxpath", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dbPath := fs.String("db", "voxpath.db", "path to sqlite db")
	cfgPath := fs.String("config", "", "optional JSON defaults file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("missing command")
	}
	cmd, ok := commands[fs.Arg(0)]
	if !ok {
		return fmt.Errorf("unknown command %q", fs.Arg(0))
	}

	cfg := &config.Config{}
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			return err
		}
	}

	logger := newLogger(cfg, stderr)
	defer func() { _ = logger.Sync() }()

	repo, err := store.OpenSQLite(*dbPath)
	if err != nil {
		return err
	}
	defer repo.Close()

	a := &app{cfg: cfg, repo: repo, log: logger.With(zap.String("command", fs.Arg(0))), out: stdout}
	return cmd(ctx, a, fs.Args()[1:])
}
