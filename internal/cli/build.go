package cli

import (
	"context"
	"log/slog"

	"github.com/cruciblehq/stoker/internal/build"
)

// Represents the 'stoker build' command.
type BuildCmd struct {
	Tag        []string `short:"t" help:"Tag the built image. May be repeated; the first tag names the build." placeholder:"NAME"`
	BuildArg   []string `help:"Set a build argument as key=value. May be repeated." placeholder:"KEY=VALUE"`
	Target     []string `help:"Build a named stage. May be repeated; stages build in order." placeholder:"STAGE"`
	Output     string   `short:"o" help:"Write build results to a local directory." placeholder:"DIR"`
	DockerArgs string   `help:"Extra arguments passed through to the build tool." placeholder:"ARGS"`
	Push       bool     `help:"Push the configured tags after a successful build."`
}

// Executes the build command.
//
// Renders the template into a temporary staging directory, builds each
// requested target, and optionally pushes the resulting tags.
func (c *BuildCmd) Run(ctx context.Context) error {
	opts, err := buildOptions(options{
		dockerArgs: c.DockerArgs,
		buildArgs:  c.BuildArg,
		tags:       c.Tag,
		targets:    c.Target,
		output:     c.Output,
	})
	if err != nil {
		return err
	}

	dir, cleanup, err := stageDir()
	if err != nil {
		return err
	}
	defer cleanup()
	opts.StageDir = dir

	slog.Debug("build options", "file", opts.File, "root", absRoot(), "targets", opts.Targets)

	b := build.New(opts)
	if err := b.Build(ctx); err != nil {
		return err
	}

	if c.Push {
		return b.Push(ctx)
	}
	return nil
}
