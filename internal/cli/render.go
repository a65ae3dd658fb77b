package cli

import (
	"context"
	"os"

	"github.com/cruciblehq/stoker/internal/build"
)

// Represents the 'stoker render' command.
type RenderCmd struct {
	BuildArg []string `help:"Set a build argument as key=value. May be repeated." placeholder:"KEY=VALUE"`
}

// Executes the render command, writing the rendered Dockerfile to stdout.
func (c *RenderCmd) Run(ctx context.Context) error {
	opts, err := buildOptions(options{buildArgs: c.BuildArg})
	if err != nil {
		return err
	}

	return build.New(opts).Render(os.Stdout)
}
