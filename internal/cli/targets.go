package cli

import (
	"context"
	"fmt"

	"github.com/cruciblehq/stoker/internal/build"
)

// Represents the 'stoker targets' command.
type TargetsCmd struct {
	BuildArg []string `help:"Set a build argument as key=value. May be repeated." placeholder:"KEY=VALUE"`
}

// Executes the targets command, listing the named stages of the rendered
// template in declaration order.
func (c *TargetsCmd) Run(ctx context.Context) error {
	opts, err := buildOptions(options{buildArgs: c.BuildArg})
	if err != nil {
		return err
	}

	stages, err := build.New(opts).Stages()
	if err != nil {
		return err
	}

	for _, stage := range stages {
		if stage.Alias == "" {
			continue
		}
		fmt.Println(stage.Alias)
	}
	return nil
}
