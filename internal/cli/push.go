package cli

import (
	"context"
	"io"

	"github.com/cruciblehq/stoker/internal/build"
)

// Represents the 'stoker push' command.
type PushCmd struct {
	Tag []string `short:"t" help:"Push an additional tag. May be repeated." placeholder:"NAME"`
}

// Executes the push command, pushing every configured tag.
//
// The template is rendered first so tags it registers are included.
func (c *PushCmd) Run(ctx context.Context) error {
	opts, err := buildOptions(options{tags: c.Tag})
	if err != nil {
		return err
	}

	b := build.New(opts)
	if err := b.Render(io.Discard); err != nil {
		return err
	}
	return b.Push(ctx)
}
