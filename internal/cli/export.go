package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/cruciblehq/stoker/internal/archive"
	"github.com/cruciblehq/stoker/internal/build"
	"github.com/cruciblehq/stoker/internal/paths"
)

// Represents the 'stoker export' command.
type ExportCmd struct {
	Out      string   `short:"o" help:"Write the archive to a file instead of stdout." placeholder:"PATH"`
	BuildArg []string `help:"Set a build argument as key=value. May be repeated." placeholder:"KEY=VALUE"`
}

// Executes the export command.
//
// Renders the template and writes the build context as a tar stream with
// the rendered Dockerfile injected as its first entry.
func (c *ExportCmd) Run(ctx context.Context) error {
	opts, err := buildOptions(options{buildArgs: c.BuildArg})
	if err != nil {
		return err
	}

	var rendered bytes.Buffer
	if err := build.New(opts).Render(&rendered); err != nil {
		return err
	}

	if c.Out != "" {
		return writeArchive(c.Out, opts.Root, rendered.Bytes())
	}
	return archive.ExportContext(os.Stdout, opts.Root, rendered.Bytes())
}

// Writes the context archive to a file. The close error is surfaced so a
// short write cannot report success.
func writeArchive(path, root string, rendered []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, paths.DefaultFileMode)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if err := archive.ExportContext(f, root, rendered); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
