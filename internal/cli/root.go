package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/google/shlex"

	"github.com/cruciblehq/stoker/internal"
	"github.com/cruciblehq/stoker/internal/build"
	"github.com/cruciblehq/stoker/internal/config"
	"github.com/cruciblehq/stoker/internal/paths"
)

// Represents the root command for the stoker CLI.
var RootCmd struct {
	Quiet   bool   `short:"q" help:"Suppress informational output."`
	Verbose bool   `short:"v" help:"Enable verbose output."`
	Debug   bool   `short:"d" help:"Enable debug output."`
	File    string `short:"f" help:"Dockerfile template to render." placeholder:"PATH"`
	Root    string `short:"C" help:"Build context root." default:"." placeholder:"DIR"`

	Build   BuildCmd   `cmd:"" help:"Render the template and build the image."`
	Render  RenderCmd  `cmd:"" help:"Render the template to standard output."`
	Targets TargetsCmd `cmd:"" help:"List the build stages of the rendered template."`
	Export  ExportCmd  `cmd:"" help:"Export the build context as a tar stream."`
	Push    PushCmd    `cmd:"" help:"Push the configured image tags."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// Parses arguments, configures logging, and runs the selected subcommand.
func Execute() error {

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	kongCtx := kong.Parse(&RootCmd,
		kong.Name(internal.Name),
		kong.Description("A templated Dockerfile build driver.\n\nRenders a Dockerfile template and drives docker or podman over the result."),
		kong.UsageOnError(),
		kong.Vars{
			"version": internal.VersionString(),
		},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	configureLogger()

	return kongCtx.Run()
}

// Configures the global logger based on CLI flags.
//
// Flags are folded into the process-wide modes first, so code outside the
// CLI observes the same effective settings.
func configureLogger() {
	if RootCmd.Quiet {
		internal.SetQuiet(true)
	}
	if RootCmd.Debug {
		internal.SetDebug(true)
	}
	if RootCmd.Verbose {
		internal.SetVerbose(true)
	}

	level := slog.LevelInfo
	if internal.IsDebug() {
		level = slog.LevelDebug
	} else if internal.IsQuiet() {
		level = slog.LevelWarn
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: internal.IsVerbose(),
	})
	slog.SetDefault(slog.New(handler))
}

// Assembles build options from the root flags, the config file, and the
// per-command extras. Flags win over the config file.
func buildOptions(extra options) (build.Options, error) {
	cfg, err := config.Load()
	if err != nil {
		return build.Options{}, err
	}

	file := RootCmd.File
	if file == "" {
		file = cfg.Template
	}
	if file == "" {
		file = "Dockerfile.tmpl"
	}

	args := append([]string(nil), cfg.Args...)
	if extra.dockerArgs != "" {
		split, err := shlex.Split(extra.dockerArgs)
		if err != nil {
			return build.Options{}, fmt.Errorf("bad --docker-args: %w", err)
		}
		args = append(args, split...)
	}

	buildArgs, err := parseBuildArgs(extra.buildArgs)
	if err != nil {
		return build.Options{}, err
	}

	return build.Options{
		File:      file,
		Root:      RootCmd.Root,
		Builder:   cfg.Builder,
		ExtraArgs: args,
		Tags:      append(append([]string(nil), cfg.Tags...), extra.tags...),
		BuildArgs: buildArgs,
		Targets:   extra.targets,
		Output:    extra.output,
	}, nil
}

// Per-command option extras folded into [build.Options].
type options struct {
	dockerArgs string
	buildArgs  []string
	tags       []string
	targets    []string
	output     string
}

// Parses repeated "key=value" build argument flags into a map.
func parseBuildArgs(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("bad build argument %q, want key=value", pair)
		}
		out[k] = v
	}
	return out, nil
}

// Creates a per-invocation staging directory for the rendered Dockerfile
// under the state dir and returns it alongside its cleanup function.
func stageDir() (string, func(), error) {
	if err := os.MkdirAll(paths.StateDir(), paths.DefaultDirMode); err != nil {
		return "", nil, fmt.Errorf("creating state directory: %w", err)
	}
	dir, err := os.MkdirTemp(paths.StateDir(), "build-*")
	if err != nil {
		return "", nil, fmt.Errorf("creating staging directory: %w", err)
	}
	cleanup := func() {
		if err := os.RemoveAll(dir); err != nil {
			slog.Warn("removing staging directory", "dir", dir, "error", err)
		}
	}
	return dir, cleanup, nil
}

// Resolves the context root to an absolute path for log output.
func absRoot() string {
	abs, err := filepath.Abs(RootCmd.Root)
	if err != nil {
		return RootCmd.Root
	}
	return abs
}
