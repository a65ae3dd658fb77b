package build

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/cruciblehq/stoker/internal/dockerfile"
	"github.com/cruciblehq/stoker/internal/template"
)

// Filename of the rendered Dockerfile inside the staging directory.
const renderedFilename = "Dockerfile"

// Controls a build.
type Options struct {
	File      string            // Template file, resolved under Root unless absolute.
	Root      string            // Build context root.
	StageDir  string            // Directory for the rendered Dockerfile.
	Builder   string            // Build tool binary override; discovery applies when empty.
	ExtraArgs []string          // Extra arguments passed through to the build invocation.
	Tags      []string          // Image tags. The first tag names the build; the rest are aliases.
	BuildArgs map[string]string // Build arguments; shadow template-set ones.
	Targets   []string          // Stage names to build. Empty builds the default target.
	Output    string            // Local output directory; shadows a template-set one.
}

// Drives rendering and the external build tool for one template.
type Build struct {
	opts Options
	rt   *Runtime
	eng  *template.Engine
}

// Creates a [Build] from the given options and wires the template runtime
// into the rendering engine as .Stoker.
func New(opts Options) *Build {
	rt := newRuntime(opts.BuildArgs)
	eng := template.New(opts.Root)
	eng.Set("Stoker", rt)

	return &Build{
		opts: opts,
		rt:   rt,
		eng:  eng,
	}
}

// Renders the Dockerfile template to w.
func (b *Build) Render(w io.Writer) error {
	return b.eng.RenderFile(b.opts.File, w)
}

// One entry in the target build sequence.
type buildTarget struct {
	name string // Stage name, empty for the default target.
	last bool   // Whether this is the final target of the sequence.
}

// Expands the configured targets into a build sequence. With no targets
// configured, the default target is built once.
func buildTargets(targets []string) []buildTarget {
	if len(targets) == 0 {
		return []buildTarget{{last: true}}
	}
	out := make([]buildTarget, len(targets))
	for i, name := range targets {
		out[i] = buildTarget{name: name, last: i == len(targets)-1}
	}
	return out
}

// Assembles the argv for one build invocation (without the binary itself).
func (b *Build) buildArgv(dockerfilePath string, target buildTarget, firstTag string) []string {
	args := []string{"buildx", "build", "-f", dockerfilePath}
	args = append(args, b.opts.ExtraArgs...)

	for _, kv := range b.rt.mergedBuildArgs() {
		args = append(args, "--build-arg", kv)
	}

	if out := b.rt.effectiveOutput(b.opts.Output); out != "" {
		args = append(args, "--output", "type=local,dest="+out)
	}

	if target.name != "" {
		args = append(args, "--target", target.name)
	}

	if target.last && firstTag != "" {
		args = append(args, "-t", firstTag)
	}

	return append(args, b.opts.Root)
}

// Renders the Dockerfile into the staging directory and runs the external
// build tool once per target.
//
// Requested targets are checked against the declared stage aliases before
// the tool is invoked, so a mistyped target fails here rather than inside
// the subprocess. The first configured tag is applied by the final build
// invocation; any further tags are applied afterwards as aliases of it.
func (b *Build) Build(ctx context.Context) error {
	var rendered bytes.Buffer
	if err := b.Render(&rendered); err != nil {
		return err
	}

	if err := b.validateTargets(rendered.Bytes()); err != nil {
		return err
	}

	path := filepath.Join(b.opts.StageDir, renderedFilename)
	if err := os.WriteFile(path, rendered.Bytes(), 0644); err != nil {
		return fmt.Errorf("%w: %w", ErrStaging, err)
	}

	tool, err := findTool(b.opts.Builder)
	if err != nil {
		return err
	}

	tags := b.rt.mergedTags(b.opts.Tags)
	var firstTag string
	if len(tags) > 0 {
		firstTag = tags[0]
	}

	for _, target := range buildTargets(b.opts.Targets) {
		argv := b.buildArgv(path, target, firstTag)
		slog.Info("building", "tool", tool, "target", target.name, "context", b.opts.Root)
		slog.Debug("build command", "argv", argv)

		if err := run(ctx, tool, argv...); err != nil {
			if target.name != "" {
				return fmt.Errorf("%w: target %s: %w", ErrBuild, target.name, err)
			}
			return fmt.Errorf("%w: %w", ErrBuild, err)
		}
	}

	for _, tag := range tags[min(len(tags), 1):] {
		slog.Info("tagging", "tag", tag)
		if err := run(ctx, tool, "tag", firstTag, tag); err != nil {
			return fmt.Errorf("%w: tag %s: %w", ErrBuild, tag, err)
		}
	}

	return nil
}

// Pushes every configured tag with the external build tool.
func (b *Build) Push(ctx context.Context) error {
	tags := b.rt.mergedTags(b.opts.Tags)
	if len(tags) == 0 {
		return ErrNoTags
	}

	tool, err := findTool(b.opts.Builder)
	if err != nil {
		return err
	}

	for _, tag := range tags {
		slog.Info("pushing", "tag", tag)
		if err := run(ctx, tool, "push", tag); err != nil {
			return fmt.Errorf("%w: push %s: %w", ErrPush, tag, err)
		}
	}
	return nil
}

// Renders the template and returns the FROM records of the resulting
// Dockerfile, in declaration order. Consumers use the aliases for target
// selection and validation.
func (b *Build) Stages() ([]dockerfile.From, error) {
	var buf bytes.Buffer
	if err := b.Render(&buf); err != nil {
		return nil, err
	}
	return stagesOf(buf.Bytes())
}

// Extracts the FROM records of an already rendered Dockerfile.
func stagesOf(rendered []byte) ([]dockerfile.From, error) {
	instrs, err := dockerfile.New().Push(rendered, true)
	if err != nil {
		return nil, err
	}

	var stages []dockerfile.From
	for _, inst := range instrs {
		if from, ok := inst.(dockerfile.From); ok {
			stages = append(stages, from)
		}
	}
	return stages, nil
}

// Checks every requested target against the stage aliases the rendered
// Dockerfile declares.
func (b *Build) validateTargets(rendered []byte) error {
	if len(b.opts.Targets) == 0 {
		return nil
	}

	stages, err := stagesOf(rendered)
	if err != nil {
		return err
	}

	aliases := make(map[string]bool, len(stages))
	for _, stage := range stages {
		if stage.Alias != "" {
			aliases[stage.Alias] = true
		}
	}

	for _, target := range b.opts.Targets {
		if !aliases[target] {
			return fmt.Errorf("%w: %s", ErrUnknownTarget, target)
		}
	}
	return nil
}

// Runs the tool with the given arguments, streaming its output.
func run(ctx context.Context, tool string, args ...string) error {
	cmd := exec.CommandContext(ctx, tool, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
