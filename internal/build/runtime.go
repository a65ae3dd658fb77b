package build

import (
	"sort"
	"sync"
)

// Template-visible build state.
//
// Templates receive the runtime as .Stoker and may add tags, set build
// arguments, and choose an output directory while rendering. Values supplied
// on the command line or from the config file shadow template-set ones.
// The mutating methods return an empty string so they can be invoked as
// ordinary template expressions without emitting output.
type Runtime struct {
	mu        sync.Mutex
	config    map[string]string // Build args from the caller; take precedence.
	buildArgs map[string]string // Build args set by the template.
	tags      []string          // Tags added by the template.
	output    string            // Output directory set by the template.
}

// Creates a runtime seeded with caller-supplied build arguments.
func newRuntime(configArgs map[string]string) *Runtime {
	r := &Runtime{
		config:    make(map[string]string, len(configArgs)),
		buildArgs: make(map[string]string),
	}
	for k, v := range configArgs {
		r.config[k] = v
	}
	return r
}

// Sets a build argument from the template.
func (r *Runtime) SetBuildArg(name, value string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buildArgs[name] = value
	return "", nil
}

// Returns a build argument's value, caller-supplied values first.
func (r *Runtime) BuildArg(name string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.config[name]; ok {
		return v
	}
	return r.buildArgs[name]
}

// Adds an image tag from the template.
func (r *Runtime) AddTag(tag string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tags = append(r.tags, tag)
	return "", nil
}

// Sets the local output directory from the template.
func (r *Runtime) SetOutput(path string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.output = path
	return "", nil
}

// Returns the effective build arguments as sorted "key=value" strings.
// Caller-supplied values shadow template-set ones.
func (r *Runtime) mergedBuildArgs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	merged := make(map[string]string, len(r.buildArgs)+len(r.config))
	for k, v := range r.buildArgs {
		merged[k] = v
	}
	for k, v := range r.config {
		merged[k] = v
	}

	out := make([]string, 0, len(merged))
	for k, v := range merged {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}

// Returns the template-added tags appended to the caller-supplied ones.
func (r *Runtime) mergedTags(configTags []string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append(append([]string(nil), configTags...), r.tags...)
}

// Returns the effective output directory; the caller-supplied value wins.
func (r *Runtime) effectiveOutput(configOutput string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if configOutput != "" {
		return configOutput
	}
	return r.output
}
