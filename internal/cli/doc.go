// Parses flags and dispatches the stoker subcommands.
//
// The CLI accepts the following global flags:
//
//	-q, --quiet     Suppress informational output.
//	-v, --verbose   Enable verbose output.
//	-d, --debug     Enable debug output.
//	-f, --file      Dockerfile template to render.
//	-C, --root      Build context root.
//
// Flags override build-time defaults set via linker flags and values from
// the config file. After parsing, the global logger is reconfigured to
// reflect the final level before any subcommand runs.
package cli
