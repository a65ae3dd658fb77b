// Package paths resolves well-known filesystem locations for stoker.
//
// Locations follow the XDG base directory specification with sensible
// fallbacks on platforms without native XDG support.
package paths
