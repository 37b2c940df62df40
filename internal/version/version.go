// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Comets, Saturn's ring, shuttle, background music, YAML config
// 0.2.0 - Pointer picking with pinned tooltips and detail panel, camera focus transitions
// 0.1.0 - Initial release: animated orrery, shooting stars, pause, headless summary
