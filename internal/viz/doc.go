// Package viz is the terminal surface for the spring curve.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: live view driving a [sim.Loop] from tea ticks
//   - [Canvas]: Braille-based dot canvas with per-cell color layers
//   - Theme selection with 6 built-in color schemes
//
// The curve lives on a logical surface (800x500 by default) which the
// canvas scales onto its braille dots. Mouse cells are mapped back onto the
// same surface, so the pointer the scene sees is resolution independent.
//
// # Key Bindings
//
//	Mouse   - Move the pointer
//	WASD    - Glide the pointer
//	Space   - Pause/Resume
//	R       - Reset the springs
//	T       - Cycle color themes
//	G       - Toggle GIF recording
//	E       - Save an SVG snapshot
//	?       - Show help overlay
//
// # Recording
//
// GIF recordings rasterize every frame at half the surface size and are
// written when recording stops or the view quits.
package viz
