// Package viz provides the terminal view of a running mosaic.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: live view that steps the engine on every tick
//   - [Canvas]: half-block color canvas, two pixels per cell
//   - [NewLauncher]: preset and tracking source picker
//   - Theme selection with 4 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Restart the current image
//	N     - Next image
//	M     - Toggle mirrored tracking
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
//
// # Pointer
//
// With mouse input enabled the cell under the mouse is mapped back through
// the engine's feed mapping, so mouse input behaves exactly like a tracker
// reporting the same spot.
package viz
