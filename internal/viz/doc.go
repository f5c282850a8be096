// Package viz is the terminal host for the double pendulum, built on
// Bubble Tea.
//
// The pendulum is drawn on a braille [Canvas]; the five parameter sliders
// sit above it and can be dragged with the mouse or tuned from the
// keyboard. Each tick polls input, snapshots the sliders, advances one
// fixed step and redraws.
//
// # Key Bindings
//
//	Space      - Pause/Resume simulation
//	R          - Reset state and sliders
//	Tab        - Focus next slider
//	Up/Right   - Raise focused slider
//	Down/Left  - Lower focused slider
//	C          - Clear the trail
//	Q          - Quit
package viz
