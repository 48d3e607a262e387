// Package viz is the terminal front end, built on Bubble Tea.
//
//   - [Model]: polls keys and the mouse into interact.Input on every tick,
//     steps the engine and renders the scene plus a status line.
//   - [Canvas]: braille pixel canvas implementing render.Drawer, with one
//     color per character cell.
//
// # Key Bindings
//
// Keys come from the config file. Terminals never report a key held during
// a click, so the click modifiers (add body, delete body, add mass, toggle
// center) toggle on and stay armed until the next click. Zoom keys count as
// held for a short window after each auto-repeat. Modifier-only bindings
// such as shift fall back to +/- for zoom and q for exit.
//
//	t     - Cycle color themes
//	f     - Fit every body on screen
package viz
