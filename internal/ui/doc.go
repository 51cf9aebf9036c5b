// Package ui provides the paintbox terminal interface.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model holds all view state and reads the
// live inventory from a state.Session; it never mutates inventory itself.
// Every write (quantity edits, import commits, clear) runs in a tea.Cmd and
// comes back as a message, after which the model reloads its snapshot.
//
// # Package Structure
//
//   - app.go: Model, Options, Update routing and Run
//   - grid.go: color grid, detail pane and the titled box frame
//   - header.go: stats header, command bar, status line and DescribeError
//   - menu.go: data menu for export, import (read, strategy, preview, confirm) and clear
//   - modal.go: Modal interface and the quantity editor
//   - help.go: key binding overlay
//   - theme.go, themes.toml, style_helpers.go: embedded palettes, stock colors and background-safe rendering
//
// # Import Flow
//
//  1. I opens the source prompt (file path or share code)
//  2. enter runs Reconciler.Load; a blank entry is a cancellation
//  3. r/m/k (or 1/2/3) picks the merge strategy and shows the preview
//  4. y commits through Reconciler.Commit; n or esc discards the candidate
//
// While a data operation is in flight the menu ignores input, so a second
// import, export or clear cannot start.
//
// # Usage Example
//
//	err := ui.Run(ui.Options{
//		Context:    ctx,
//		Catalog:    cat,
//		Session:    session,
//		Reconciler: reconciler,
//		ExportDir:  cfg.ExportDir,
//	})
//
// # Key Bindings
//
//   - /: Search by code or name (esc clears)
//   - f: Cycle stock filter; a/s/o/w pick one
//   - enter: Edit quantity; +/-: adjust by one
//   - m: Data menu; x export, I import, C clear
//   - T: Cycle theme
//   - ?: Help
package ui
