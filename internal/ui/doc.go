// Package ui implements the Vanguard terminal dashboard with Bubble Tea.
//
// # Layout
//
//	┌─────────────────────────────────────────────────────┐
//	│ header: sync id, convoy counts, threat level, link  │
//	├───────────────────────────┬─────────────────────────┤
//	│ focused panel             │ detail pane (viewport)  │
//	│ convoys / routes /        │ selected entity,        │
//	│ threats (tab cycles)      │ recommendations,        │
//	│                           │ vehicle roster          │
//	├───────────────────────────┴─────────────────────────┤
//	│ footer: key hints                                   │
//	└─────────────────────────────────────────────────────┘
//
// # Data Flow
//
// The model never polls. Run subscribes a listener on the state store and a
// watcher on the selection coordinator; both turn updates into messages via
// program.Send, so all mutation happens on the Bubble Tea update loop. The
// subscription is what starts the fetch scheduler, and quitting the program
// unsubscribes, which stops it.
//
// Selecting a row with enter publishes the convoy or route ID through the
// selection coordinator; every panel reacts to the resulting selectionMsg.
// A selection whose entity has disappeared from the snapshot renders as a
// "nothing found" detail pane rather than being cleared.
//
// # Keys
//
// tab cycles panels, arrows and j/k move the cursor, enter selects, esc
// clears, r forces a refresh, v fetches the selected convoy's vehicle
// roster, t cycles themes (persisted to prefs), ? shows help, q quits.
//
// # Themes
//
// Two built-in themes, Nightwatch and Daylight. Theme defines the palette;
// Styles derives the lipgloss styles once per theme switch. Entity status
// strings map to colors through StatusStyle so panels never hardcode
// status colors.
package ui
