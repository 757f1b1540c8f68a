// Package app wires Vanguard together and runs it.
//
// Run is the composition root: it loads config (flags override file, env
// overrides both), opens the log file, loads preferences, builds the
// backend client, the state store, and the selection coordinator, starts
// the optional reverse proxy, and hands everything to the UI. Nothing else
// in the codebase constructs these pieces; every other package receives
// its dependencies.
//
// Shutdown is signal-driven. main cancels the root context on SIGINT or
// SIGTERM, the UI program exits, its deferred unsubscribe stops the fetch
// scheduler, and the proxy (when running) drains with a short timeout. A
// context-cancelled UI exit is a clean exit, not an error.
package app
