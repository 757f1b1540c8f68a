// Package opsapi is the HTTP client for the convoy operations backend.
//
// # Overview
//
// The backend exposes a single aggregate endpoint,
// /api/v1/advanced/unified/state, that returns everything the dashboard
// renders in one payload: convoys, routes, traffic control points, threats,
// military assets, scheduling, metrics, AI analysis, and system status.
// This package fetches and decodes that payload into typed structs, plus
// the per-convoy vehicle roster endpoint used by the detail pane.
//
// # Client
//
// NewClient takes the backend base URL (path, query, and fragment are
// stripped) and returns a Client with a 10 second request timeout. Every
// request carries Accept, a User-Agent, and a fresh X-Request-ID so
// requests can be correlated in backend logs.
//
// The StateFetcher interface covers the two operations the rest of the
// application needs; state.Store and the tests depend on it rather than on
// the concrete Client.
//
// # Error Taxonomy
//
// Fetch failures are classified into three kinds so callers can render
// them differently:
//
//   - KindNetwork: the request never completed (refused, DNS, timeout)
//   - KindHTTP: the backend answered with a non-200 status
//   - KindShape: the body decoded but is not a usable unified state
//
// All three unwrap to the underlying error where one exists, and format as
// "kind: message".
//
// # Shape Validation
//
// A unified state payload must contain all top-level sections before it is
// accepted. The decoder first reads the body into a raw section map and
// checks for the required keys, then unmarshals fully. A section that is
// present but empty is fine; a missing section means the backend and
// dashboard disagree about the contract, and the payload is rejected with
// KindShape rather than silently rendering half a picture.
//
// # Timestamps
//
// Snapshot timestamps arrive in more than one format depending on backend
// version. ParsedTimestamp tries RFC3339Nano, RFC3339, and the legacy
// "2006-01-02 15:04:05" layout (interpreted in local time) in that order.
// Callers treat a zero result as "unknown"; the store's ordering guard
// only engages when both sides parse.
package opsapi
