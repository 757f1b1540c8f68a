// Package proxy runs an optional local reverse proxy in front of the
// operations backend.
//
// The proxy forwards requests verbatim: path, query string, headers, and
// body pass through untouched, and the backend's response comes back
// unmodified. Its value is operational, not functional: it gives tools on
// the operator's machine a stable local address, counts traffic per method
// in a private Prometheus registry exposed at /metrics, and converts an
// unreachable backend into a clean 503 with a fixed JSON error body
// instead of a hung connection.
//
// The proxy is off unless proxy_addr is configured. It shares nothing with
// the state package; the dashboard's own polling goes straight to the
// backend.
package proxy
