// Package server serves stored markup documents over HTTP.
//
// A Server resolves the request path to a page name, loads the page from a
// pages.Store, decodes it with the document registry, and renders it:
//
//	GET /              page "index" as HTML
//	GET /{page}        page as HTML
//	GET /{page}.json   page as a JSON element tree
//	GET /_markup/pages JSON list of page names
//	GET /healthz       liveness probe
//	GET /metrics       Prometheus metrics, when enabled
//
// Nested page names map to nested paths: /blog/first renders "blog/first"
// and /blog/ renders "blog/index".
//
// # Errors
//
// Failures are reported with the error taxonomy of internal/errors. A
// missing page is a 404, an invalid page name is a 400, and every render,
// document or store failure is a 500. HTML routes answer with the compact
// error text; JSON routes answer with the structured error.
//
// # Watch Mode
//
// With Config.Watch set, the server mounts the live reload endpoint and
// appends the reload client to every HTML response. Watch feeds file
// changes from a dev.Watcher into the reload channel, rendering changed
// pages first so that browsers see the error instead of a broken page.
//
// # Observability
//
// Requests pass through chi's RequestID, RealIP and Recoverer middleware,
// then the Prometheus and OpenTelemetry middleware when configured. Each
// render is recorded as a metric and a child span.
package server
