// Package http exposes the localization service as a small JSON API.
//
// Routes mount under the configured base path (default "/"):
//   - GET  /sq/names      translatable asset paths
//   - GET  /sq/value      merged script or key table for ?path=
//   - POST /sq/translate  overwrite one stored translation
//
// Handler wraps the routes in a permissive CORS middleware. Host
// applications can call Register on their own mux instead.
package http
