// Package app is the composition root for marquee.
//
// Run loads the TOML config, opens the log file under the data directory,
// builds the catalog client from the config and the TMDB_API_TOKEN
// environment variable, opens the trend store and hands everything to the UI.
//
// Fatal errors (returned from Run):
//   - config file present but unreadable or invalid
//   - log file cannot be created
//   - invalid catalog base URL
//
// Recoverable errors (logged, startup continues):
//   - trend database cannot be opened; the in-memory store is used instead
//
// Everything after startup is non-fatal: catalog failures become a message
// in the UI and trend store failures only reach the log.
package app
