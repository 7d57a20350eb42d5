// Package ui is marquee's terminal interface, built on Bubble Tea.
//
// # Architecture
//
// Model owns all UI state and is only touched from Update. Network and store
// calls run as tea.Cmd functions and report back through messages:
//
//   - moviesLoadedMsg: outcome of a catalog fetch, tagged with its cycle sequence
//   - trendingLoadedMsg: result of the one trending load at startup
//   - searchRecordedMsg: outcome of a fire-and-forget trend store write
//   - diagnosticsMsg: log tail for the diagnostics overlay
//
// # Query flow
//
//  1. Keys typed into the focused search box change the raw query.
//  2. Each change bumps the debouncer, which schedules a debounce.SettledMsg.
//  3. A settle carrying the latest tag yields the effective query; if it
//     differs from the previous one a new fetch cycle begins.
//  4. The cycle resolves to results or an error message. Results for a
//     superseded cycle are dropped.
//  5. A resolved non-empty search with at least one result records the search
//     term and its top movie in the trend store.
//
// # Files
//
//   - app.go: Model, Update, commands and Run
//   - search.go: search box and debounced input handling
//   - cards.go: "All Movies" section
//   - trending.go: "Trending Movies" section
//   - header.go: title bar and command hints
//   - diagnostics.go: log overlay
//   - help.go, keys.go, theme.go: help overlay, key bindings, palettes
package ui
