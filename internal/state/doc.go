// Package state models the catalog fetch cycle owned by the UI.
//
// # Overview
//
// Each effective-query change or the initial mount starts a cycle:
//
//	Idle ──Begin──> Loading ──Resolve(ok)──>  Ready
//	                   │
//	                   └────Resolve(err)──> Failed
//
// Exactly one of loading, error(message) or ready(list) is observable at a
// time. Begin always re-enters Loading and clears the previous message, so a
// new query attempt starts from a clean slate after a failure.
//
// # Sequencing
//
// Begin hands out a monotonically increasing sequence number. The command that
// performs the fetch carries it back, and Resolve drops any outcome whose
// sequence is not the latest. A slow response for an old query therefore
// never overwrites the results of a newer one.
//
//	seq := cycle.Begin("alien")     // 1
//	seq2 := cycle.Begin("aliens")   // 2
//	cycle.Resolve(seq, movies, nil) // false, dropped
//	cycle.Resolve(seq2, movies, nil) // true, Ready
//
// # Error messages
//
// Failed cycles store catalog.UserMessage(err): the server text for domain
// failures, a fixed generic line for anything else. Results are cleared on
// failure so no partial list is shown next to an error.
//
// # Concurrency
//
// Cycle is not synchronized. It is only mutated from the Bubble Tea Update
// loop, which runs on a single goroutine. Snapshot copies the movie slice so
// rendering code cannot alias internal state.
package state
