// Package services contains the application services of the PostDesk client.
//
// PostList drives the post list: it applies list transitions, performs the
// fetches they ask for and resolves the outcomes. PostForm owns the draft
// post, coordinates video uploads and publishes. Bootstrap loads a session's
// independent data concurrently.
//
// All services are safe for concurrent use and honor context cancellation.
package services
