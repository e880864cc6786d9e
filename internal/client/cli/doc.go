// Package cli provides the interactive PostDesk command-line client.
//
// It wires configuration, the REST API client, the upload coordinator and the
// application services into a REPL. Typical flow: load categories and the
// first page of posts concurrently, render the list, then execute user
// commands until "exit".
//
// Key features:
//   - Browse posts page by page, or search by text and category
//   - Show and delete posts
//   - Author a draft: title, rich-text body, tags, categories, featured image
//   - Upload a featured video in the background through a pre-signed URL
//   - Publish the draft as a new post, or as an update of an existing one
//
// Failures are shown as one-line notifications carrying the most specific
// message available. See App and runREPL for details.
package cli
