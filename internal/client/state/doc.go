// Package state holds the client's presentational state as plain values with
// pure transition functions: the post list (paginated browse vs. filtered
// search) and the post draft being authored.
//
// Nothing here performs I/O. Transitions that need data return a
// FetchRequest; the caller performs it and feeds the outcome back through
// Resolve. Every request carries a generation number and Resolve drops any
// outcome that is not for the latest generation, so a slow stale response can
// never overwrite fresher state.
package state
