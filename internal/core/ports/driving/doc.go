// Package driving provides interfaces for user-facing adapters
// (primary/inbound ports): the chat pipeline, the index builder, and
// the history, auth and file services consumed by the CLI, TUI and web
// surfaces.
package driving
