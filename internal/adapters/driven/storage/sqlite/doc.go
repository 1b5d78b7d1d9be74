// Package sqlite provides SQLite-backed implementations of the
// storage ports: the chunk-text sidecar for the vector index, user
// accounts, login sessions, and per-user chat history.
//
// A single database file holds everything, opened in WAL mode so the
// web variant can read while history writes land.
package sqlite
