// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): embedding and LLM services, the vector
// index, the translation backend, and the storage interfaces.
package driven
