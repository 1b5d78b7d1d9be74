// Package domain holds the core business entities of the Lawgic
// assistant: corpus documents and chunks, queries and answers, chat
// history, users and sessions, and the domain error taxonomy.
//
// The package has no dependencies on adapters or external services.
package domain
