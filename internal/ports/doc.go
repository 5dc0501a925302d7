// Package ports defines the interfaces that connect the timer engine and the
// emotion log to their infrastructure adapters.
//
// # Port Interfaces
//
//   - [Store]: synchronous key/value persistence that survives restarts
//   - [Notifier]: user-facing completion messages
//
// Adapters live under internal/adapters. The application layer depends only
// on these interfaces.
package ports
