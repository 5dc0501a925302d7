// Package domain holds tiltapp's core entities, the persisted key layout and
// the sentinel errors shared by every other package.
//
// It does not depend on storage or logging.
//
// # Entities
//
//   - [TimerState]: the single break timer, idle or running
//   - [TimerRecord]: the persisted form of a running timer
//   - [LogEntry]: one emotion log entry
package domain
