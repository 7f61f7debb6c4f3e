// Package services provides domain services that work across the Order
// aggregate and its HistoryEntry records.
//
// The package includes:
//   - HistoryRecorder: decides which audit entry, if any, an accepted change produces
//   - HistoryAuditor: replays an order's history and checks it is a legal walk
//     through the transition table
package services
