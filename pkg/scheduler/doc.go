// Package scheduler runs the daily expiry reminder: once per day each
// chat with soon-to-expire pantry items gets a nudge to /suggest.
package scheduler
