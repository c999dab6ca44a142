// Package logtail reads the tail of coolctl's own log file for display.
//
// Read keeps a ring buffer of maxLines entries while scanning the file once,
// so memory stays O(maxLines) regardless of file size. Parse splits a zap
// console line into time, level, message and fields so the UI can colour it
// by level.
package logtail
