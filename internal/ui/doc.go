// Package ui is the coolctl terminal interface, built on Bubble Tea.
//
// The model never talks to the poller directly. It re-reads the state.Store
// snapshot on its own tick and renders the connectivity badge from it:
// CHECKING until the first answer, then ONLINE or OFFLINE. A failed request
// renders as OFFLINE with a short reason from DescribeError.
//
// Command presets from config are bound to single keys. Pressing one sends
// the preset's schedule through the remote.Commander in a tea.Cmd; while a
// command is in flight further presets are ignored.
//
// Prompter bridges auth.Prompter into the program. A request from the
// authenticator arrives as a message, opens a password modal, and the answer
// goes back on a buffered channel. Run binds the prompter to the program
// before it starts.
//
// The lower pane tails coolctl's own log file through logtail and colours
// lines by level.
package ui
