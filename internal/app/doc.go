// Package app wires coolctl together and runs the status poller.
//
// # Overview
//
// openServices is the composition root: it loads config, opens the log file
// and builds one credential.FileStore, one auth.Authenticator and one
// remote.Client per process. The authenticator's ask-once flag therefore lives
// exactly as long as the process.
//
//	Run()
//	  ├─> config.Load()            config.toml or defaults
//	  ├─> logging.New()            log file, never the terminal
//	  ├─> auth.New(ui.Prompter)    prompt through the TUI modal
//	  ├─> Poller.Subscribe(store)  background status loop
//	  └─> ui.Run()                 blocks until quit
//
// Status, Send and Logout are the one-shot subcommands. They share the same
// wiring but prompt on the terminal.
//
// # Polling
//
// Poller.Subscribe publishes Checking, then asks GetStatus immediately and
// every interval after that (3 s by default). Each result maps to exactly one
// published state:
//
//   - success: Reported{Online}
//   - any error: Failed{Err}, which the UI shows as offline
//
// Ticks run one at a time on a single goroutine, so a slow request delays the
// next tick rather than overlapping it and the last completed request always
// wins. There is no retry or backoff.
//
// Session.Unsubscribe stops the loop. A request already in flight is not
// cancelled, but its result is dropped: publishing and Unsubscribe share a
// mutex and nothing is published once the session is dead.
package app
