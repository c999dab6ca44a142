// Package state holds the connectivity status shared between the poller and
// the UI.
//
// # Status Variants
//
// Status is a closed sum type:
//
//   - Checking: nothing received yet (initial state)
//   - Reported{Online}: the device API answered /status
//   - Failed{Err}: the request failed; shown as offline with the error
//
// Consumers switch on the concrete type:
//
//	switch st := snap.Status.(type) {
//	case state.Checking:
//	case state.Reported:
//		_ = st.Online
//	case state.Failed:
//		_ = st.Err
//	}
//
// # Concurrency Model
//
// The poller goroutine calls Publish; the UI reads Snapshot on its own tick.
// A sync.RWMutex guards the snapshot, and only the latest value is kept.
package state
