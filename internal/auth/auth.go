// Package auth turns the stored credential into an Authorization header and
// asks the operator for a credential at most once per process.
package auth

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"

	"github.com/five82/coolctl/internal/credential"
	"github.com/five82/coolctl/internal/logging"
)

// Username is the fixed basic-auth user the device API expects.
const Username = "admin"

// Prompter asks the operator for a credential. An empty answer means the
// operator declined.
type Prompter interface {
	PromptCredential(ctx context.Context) (string, error)
}

// PromptFunc adapts a function to Prompter.
type PromptFunc func(ctx context.Context) (string, error)

// PromptCredential calls f.
func (f PromptFunc) PromptCredential(ctx context.Context) (string, error) {
	return f(ctx)
}

// MissingCredentialError reports that no credential could be obtained. Err
// holds the prompt failure, if any, such as ctx.Err() on shutdown.
type MissingCredentialError struct {
	Prompted bool
	Err      error
}

func (e *MissingCredentialError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("no credential available: %v", e.Err)
	}
	return "no credential available; restart coolctl to enter one"
}

func (e *MissingCredentialError) Unwrap() error { return e.Err }

// Authenticator builds Authorization headers from a credential.Store.
// Construct one per process; the prompt flag is never reset.
type Authenticator struct {
	store    credential.Store
	prompter Prompter
	log      *logging.Logger

	mu          sync.Mutex
	hasPrompted bool
}

// New returns an Authenticator. prompter may be nil, in which case a missing
// credential always fails.
func New(store credential.Store, prompter Prompter, log *logging.Logger) *Authenticator {
	if log == nil {
		log = logging.Nop()
	}
	return &Authenticator{store: store, prompter: prompter, log: log}
}

// Header returns the Authorization header value for the current credential.
// Only the first caller without a credential is prompted; the lock is not held
// while the prompt is open, so every other caller fails at once with
// *MissingCredentialError until the answer is stored.
func (a *Authenticator) Header(ctx context.Context) (string, error) {
	if token, ok := a.store.Get(); ok {
		return BasicHeader(token), nil
	}
	if !a.claimPrompt() {
		return "", &MissingCredentialError{Prompted: true}
	}

	if a.prompter == nil {
		return "", &MissingCredentialError{}
	}
	a.log.Infow("credential missing, prompting operator")
	answer, err := a.prompter.PromptCredential(ctx)
	if err != nil {
		a.log.Warnw("credential prompt failed", "err", err)
		return "", &MissingCredentialError{Prompted: true, Err: err}
	}
	token := strings.TrimSpace(answer)
	if token == "" {
		a.log.Infow("credential prompt declined")
		return "", &MissingCredentialError{Prompted: true}
	}
	if err := a.store.Set(token); err != nil {
		a.log.Warnw("persist credential failed", "err", err)
	}
	return BasicHeader(token), nil
}

// claimPrompt marks the one allowed prompt as used and reports whether the
// caller got it.
func (a *Authenticator) claimPrompt() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.hasPrompted {
		return false
	}
	a.hasPrompted = true
	return true
}

// Reject drops a credential the server refused. It also uses up the prompt,
// so a rejection is never followed by another prompt in the same process.
func (a *Authenticator) Reject() error {
	a.mu.Lock()
	a.hasPrompted = true
	a.mu.Unlock()
	return a.store.Clear()
}

// Prompted reports whether the one allowed prompt has been used.
func (a *Authenticator) Prompted() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.hasPrompted
}

// BasicHeader encodes token for the fixed admin user.
func BasicHeader(token string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(Username+":"+token))
}
