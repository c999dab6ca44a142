// Package remote provides an HTTP client for the device control API.
//
// # Overview
//
// The device exposes two JSON endpoints:
//
//   - GET /status: {"online": bool}
//   - POST /command: body {"intervals": {...}}, reply is opaque JSON
//
// Every request carries Authorization: Basic base64("admin:" + credential).
// The header comes from a HeaderSource (normally *auth.Authenticator) and is
// recomputed per request, so a credential set or cleared elsewhere is picked
// up by the very next call.
//
// # Client Usage
//
//	client, err := remote.NewClient(cfg.APIURL, authenticator, authenticator, log)
//	if err != nil {
//		return err
//	}
//
//	status, err := client.GetStatus(ctx)
//	_, err = client.SendCommand(ctx, remote.Cooling(22))
//
// # Error Handling
//
// Request maps every failure to one typed error:
//
//   - *auth.MissingCredentialError: no credential, nothing was sent
//   - *AuthRejectedError: 401; the credential was rejected and cleared first
//   - *HTTPError: any other non-2xx status, with the response text
//   - *NetworkError: connection refused, DNS failure, timeout
//   - *DecodeError: 2xx response that is not the expected JSON
//
// Use errors.As to branch on them. GetStatus and SendCommand return these
// unchanged.
//
// # Design Rationale
//
// The client never retries. The poller simply tries again on its next tick;
// commands surface failures to the operator who issued them.
package remote
