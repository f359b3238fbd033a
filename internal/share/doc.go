// Package share provides an authenticated client for the Dexcom Share web
// services.
//
// # Overview
//
// The package owns everything with real state and failure handling in
// dexdash: session acquisition, detection of expired sessions, transparent
// re-authentication, reading retrieval with parameter validation, and
// normalization of raw readings into GlucoseReading values.
//
// # Architecture
//
//   - client.go: Client, Options, and the JSON POST transport
//   - errors.go: error taxonomy and the provider response classifier
//   - session.go: SessionManager and the two-step login handshake
//   - readings.go: Readings, Latest, Current, VerifySerialNumber
//   - types.go: RawReading, GlucoseReading, Trend, and Normalize
//
// # Client Usage
//
//	client, err := share.NewClient(share.Options{
//		Username: cfg.Username,
//		Password: cfg.Password,
//		Region:   share.RegionUS,
//	})
//	if err != nil {
//		return err
//	}
//
//	readings, err := client.Readings(ctx, 200, 40)
//	switch {
//	case err != nil:
//		// classified failure, see below
//	case len(readings) == 0:
//		// no data for the window
//	default:
//		newest := readings[0]
//	}
//
// # Sessions
//
// A session is an account id plus a session id. It is valid only when both
// are present and neither is the all-zero identifier the provider uses for
// "not assigned". Acquisition is two calls:
//
//  1. AuthenticatePublisherAccount exchanges the username for an account id
//  2. LoginPublisherAccountById exchanges the account id for a session id
//
// A session-level defect during acquisition is reported as
// AccountError(unknown). Callers of acquisition only observe account-level
// failures.
//
// # Error Handling
//
// Every failure is an *Error whose Kind is one of ErrArgument, ErrAccount,
// ErrSession or ErrProvider, and whose Reason comes from a closed set:
//
//	if errors.Is(err, share.ErrAccount) {
//		reason, _ := share.ReasonOf(err) // e.g. share.ReasonPasswordInvalid
//	}
//
// Argument errors are raised before any network call. Session errors are
// recovered once per call: the cached session is dropped, a new one is
// acquired, and the request is retried a single time. Account and provider
// errors are never retried. Network failures and timeouts are
// ProviderError(transport).
//
// # Readings
//
// Readings are normalized by Normalize: mg/dL is kept, mmol/L is derived with
// the 0.0555 factor rounded to one decimal, trend names or codes resolve
// through a fixed table (unknown values become TrendNone), and the WT
// timestamp's embedded epoch milliseconds become a UTC time.
//
// # Thread Safety
//
// The cached session is mutex-guarded and replaced wholesale, so a Client may
// be shared. dexdash still runs one poll cycle at a time.
package share
