package share

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel error kinds. Use errors.Is(err, share.ErrSession) to check.
var (
	ErrArgument = errors.New("share: argument error")
	ErrAccount  = errors.New("share: account error")
	ErrSession  = errors.New("share: session error")
	ErrProvider = errors.New("share: provider error")
)

// Reason is the machine-checkable cause carried by an Error.
type Reason string

const (
	ReasonMinutesOutOfRange  Reason = "minutes-out-of-range"
	ReasonMaxCountOutOfRange Reason = "max-count-out-of-range"
	ReasonSerialNumberEmpty  Reason = "serial-number-empty"

	ReasonUsernameEmpty   Reason = "username-empty"
	ReasonPasswordEmpty   Reason = "password-empty"
	ReasonAccountNotFound Reason = "account-not-found"
	ReasonPasswordInvalid Reason = "password-invalid"
	ReasonMaxAttempts     Reason = "max-attempts"
	ReasonAccountUnknown  Reason = "unknown"

	ReasonSessionIDNull    Reason = "session-id-null"
	ReasonSessionIDDefault Reason = "session-id-default"
	ReasonSessionNotValid  Reason = "session-not-valid"
	ReasonSessionNotFound  Reason = "session-not-found"
	ReasonAccountIDNull    Reason = "account-id-null"
	ReasonAccountIDDefault Reason = "account-id-default"

	ReasonUnclassified Reason = "unclassified"
	ReasonTransport    Reason = "transport"
	ReasonThrottled    Reason = "login-throttled"
)

var reasonText = map[Reason]string{
	ReasonMinutesOutOfRange:  "minutes must be between 1 and 1440",
	ReasonMaxCountOutOfRange: "max count must be between 1 and 288",
	ReasonSerialNumberEmpty:  "serial number null or empty",
	ReasonUsernameEmpty:      "username null or empty",
	ReasonPasswordEmpty:      "password null or empty",
	ReasonAccountNotFound:    "account not found",
	ReasonPasswordInvalid:    "password not valid",
	ReasonMaxAttempts:        "maximum authentication attempts exceeded",
	ReasonAccountUnknown:     "account error",
	ReasonSessionIDNull:      "session id null",
	ReasonSessionIDDefault:   "session id default",
	ReasonSessionNotValid:    "session id not valid",
	ReasonSessionNotFound:    "session id not found",
	ReasonAccountIDNull:      "account id null or empty",
	ReasonAccountIDDefault:   "account id default",
	ReasonUnclassified:       "unclassified provider error",
	ReasonTransport:          "transport failure",
	ReasonThrottled:          "session acquisition throttled locally",
}

// Error is a classified failure. Kind is one of the sentinel errors above.
type Error struct {
	Kind       error
	Reason     Reason
	StatusCode int    // provider HTTP status, zero when no response was received
	Code       string // provider error code from the response body
	Message    string // provider error message from the response body
	Err        error  // underlying cause, if any
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	b.WriteString(": ")
	if text, ok := reasonText[e.Reason]; ok {
		b.WriteString(text)
	} else {
		b.WriteString(string(e.Reason))
	}
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (HTTP %d", e.StatusCode)
		if e.Code != "" {
			fmt.Fprintf(&b, " %s", e.Code)
		}
		b.WriteString(")")
	}
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Is reports whether target is this error's kind.
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ReasonOf returns the Reason of the first *Error in err's chain.
func ReasonOf(err error) (Reason, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se.Reason, true
	}
	return "", false
}

func argumentError(reason Reason) *Error {
	return &Error{Kind: ErrArgument, Reason: reason}
}

func accountError(reason Reason) *Error {
	return &Error{Kind: ErrAccount, Reason: reason}
}

func sessionError(reason Reason) *Error {
	return &Error{Kind: ErrSession, Reason: reason}
}

func transportError(err error) *Error {
	return &Error{Kind: ErrProvider, Reason: ReasonTransport, Err: err}
}

// throttledError reports that the local acquisition limiter gave up before a
// login slot opened. No request reached the provider.
func throttledError(err error) *Error {
	return &Error{Kind: ErrProvider, Reason: ReasonThrottled, Err: err}
}

// Provider error codes returned in the body of HTTP 500 responses.
const (
	codeSessionNotValid   = "SessionNotValid"
	codeSessionIDNotFound = "sessionIdNotFound"
	codeAccountNotFound   = "SSO_AuthenticateAccountNotFound"
	codePasswordInvalid   = "AccountPasswordInvalid"
	codeMaxAttempts       = "SSO_AuthenticateMaxAttemptsExceeeded"
	codeMaxAttemptsLegacy = "SSO_AuthenticateMaxAttemptsExceeed"
	codeInvalidArgument   = "InvalidArgument"
)

// errorBody mirrors the provider's failure payload.
type errorBody struct {
	Code    string `json:"Code"`
	Message string `json:"Message"`
}

// Classify maps a provider response to the error taxonomy. It returns nil for
// 2xx responses. Rules are evaluated in order and the first match wins.
func Classify(status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}

	var payload errorBody
	_ = json.Unmarshal(body, &payload)

	if status == http.StatusInternalServerError {
		var classified *Error
		switch payload.Code {
		case codeSessionNotValid:
			classified = sessionError(ReasonSessionNotValid)
		case codeSessionIDNotFound:
			classified = sessionError(ReasonSessionNotFound)
		case codeAccountNotFound:
			classified = accountError(ReasonAccountNotFound)
		case codePasswordInvalid:
			classified = accountError(ReasonPasswordInvalid)
		case codeMaxAttempts, codeMaxAttemptsLegacy:
			classified = accountError(ReasonMaxAttempts)
		case codeInvalidArgument:
			switch {
			case strings.Contains(payload.Message, "accountName"):
				classified = accountError(ReasonUsernameEmpty)
			case strings.Contains(payload.Message, "password"):
				classified = accountError(ReasonPasswordEmpty)
			}
		}
		if classified != nil {
			classified.StatusCode = status
			classified.Code = payload.Code
			classified.Message = payload.Message
			return classified
		}
	}

	return &Error{
		Kind:       ErrProvider,
		Reason:     ReasonUnclassified,
		StatusCode: status,
		Code:       payload.Code,
		Message:    payload.Message,
	}
}
