package share

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
)

// Provider limits for ReadPublisherLatestGlucoseValues.
const (
	MinMinutes  = 1
	MaxMinutes  = 1440
	MinMaxCount = 1
	MaxMaxCount = 288
)

// maxSessionRetries bounds how many times a call is retried after the
// provider rejects the session. Each retry re-authenticates first.
const maxSessionRetries = 1

const serialAssigned = "AssignedToYou"

type readingsRequest struct {
	SessionID string `json:"sessionId"`
	Minutes   int    `json:"minutes"`
	MaxCount  int    `json:"maxCount"`
}

type verifySerialRequest struct {
	SessionID    string `json:"sessionId"`
	SerialNumber string `json:"serialNumber"`
}

// Readings returns up to maxCount readings from the last minutes, newest
// first. An empty slice with a nil error means the provider has no data for
// the window.
func (c *Client) Readings(ctx context.Context, minutes, maxCount int) ([]GlucoseReading, error) {
	if minutes < MinMinutes || minutes > MaxMinutes {
		return nil, argumentError(ReasonMinutesOutOfRange)
	}
	if maxCount < MinMaxCount || maxCount > MaxMaxCount {
		return nil, argumentError(ReasonMaxCountOutOfRange)
	}

	var raw []RawReading
	err := c.withSession(ctx, func(session Session) error {
		raw = nil
		return c.post(ctx, endpointReadings, readingsRequest{
			SessionID: session.SessionID,
			Minutes:   minutes,
			MaxCount:  maxCount,
		}, &raw)
	})
	if err != nil {
		return nil, err
	}

	readings := make([]GlucoseReading, 0, len(raw))
	for _, r := range raw {
		readings = append(readings, Normalize(r))
	}
	sort.SliceStable(readings, func(i, j int) bool {
		return readings[i].Time.After(readings[j].Time)
	})
	return readings, nil
}

// Latest returns the most recent reading from the last 5 minutes. ok is false
// when the provider has no data.
func (c *Client) Latest(ctx context.Context) (GlucoseReading, bool, error) {
	return c.newest(ctx, 5)
}

// Current returns the most recent reading from the last 10 minutes. ok is
// false when the provider has no data.
func (c *Client) Current(ctx context.Context) (GlucoseReading, bool, error) {
	return c.newest(ctx, 10)
}

func (c *Client) newest(ctx context.Context, minutes int) (GlucoseReading, bool, error) {
	readings, err := c.Readings(ctx, minutes, 1)
	if err != nil {
		return GlucoseReading{}, false, err
	}
	if len(readings) == 0 {
		return GlucoseReading{}, false, nil
	}
	return readings[0], true, nil
}

// VerifySerialNumber reports whether the receiver with the given serial number
// is assigned to this account.
func (c *Client) VerifySerialNumber(ctx context.Context, serialNumber string) (bool, error) {
	serial := strings.TrimSpace(serialNumber)
	if serial == "" {
		return false, argumentError(ReasonSerialNumberEmpty)
	}

	var status string
	err := c.withSession(ctx, func(session Session) error {
		status = ""
		return c.post(ctx, endpointVerifySerial, verifySerialRequest{
			SessionID:    session.SessionID,
			SerialNumber: serial,
		}, &status)
	})
	if err != nil {
		return false, err
	}
	return status == serialAssigned, nil
}

// withSession runs call with a valid session. When the provider rejects the
// session, the cached one is discarded and call runs again after a fresh
// acquisition, at most maxSessionRetries times. Any other failure, or a
// rejection on the final attempt, is returned as-is.
func (c *Client) withSession(ctx context.Context, call func(Session) error) error {
	for attempt := 0; ; attempt++ {
		session, err := c.sessions.Ensure(ctx)
		if err != nil {
			return err
		}

		err = call(session)
		if err == nil || !errors.Is(err, ErrSession) || attempt >= maxSessionRetries {
			return err
		}

		reason, _ := ReasonOf(err)
		c.log.Info("session rejected, re-authenticating",
			slog.String("reason", string(reason)),
			slog.Int("attempt", attempt+1),
		)
		c.obs.ObserveSessionRejected(reason)
		c.sessions.Invalidate()
	}
}
