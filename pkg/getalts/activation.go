package getalts

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/getalts/getalts-go/pkg/errors"
)

// Defaults for [WaitOptions].
const (
	DefaultPollInterval = 5 * time.Second
	DefaultMaxWait      = time.Minute
)

// ErrNoCode is returned by [Client.WaitForCode] when no verification
// code arrives within the wait window.
var ErrNoCode = errors.New(errors.ErrCodeNoCode, "no verification code received before deadline")

// BuyNumber rents a number for the given service and country and returns
// the new activation. Never cached, never retried on API-level errors
// unless the remote code is configured transient.
func (c *Client) BuyNumber(ctx context.Context, service Service, country Country) (*Activation, error) {
	if !service.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "unknown service: %q", service)
	}
	if !country.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "unknown country: %q", country)
	}

	var act Activation
	params := url.Values{"service": {string(service)}, "country": {string(country)}}
	if err := c.get(ctx, "buy_number", params, &act); err != nil {
		return nil, err
	}
	if err := validateActivation("buy_number", &act); err != nil {
		return nil, err
	}
	return &act, nil
}

// ActivationStatus fetches the current state of an activation and
// returns an updated snapshot. The input activation is not mutated.
func (c *Client) ActivationStatus(ctx context.Context, act *Activation) (*Activation, error) {
	if act == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "activation cannot be nil")
	}
	if err := errors.ValidateActivationID(act.ID); err != nil {
		return nil, err
	}

	var resp struct {
		Status Status `json:"status"`
		Code   int    `json:"code,omitempty"`
	}
	params := url.Values{"activation_id": {strconv.FormatInt(act.ID, 10)}}
	if err := c.get(ctx, "get_activation_status", params, &resp); err != nil {
		return nil, err
	}
	if !resp.Status.Valid() {
		return nil, errors.New(errors.ErrCodeDecode, "get_activation_status: unknown status %q", resp.Status)
	}

	updated := *act
	updated.Status = resp.Status
	updated.Code = resp.Code
	return &updated, nil
}

// setStatus requests a state transition and returns the updated
// activation snapshot.
func (c *Client) setStatus(ctx context.Context, act *Activation, a action) (*Activation, error) {
	if act == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "activation cannot be nil")
	}
	if err := errors.ValidateActivationID(act.ID); err != nil {
		return nil, err
	}

	var resp struct {
		Status Status `json:"status"`
		Code   int    `json:"code,omitempty"`
	}
	params := url.Values{
		"activation_id": {strconv.FormatInt(act.ID, 10)},
		"status":        {string(a)},
	}
	if err := c.get(ctx, "set_activation_status", params, &resp); err != nil {
		return nil, err
	}
	if !resp.Status.Valid() {
		return nil, errors.New(errors.ErrCodeDecode, "set_activation_status: unknown status %q", resp.Status)
	}

	updated := *act
	updated.Status = resp.Status
	updated.Code = resp.Code
	return &updated, nil
}

// ReadyForCode tells the service the number is in place and an SMS can
// be sent.
func (c *Client) ReadyForCode(ctx context.Context, act *Activation) (*Activation, error) {
	return c.setStatus(ctx, act, actionSendSMS)
}

// RequestAnotherCode asks the service to deliver one more code for an
// activation that already received one.
func (c *Client) RequestAnotherCode(ctx context.Context, act *Activation) (*Activation, error) {
	return c.setStatus(ctx, act, actionSendAnotherCode)
}

// EndActivation finishes an activation after the code was used.
func (c *Client) EndActivation(ctx context.Context, act *Activation) (*Activation, error) {
	return c.setStatus(ctx, act, actionEnd)
}

// MarkAlreadyUsed flags the number as already used, which refunds the
// purchase.
func (c *Client) MarkAlreadyUsed(ctx context.Context, act *Activation) (*Activation, error) {
	return c.setStatus(ctx, act, actionAlreadyUsed)
}

// CancelActivation tries to cancel the activation. When the current
// state no longer allows cancelling, it falls back to marking the number
// as already used, which refunds the purchase.
func (c *Client) CancelActivation(ctx context.Context, act *Activation) (*Activation, error) {
	updated, err := c.setStatus(ctx, act, actionCancel)
	if err == nil {
		return updated, nil
	}
	if _, ok := errors.AsAPIError(err); !ok {
		return nil, err
	}

	c.log.Info("cancel rejected, marking number as already used", "activation_id", act.ID)
	return c.MarkAlreadyUsed(ctx, act)
}

// WaitOptions configures [Client.WaitForCode].
type WaitOptions struct {
	// Interval between status polls. Defaults to [DefaultPollInterval].
	Interval time.Duration

	// MaxWait bounds the whole wait. Defaults to [DefaultMaxWait].
	MaxWait time.Duration
}

// WaitForCode polls the activation status until a verification code
// arrives, returning the updated activation carrying the code.
//
// Returns [ErrNoCode] once MaxWait elapses without a code. Cancelling
// ctx stops the wait between polls and returns ctx.Err(); the client
// remains usable afterwards.
func (c *Client) WaitForCode(ctx context.Context, act *Activation, opts WaitOptions) (*Activation, error) {
	if act == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "activation cannot be nil")
	}

	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	maxWait := opts.MaxWait
	if maxWait <= 0 {
		maxWait = DefaultMaxWait
	}

	deadline := time.Now().Add(maxWait)
	current := act
	for {
		if time.Now().After(deadline) {
			return nil, ErrNoCode
		}

		c.log.Debug("polling activation for code", "activation_id", current.ID)

		updated, err := c.ActivationStatus(ctx, current)
		if err != nil {
			return nil, err
		}
		if updated.HasCode() {
			return updated, nil
		}
		current = updated

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(interval):
		}
	}
}

// validateActivation checks the minimum shape of a purchase response.
func validateActivation(op string, act *Activation) error {
	if act.ID <= 0 {
		return errors.New(errors.ErrCodeDecode, "%s: missing activation_id", op)
	}
	if act.PhoneNumber == "" {
		return errors.New(errors.ErrCodeDecode, "%s: missing phone_number", op)
	}
	if !act.Status.Valid() {
		return errors.New(errors.ErrCodeDecode, "%s: unknown status %q", op, act.Status)
	}
	return nil
}
