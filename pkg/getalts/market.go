package getalts

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/getalts/getalts-go/pkg/errors"
)

// Balance returns the account balance.
// Always fetched fresh: the balance moves with every purchase, so it is
// never served from cache.
func (c *Client) Balance(ctx context.Context) (float64, error) {
	var resp struct {
		Balance float64 `json:"balance"`
	}
	if err := c.get(ctx, "get_balance", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Balance, nil
}

// AvailableNumbers returns how many numbers are in stock per service for
// the given country. Served from cache when fresh; pass refresh to force
// an API call.
func (c *Client) AvailableNumbers(ctx context.Context, country Country, refresh bool) (map[Service]int, error) {
	if !country.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "unknown country: %q", country)
	}

	var raw map[string]int
	key := "amount:" + string(country)
	err := c.cached(ctx, "get_amount", key, refresh, &raw, func() error {
		return c.get(ctx, "get_amount", url.Values{"country": {string(country)}}, &raw)
	})
	if err != nil {
		return nil, err
	}
	return toServiceMap("get_amount", raw)
}

// PricesByCountry returns the price per service for the given country.
// Served from cache when fresh; pass refresh to force an API call.
func (c *Client) PricesByCountry(ctx context.Context, country Country, refresh bool) (map[Service]float64, error) {
	if !country.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "unknown country: %q", country)
	}

	var raw map[string]float64
	key := "prices:country:" + string(country)
	err := c.cached(ctx, "get_prices_by_country", key, refresh, &raw, func() error {
		return c.get(ctx, "get_prices_by_country", url.Values{"country": {string(country)}}, &raw)
	})
	if err != nil {
		return nil, err
	}
	return toServiceMap("get_prices_by_country", raw)
}

// PricesByService returns the price per country for the given service.
// Served from cache when fresh; pass refresh to force an API call.
func (c *Client) PricesByService(ctx context.Context, service Service, refresh bool) (map[Country]float64, error) {
	if !service.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "unknown service: %q", service)
	}

	var raw map[string]float64
	key := "prices:service:" + string(service)
	err := c.cached(ctx, "get_prices_by_service", key, refresh, &raw, func() error {
		return c.get(ctx, "get_prices_by_service", url.Values{"service": {string(service)}}, &raw)
	})
	if err != nil {
		return nil, err
	}
	return toCountryMap("get_prices_by_service", raw)
}

// toServiceMap converts raw API keys into Service keys, failing with a
// DecodeError when the API reports a code this client doesn't know.
func toServiceMap[T any](op string, raw map[string]T) (map[Service]T, error) {
	out := make(map[Service]T, len(raw))
	for k, v := range raw {
		svc := Service(k)
		if !svc.Valid() {
			return nil, decodeMapError(op, raw, fmt.Errorf("unknown service code %q", k))
		}
		out[svc] = v
	}
	return out, nil
}

// toCountryMap converts raw API keys into Country keys, failing with a
// DecodeError when the API reports a code this client doesn't know.
func toCountryMap[T any](op string, raw map[string]T) (map[Country]T, error) {
	out := make(map[Country]T, len(raw))
	for k, v := range raw {
		country := Country(k)
		if !country.Valid() {
			return nil, decodeMapError(op, raw, fmt.Errorf("unknown country code %q", k))
		}
		out[country] = v
	}
	return out, nil
}

func decodeMapError[T any](op string, raw map[string]T, cause error) error {
	payload, _ := json.Marshal(raw)
	return &errors.DecodeError{Operation: op, Raw: payload, Cause: cause}
}
