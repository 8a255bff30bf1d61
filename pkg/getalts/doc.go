// Package getalts is a client for the GetAlts phone-activation API.
//
// # Overview
//
// The API rents phone numbers for receiving one-time verification codes.
// A typical flow:
//
//	client, err := getalts.New(getalts.Config{Token: token})
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	act, err := client.BuyNumber(ctx, getalts.ServiceTelegram, getalts.CountryUSA)
//	if err != nil {
//	    return err
//	}
//
//	act, err = client.ReadyForCode(ctx, act)
//	if err != nil {
//	    return err
//	}
//
//	act, err = client.WaitForCode(ctx, act, getalts.WaitOptions{})
//	if err != nil {
//	    return err
//	}
//	// act.Code now holds the verification code
//
// # Error Handling
//
// Every call returns either a decoded value or a typed error from
// [github.com/getalts/getalts-go/pkg/errors]:
//
//   - INVALID_CONFIG / INVALID_TOKEN at construction
//   - INVALID_REQUEST for parameters rejected before transmission
//   - NETWORK_ERROR / TIMEOUT for transport failures (retried when a
//     retry policy is configured)
//   - [errors.APIError] for in-band rejections from the service,
//     carrying the remote code verbatim
//   - [errors.DecodeError] for response shape mismatches, carrying the
//     raw payload
//
// # Concurrency
//
// A Client is safe for concurrent use: calls are stateless and share
// only the HTTP connection pool and the cache backend. Cancelling one
// in-flight call never affects others or the client itself.
//
// # Caching
//
// Inventory and price lookups flow through a pluggable
// [github.com/getalts/getalts-go/pkg/cache] backend with a configurable
// TTL. Purchases and activation state are never cached.
package getalts
