package getalts_test

import (
	"context"
	"fmt"
	"time"

	"github.com/getalts/getalts-go/pkg/errors"
	"github.com/getalts/getalts-go/pkg/getalts"
	"github.com/getalts/getalts-go/pkg/httputil"
)

func Example() {
	client, err := getalts.New(getalts.Config{
		Token: "your-api-token",
		Retry: httputil.Policy{Attempts: 3, Delay: time.Second},
	})
	if err != nil {
		fmt.Println("config:", err)
		return
	}
	defer client.Close()

	ctx := context.Background()

	act, err := client.BuyNumber(ctx, getalts.ServiceTelegram, getalts.CountryRussia)
	if err != nil {
		if apiErr, ok := errors.AsAPIError(err); ok {
			fmt.Println("api refused:", apiErr.RemoteCode)
		}
		return
	}

	if _, err := client.ReadyForCode(ctx, act); err != nil {
		return
	}

	got, err := client.WaitForCode(ctx, act, getalts.WaitOptions{})
	if err != nil {
		// refund the purchase when no code arrives
		client.CancelActivation(ctx, act)
		return
	}

	fmt.Println("code:", got.Code)
	client.EndActivation(ctx, got)
}
