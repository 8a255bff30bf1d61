package getalts

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/getalts/getalts-go/pkg/errors"
)

func TestBuyNumber(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/buy_number" {
			http.NotFound(w, r)
			return
		}
		q := r.URL.Query()
		if got := q.Get("service"); got != "tg" {
			t.Errorf("service = %q, want %q", got, "tg")
		}
		if got := q.Get("country"); got != "ru" {
			t.Errorf("country = %q, want %q", got, "ru")
		}
		json.NewEncoder(w).Encode(map[string]any{
			"phone_number":  "79001234567",
			"activation_id": 101,
			"status":        "READY",
		})
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	act, err := c.BuyNumber(context.Background(), ServiceTelegram, CountryRussia)
	if err != nil {
		t.Fatalf("BuyNumber() error: %v", err)
	}
	if act.ID != 101 {
		t.Errorf("ID = %d, want 101", act.ID)
	}
	if act.PhoneNumber != "79001234567" {
		t.Errorf("PhoneNumber = %q, want 79001234567", act.PhoneNumber)
	}
	if act.Status != StatusReady {
		t.Errorf("Status = %q, want %q", act.Status, StatusReady)
	}
	if act.HasCode() {
		t.Error("HasCode() = true for a fresh activation")
	}
}

func TestBuyNumber_InvalidInput(t *testing.T) {
	c := testClient(t, "http://unused.invalid")

	if _, err := c.BuyNumber(context.Background(), Service("xx"), CountryRussia); !errors.Is(err, errors.ErrCodeInvalidRequest) {
		t.Errorf("unknown service: error = %v, want INVALID_REQUEST", err)
	}
	if _, err := c.BuyNumber(context.Background(), ServiceTelegram, Country("xx")); !errors.Is(err, errors.ErrCodeInvalidRequest) {
		t.Errorf("unknown country: error = %v, want INVALID_REQUEST", err)
	}
}

func TestBuyNumber_IncompleteResponse(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing id", map[string]any{"phone_number": "7900", "status": "READY"}},
		{"missing phone", map[string]any{"activation_id": 5, "status": "READY"}},
		{"bad status", map[string]any{"phone_number": "7900", "activation_id": 5, "status": "WAT"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(tt.body)
			}))
			defer server.Close()

			c := testClient(t, server.URL)

			_, err := c.BuyNumber(context.Background(), ServiceTelegram, CountryRussia)
			if !errors.Is(err, errors.ErrCodeDecode) {
				t.Errorf("BuyNumber() error = %v, want DECODE_ERROR", err)
			}
		})
	}
}

func TestActivationStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("activation_id"); got != "101" {
			t.Errorf("activation_id = %q, want 101", got)
		}
		json.NewEncoder(w).Encode(map[string]any{"status": "STATUS_OK", "code": 4242})
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	original := &Activation{PhoneNumber: "7900", ID: 101, Status: StatusWaitingForCode}
	updated, err := c.ActivationStatus(context.Background(), original)
	if err != nil {
		t.Fatalf("ActivationStatus() error: %v", err)
	}
	if updated.Status != StatusOK || updated.Code != 4242 {
		t.Errorf("updated = %+v, want STATUS_OK with code 4242", updated)
	}
	if !updated.HasCode() {
		t.Error("HasCode() = false after receiving a code")
	}
	// snapshots: the input activation must not be mutated
	if original.Status != StatusWaitingForCode || original.Code != 0 {
		t.Errorf("input activation mutated: %+v", original)
	}
}

func TestActivationStatus_InvalidID(t *testing.T) {
	c := testClient(t, "http://unused.invalid")

	if _, err := c.ActivationStatus(context.Background(), nil); !errors.Is(err, errors.ErrCodeInvalidRequest) {
		t.Errorf("nil activation: error = %v, want INVALID_REQUEST", err)
	}
	if _, err := c.ActivationStatus(context.Background(), &Activation{ID: 0}); !errors.Is(err, errors.ErrCodeInvalidRequest) {
		t.Errorf("zero id: error = %v, want INVALID_REQUEST", err)
	}
}

func TestTransitions_SendLowercaseActions(t *testing.T) {
	var lastAction atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastAction.Store(r.URL.Query().Get("status"))
		json.NewEncoder(w).Encode(map[string]any{"status": "ACCESS_READY"})
	}))
	defer server.Close()

	c := testClient(t, server.URL)
	act := &Activation{PhoneNumber: "7900", ID: 101, Status: StatusReady}

	tests := []struct {
		name   string
		call   func() (*Activation, error)
		action string
	}{
		{"ReadyForCode", func() (*Activation, error) { return c.ReadyForCode(context.Background(), act) }, "sms_sent"},
		{"RequestAnotherCode", func() (*Activation, error) { return c.RequestAnotherCode(context.Background(), act) }, "one_more_code"},
		{"EndActivation", func() (*Activation, error) { return c.EndActivation(context.Background(), act) }, "end"},
		{"MarkAlreadyUsed", func() (*Activation, error) { return c.MarkAlreadyUsed(context.Background(), act) }, "already_used"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated, err := tt.call()
			if err != nil {
				t.Fatalf("%s error: %v", tt.name, err)
			}
			if got := lastAction.Load(); got != tt.action {
				t.Errorf("status param = %q, want %q", got, tt.action)
			}
			if updated.Status != StatusAccessReady {
				t.Errorf("Status = %q, want ACCESS_READY", updated.Status)
			}
		})
	}
}

func TestCancelActivation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("status"); got != "cancel" {
			t.Errorf("status param = %q, want cancel", got)
		}
		json.NewEncoder(w).Encode(map[string]any{"status": "ACCESS_CANCEL"})
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	updated, err := c.CancelActivation(context.Background(), &Activation{PhoneNumber: "7900", ID: 101, Status: StatusReady})
	if err != nil {
		t.Fatalf("CancelActivation() error: %v", err)
	}
	if updated.Status != StatusCancelled {
		t.Errorf("Status = %q, want ACCESS_CANCEL", updated.Status)
	}
}

func TestCancelActivation_FallsBackToAlreadyUsed(t *testing.T) {
	var actions []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a := r.URL.Query().Get("status")
		actions = append(actions, a)
		if a == "cancel" {
			json.NewEncoder(w).Encode(map[string]string{"error": "cannot_cancel"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"status": "ACCESS_CANCEL"})
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	updated, err := c.CancelActivation(context.Background(), &Activation{PhoneNumber: "7900", ID: 101, Status: StatusWaitingForCode})
	if err != nil {
		t.Fatalf("CancelActivation() error: %v", err)
	}
	if updated.Status != StatusCancelled {
		t.Errorf("Status = %q, want ACCESS_CANCEL", updated.Status)
	}
	want := []string{"cancel", "already_used"}
	if len(actions) != 2 || actions[0] != want[0] || actions[1] != want[1] {
		t.Errorf("actions = %v, want %v", actions, want)
	}
}

func TestCancelActivation_TransportErrorNotMasked(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	c := testClient(t, server.URL, func(cfg *Config) {
		cfg.Timeout = 50 * time.Millisecond
	})

	_, err := c.CancelActivation(context.Background(), &Activation{PhoneNumber: "7900", ID: 101, Status: StatusReady})
	if !errors.Is(err, errors.ErrCodeTimeout) {
		t.Fatalf("CancelActivation() error = %v, want TIMEOUT (no already_used fallback)", err)
	}
}

func TestWaitForCode(t *testing.T) {
	var polls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if polls.Add(1) < 3 {
			json.NewEncoder(w).Encode(map[string]any{"status": "STATUS_WAIT_CODE"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"status": "STATUS_OK", "code": 9999})
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	act := &Activation{PhoneNumber: "7900", ID: 101, Status: StatusReady}
	updated, err := c.WaitForCode(context.Background(), act, WaitOptions{
		Interval: 5 * time.Millisecond,
		MaxWait:  time.Second,
	})
	if err != nil {
		t.Fatalf("WaitForCode() error: %v", err)
	}
	if updated.Code != 9999 {
		t.Errorf("Code = %d, want 9999", updated.Code)
	}
	if got := polls.Load(); got != 3 {
		t.Errorf("backend observed %d polls, want 3", got)
	}
}

func TestWaitForCode_NoCodeBeforeDeadline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"status": "STATUS_WAIT_CODE"})
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	act := &Activation{PhoneNumber: "7900", ID: 101, Status: StatusReady}
	_, err := c.WaitForCode(context.Background(), act, WaitOptions{
		Interval: 5 * time.Millisecond,
		MaxWait:  30 * time.Millisecond,
	})
	if !stderrors.Is(err, ErrNoCode) {
		t.Fatalf("WaitForCode() error = %v, want ErrNoCode", err)
	}
	if !errors.Is(err, errors.ErrCodeNoCode) {
		t.Errorf("error code = %v, want NO_CODE_RECEIVED", errors.GetCode(err))
	}
}

func TestWaitForCode_Cancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"status": "STATUS_WAIT_CODE"})
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(15 * time.Millisecond)
		cancel()
	}()

	act := &Activation{PhoneNumber: "7900", ID: 101, Status: StatusReady}
	_, err := c.WaitForCode(ctx, act, WaitOptions{Interval: 5 * time.Millisecond, MaxWait: time.Minute})
	if !stderrors.Is(err, context.Canceled) {
		t.Fatalf("WaitForCode() error = %v, want context.Canceled", err)
	}

	// the client survives the cancelled wait
	if _, err := c.ActivationStatus(context.Background(), act); err != nil {
		t.Fatalf("ActivationStatus() after cancel error: %v", err)
	}
}
