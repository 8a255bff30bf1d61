package getalts

import (
	"testing"

	"github.com/getalts/getalts-go/pkg/errors"
)

func TestParseService(t *testing.T) {
	tests := []struct {
		input   string
		want    Service
		wantErr bool
	}{
		{"tg", ServiceTelegram, false},
		{"TG", ServiceTelegram, false},
		{"Telegram", ServiceTelegram, false},
		{"telegram", ServiceTelegram, false},
		{"  wp  ", ServiceWhatsApp, false},
		{"WhatsApp", ServiceWhatsApp, false},
		{"ig", ServiceInstagram, false},
		{"", "", true},
		{"nope", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseService(tt.input)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidRequest) {
					t.Errorf("ParseService(%q) error = %v, want INVALID_REQUEST", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseService(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseService(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseCountry(t *testing.T) {
	tests := []struct {
		input   string
		want    Country
		wantErr bool
	}{
		{"ru", CountryRussia, false},
		{"RU", CountryRussia, false},
		{"Russia", CountryRussia, false},
		{"ivory coast", CountryIvoryCoast, false},
		{"us", CountryUSA, false},
		{"", "", true},
		{"atlantis", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCountry(tt.input)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidRequest) {
					t.Errorf("ParseCountry(%q) error = %v, want INVALID_REQUEST", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCountry(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseCountry(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestServiceName(t *testing.T) {
	if got := ServiceTelegram.Name(); got != "Telegram" {
		t.Errorf("Name() = %q, want Telegram", got)
	}
	if got := Service("zz").Name(); got != "zz" {
		t.Errorf("unknown Name() = %q, want raw code", got)
	}
}

func TestEnumCatalogs(t *testing.T) {
	for _, svc := range Services() {
		if !svc.Valid() {
			t.Errorf("Services() returned invalid entry %q", svc)
		}
	}
	for _, c := range Countries() {
		if !c.Valid() {
			t.Errorf("Countries() returned invalid entry %q", c)
		}
	}
	if len(Services()) == 0 || len(Countries()) == 0 {
		t.Fatal("empty enum catalog")
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusReady, StatusAccessReady, StatusWaitingForCode, StatusCancelled, StatusAccessConfirmGet, StatusOK} {
		if !s.Valid() {
			t.Errorf("Status(%q).Valid() = false", s)
		}
	}
	if Status("NOPE").Valid() {
		t.Error(`Status("NOPE").Valid() = true`)
	}
}

func TestActivationHasCode(t *testing.T) {
	var nilAct *Activation
	if nilAct.HasCode() {
		t.Error("nil activation reports a code")
	}
	if (&Activation{}).HasCode() {
		t.Error("zero activation reports a code")
	}
	if !(&Activation{Code: 1234}).HasCode() {
		t.Error("activation with code reports none")
	}
}
