package getalts

import (
	"strings"

	"github.com/getalts/getalts-go/pkg/errors"
)

// Service identifies the messaging or web service a number is rented for.
// Values are the two-letter codes used by the remote API.
type Service string

// Supported services.
const (
	ServiceMicrosoft     Service = "ms"
	ServiceGoogle        Service = "go"
	ServiceGMail         Service = "gm"
	ServiceYahoo         Service = "yh"
	ServiceLinkedIn      Service = "ln"
	ServiceUber          Service = "ub"
	ServiceWeChat        Service = "wc"
	ServiceInstagram     Service = "ig"
	ServiceLineMessenger Service = "lm"
	ServiceTelegram      Service = "tg"
	ServiceVK            Service = "vk"
	ServiceYouTube       Service = "yt"
	ServiceFacebook      Service = "fb"
	ServiceSteam         Service = "st"
	ServiceYandex        Service = "ya"
	ServiceWhatsApp      Service = "wp"
	ServiceTinder        Service = "ti"
	ServiceTwitter       Service = "tw"
	ServiceOther         Service = "ot"
)

var serviceNames = map[Service]string{
	ServiceMicrosoft:     "Microsoft",
	ServiceGoogle:        "Google",
	ServiceGMail:         "GMail",
	ServiceYahoo:         "Yahoo",
	ServiceLinkedIn:      "LinkedIn",
	ServiceUber:          "Uber",
	ServiceWeChat:        "WeChat",
	ServiceInstagram:     "Instagram",
	ServiceLineMessenger: "Line Messenger",
	ServiceTelegram:      "Telegram",
	ServiceVK:            "VK",
	ServiceYouTube:       "YouTube",
	ServiceFacebook:      "Facebook",
	ServiceSteam:         "Steam",
	ServiceYandex:        "Yandex",
	ServiceWhatsApp:      "WhatsApp",
	ServiceTinder:        "Tinder",
	ServiceTwitter:       "Twitter",
	ServiceOther:         "Other",
}

// Valid reports whether s is a known service code.
func (s Service) Valid() bool {
	_, ok := serviceNames[s]
	return ok
}

// Name returns the human-readable service name, or the raw code for
// unknown services.
func (s Service) Name() string {
	if name, ok := serviceNames[s]; ok {
		return name
	}
	return string(s)
}

// String returns the API code for the service.
func (s Service) String() string { return string(s) }

// ParseService resolves a service from its API code or human-readable
// name (case-insensitive). Fails with an INVALID_REQUEST error for
// unknown input.
func ParseService(input string) (Service, error) {
	in := strings.TrimSpace(input)
	if svc := Service(strings.ToLower(in)); svc.Valid() {
		return svc, nil
	}
	for svc, name := range serviceNames {
		if strings.EqualFold(name, in) {
			return svc, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidRequest, "unknown service: %q", input)
}

// Services returns all known service codes.
func Services() []Service {
	out := make([]Service, 0, len(serviceNames))
	for svc := range serviceNames {
		out = append(out, svc)
	}
	return out
}

// Country identifies the country a number is issued in.
// Values are the two-letter codes used by the remote API.
type Country string

// Supported countries.
const (
	CountryRussia        Country = "ru"
	CountryUkraine       Country = "ua"
	CountryKazakhstan    Country = "kz"
	CountryChina         Country = "cn"
	CountryPhilippines   Country = "ph"
	CountryMyanmar       Country = "mm"
	CountryIndonesia     Country = "id"
	CountryMalaysia      Country = "my"
	CountryKenya         Country = "ke"
	CountryTanzania      Country = "tz"
	CountryVietnam       Country = "vn"
	CountryKyrgyzstan    Country = "kg"
	CountryUSA           Country = "us"
	CountryIsrael        Country = "il"
	CountryHongKong      Country = "hk"
	CountryPoland        Country = "pl"
	CountryUK            Country = "uk"
	CountryMadagascar    Country = "mg"
	CountryCongo         Country = "cg"
	CountryNigeria       Country = "ng"
	CountryMacau         Country = "mo"
	CountryEgypt         Country = "eg"
	CountryIreland       Country = "ie"
	CountryCambodia      Country = "kh"
	CountryLaos          Country = "la"
	CountryHaiti         Country = "ht"
	CountryIvoryCoast    Country = "ci"
	CountryGambia        Country = "gm"
	CountrySerbia        Country = "rs"
	CountryYemen         Country = "ye"
	CountrySouthAfrica   Country = "za"
	CountryRomania       Country = "ro"
	CountryEstonia       Country = "ee"
	CountryAzerbaijan    Country = "az"
	CountryCanada        Country = "ca"
	CountryMorocco       Country = "ma"
	CountryGhana         Country = "gh"
	CountryArgentina     Country = "ar"
	CountryUzbekistan    Country = "uz"
	CountryCameroon      Country = "cm"
	CountryGermany       Country = "de"
	CountryLithuania     Country = "lt"
	CountryCroatia       Country = "hr"
	CountryIraq          Country = "iq"
	CountryNetherlands   Country = "nl"
	CountryIndia         Country = "in"
)

var countryNames = map[Country]string{
	CountryRussia:      "Russia",
	CountryUkraine:     "Ukraine",
	CountryKazakhstan:  "Kazakhstan",
	CountryChina:       "China",
	CountryPhilippines: "Philippines",
	CountryMyanmar:     "Myanmar",
	CountryIndonesia:   "Indonesia",
	CountryMalaysia:    "Malaysia",
	CountryKenya:       "Kenya",
	CountryTanzania:    "Tanzania",
	CountryVietnam:     "Vietnam",
	CountryKyrgyzstan:  "Kyrgyzstan",
	CountryUSA:         "USA",
	CountryIsrael:      "Israel",
	CountryHongKong:    "Hong Kong",
	CountryPoland:      "Poland",
	CountryUK:          "United Kingdom",
	CountryMadagascar:  "Madagascar",
	CountryCongo:       "Congo",
	CountryNigeria:     "Nigeria",
	CountryMacau:       "Macau",
	CountryEgypt:       "Egypt",
	CountryIreland:     "Ireland",
	CountryCambodia:    "Cambodia",
	CountryLaos:        "Laos",
	CountryHaiti:       "Haiti",
	CountryIvoryCoast:  "Ivory Coast",
	CountryGambia:      "Gambia",
	CountrySerbia:      "Serbia",
	CountryYemen:       "Yemen",
	CountrySouthAfrica: "South Africa",
	CountryRomania:     "Romania",
	CountryEstonia:     "Estonia",
	CountryAzerbaijan:  "Azerbaijan",
	CountryCanada:      "Canada",
	CountryMorocco:     "Morocco",
	CountryGhana:       "Ghana",
	CountryArgentina:   "Argentina",
	CountryUzbekistan:  "Uzbekistan",
	CountryCameroon:    "Cameroon",
	CountryGermany:     "Germany",
	CountryLithuania:   "Lithuania",
	CountryCroatia:     "Croatia",
	CountryIraq:        "Iraq",
	CountryNetherlands: "Netherlands",
	CountryIndia:       "India",
}

// Valid reports whether c is a known country code.
func (c Country) Valid() bool {
	_, ok := countryNames[c]
	return ok
}

// Name returns the human-readable country name, or the raw code for
// unknown countries.
func (c Country) Name() string {
	if name, ok := countryNames[c]; ok {
		return name
	}
	return string(c)
}

// String returns the API code for the country.
func (c Country) String() string { return string(c) }

// ParseCountry resolves a country from its API code or human-readable
// name (case-insensitive). Fails with an INVALID_REQUEST error for
// unknown input.
func ParseCountry(input string) (Country, error) {
	in := strings.TrimSpace(input)
	if c := Country(strings.ToLower(in)); c.Valid() {
		return c, nil
	}
	for c, name := range countryNames {
		if strings.EqualFold(name, in) {
			return c, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidRequest, "unknown country: %q", input)
}

// Countries returns all known country codes.
func Countries() []Country {
	out := make([]Country, 0, len(countryNames))
	for c := range countryNames {
		out = append(out, c)
	}
	return out
}

// Status is the activation state reported by the remote API.
type Status string

// Activation statuses.
const (
	StatusReady            Status = "READY"
	StatusAccessReady      Status = "ACCESS_READY"
	StatusWaitingForCode   Status = "STATUS_WAIT_CODE"
	StatusCancelled        Status = "ACCESS_CANCEL"
	StatusAccessConfirmGet Status = "ACCESS_CONFIRM_GET"
	StatusOK               Status = "STATUS_OK"
)

var knownStatuses = map[Status]bool{
	StatusReady:            true,
	StatusAccessReady:      true,
	StatusWaitingForCode:   true,
	StatusCancelled:        true,
	StatusAccessConfirmGet: true,
	StatusOK:               true,
}

// Valid reports whether s is a known activation status.
func (s Status) Valid() bool { return knownStatuses[s] }

// action is the state transition verb sent to set_activation_status.
// The API expects these lowercased, even though it reports statuses in
// upper case.
type action string

const (
	actionSendSMS         action = "sms_sent"
	actionCancel          action = "cancel"
	actionEnd             action = "end"
	actionSendAnotherCode action = "one_more_code"
	actionAlreadyUsed     action = "already_used"
)

// Activation is a rented number and its activation state.
// It is returned by [Client.BuyNumber] and updated snapshots are
// returned by the status and transition calls; values are never mutated
// in place.
type Activation struct {
	PhoneNumber string `json:"phone_number"`
	ID          int64  `json:"activation_id"`
	Status      Status `json:"status"`
	Code        int    `json:"code,omitempty"` // verification code; 0 until received
}

// HasCode reports whether a verification code has been received.
func (a *Activation) HasCode() bool {
	return a != nil && a.Code != 0
}
