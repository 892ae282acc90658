package constants

import "fmt"

/* =========================================================
   Pricing table

   Amounts are fixed at payment creation and never recomputed;
   the payment row carries its own copy.
========================================================= */

type PricingEntry struct {
	TierID      string   `json:"tier_id"`
	Amount      int64    `json:"amount"`
	Currency    string   `json:"currency"`
	Description string   `json:"description"`
	Benefits    []string `json:"benefits,omitempty"`
}

const DefaultCurrency = "UGX"

var RegistrationTiers = map[string]PricingEntry{
	"local": {
		TierID:      "local",
		Amount:      350000,
		Currency:    DefaultCurrency,
		Description: "Local delegate (Uganda)",
	},
	"east_african": {
		TierID:      "east_african",
		Amount:      450000,
		Currency:    DefaultCurrency,
		Description: "East African Community delegate",
	},
	"international": {
		TierID:      "international",
		Amount:      1100000,
		Currency:    DefaultCurrency,
		Description: "International delegate",
	},
	"student": {
		TierID:      "student",
		Amount:      150000,
		Currency:    DefaultCurrency,
		Description: "Student (valid student ID required at the venue)",
	},
	"virtual": {
		TierID:      "virtual",
		Amount:      100000,
		Currency:    DefaultCurrency,
		Description: "Virtual attendance",
	},
}

var SponsorshipTiers = map[string]PricingEntry{
	"platinum": {
		TierID:      "platinum",
		Amount:      18000000,
		Currency:    DefaultCurrency,
		Description: "Platinum sponsor",
		Benefits: []string{
			"Keynote slot in the opening plenary",
			"Premium exhibition booth",
			"10 complimentary delegate passes",
			"Logo on all conference materials and stage backdrop",
			"Full-page advert in the conference programme",
		},
	},
	"gold": {
		TierID:      "gold",
		Amount:      12000000,
		Currency:    DefaultCurrency,
		Description: "Gold sponsor",
		Benefits: []string{
			"Speaking slot in a breakout session",
			"Exhibition booth",
			"6 complimentary delegate passes",
			"Logo on conference materials",
			"Half-page advert in the conference programme",
		},
	},
	"silver": {
		TierID:      "silver",
		Amount:      7500000,
		Currency:    DefaultCurrency,
		Description: "Silver sponsor",
		Benefits: []string{
			"Exhibition booth",
			"4 complimentary delegate passes",
			"Logo on conference materials",
		},
	},
	"bronze": {
		TierID:      "bronze",
		Amount:      4000000,
		Currency:    DefaultCurrency,
		Description: "Bronze sponsor",
		Benefits: []string{
			"2 complimentary delegate passes",
			"Logo on the conference website",
		},
	},
	"exhibitor": {
		TierID:      "exhibitor",
		Amount:      2500000,
		Currency:    DefaultCurrency,
		Description: "Exhibitor",
		Benefits: []string{
			"Exhibition table",
			"1 complimentary delegate pass",
		},
	},
}

// LookupPrice resolves a tier for a payment type. Unknown tiers surface as
// a 400 at the route layer.
func LookupPrice(paymentType, tierID string) (PricingEntry, error) {
	var table map[string]PricingEntry
	switch paymentType {
	case "registration":
		table = RegistrationTiers
	case "sponsorship":
		table = SponsorshipTiers
	default:
		return PricingEntry{}, fmt.Errorf("unknown payment type %q", paymentType)
	}
	entry, ok := table[tierID]
	if !ok {
		return PricingEntry{}, fmt.Errorf("unknown %s tier %q", paymentType, tierID)
	}
	return entry, nil
}

// FormatAmount renders "UGX 350,000" for API responses and emails.
func FormatAmount(amount int64, currency string) string {
	s := fmt.Sprintf("%d", amount)
	out := make([]byte, 0, len(s)+len(s)/3)
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return currency + " " + string(out)
}
