package constants

import "testing"

func TestLookupPriceRegistration(t *testing.T) {
	cases := []struct {
		tier   string
		amount int64
	}{
		{"local", 350000},
		{"east_african", 450000},
		{"international", 1100000},
		{"student", 150000},
		{"virtual", 100000},
	}
	for _, tc := range cases {
		entry, err := LookupPrice("registration", tc.tier)
		if err != nil {
			t.Fatalf("LookupPrice(registration, %s): %v", tc.tier, err)
		}
		if entry.Amount != tc.amount {
			t.Errorf("%s amount = %d, want %d", tc.tier, entry.Amount, tc.amount)
		}
		if entry.Currency != "UGX" {
			t.Errorf("%s currency = %q, want UGX", tc.tier, entry.Currency)
		}
	}
}

func TestLookupPriceSponsorship(t *testing.T) {
	entry, err := LookupPrice("sponsorship", "platinum")
	if err != nil {
		t.Fatalf("LookupPrice: %v", err)
	}
	if entry.Amount != 18000000 {
		t.Errorf("platinum amount = %d, want 18000000", entry.Amount)
	}
	if len(entry.Benefits) == 0 {
		t.Error("platinum should carry benefits")
	}
}

func TestLookupPriceUnknown(t *testing.T) {
	if _, err := LookupPrice("registration", "vip"); err == nil {
		t.Error("want error for unknown registration tier")
	}
	if _, err := LookupPrice("sponsorship", "local"); err == nil {
		t.Error("registration tiers must not resolve as sponsorship packages")
	}
	if _, err := LookupPrice("donation", "local"); err == nil {
		t.Error("want error for unknown payment type")
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		amount int64
		want   string
	}{
		{350000, "UGX 350,000"},
		{18000000, "UGX 18,000,000"},
		{100, "UGX 100"},
		{1000, "UGX 1,000"},
		{0, "UGX 0"},
	}
	for _, tc := range cases {
		if got := FormatAmount(tc.amount, "UGX"); got != tc.want {
			t.Errorf("FormatAmount(%d) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}
