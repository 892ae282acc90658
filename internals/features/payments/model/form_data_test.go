package model

import (
	"errors"
	"testing"
)

func validRegistrationForm() *RegistrationForm {
	return &RegistrationForm{
		FullName:         "Amina Okello",
		Email:            "amina@example.com",
		RegistrationType: "local",
	}
}

func validSponsorshipForm() *SponsorshipForm {
	return &SponsorshipForm{
		CompanyName:   "Acme Ltd",
		ContactPerson: "John Mwangi",
		Email:         "sponsors@acme.example",
		PackageType:   "gold",
	}
}

func TestFormDataCheck(t *testing.T) {
	cases := []struct {
		name string
		f    FormData
		ok   bool
	}{
		{"registration ok", FormData{Type: PaymentTypeRegistration, Registration: validRegistrationForm()}, true},
		{"sponsorship ok", FormData{Type: PaymentTypeSponsorship, Sponsorship: validSponsorshipForm()}, true},
		{"registration missing variant", FormData{Type: PaymentTypeRegistration}, false},
		{"sponsorship missing variant", FormData{Type: PaymentTypeSponsorship}, false},
		{"both variants set", FormData{
			Type:         PaymentTypeRegistration,
			Registration: validRegistrationForm(),
			Sponsorship:  validSponsorshipForm(),
		}, false},
		{"wrong variant for tag", FormData{Type: PaymentTypeRegistration, Sponsorship: validSponsorshipForm()}, false},
		{"unknown tag", FormData{Type: "donation", Registration: validRegistrationForm()}, false},
	}
	for _, tc := range cases {
		err := tc.f.Check()
		if tc.ok && err != nil {
			t.Errorf("%s: Check() = %v, want nil", tc.name, err)
		}
		if !tc.ok {
			if err == nil {
				t.Errorf("%s: Check() = nil, want error", tc.name)
			} else if !errors.Is(err, ErrFormDataMismatch) {
				t.Errorf("%s: Check() = %v, want ErrFormDataMismatch", tc.name, err)
			}
		}
	}
}

func TestFormDataRoundTrip(t *testing.T) {
	in := &FormData{Type: PaymentTypeSponsorship, Sponsorship: validSponsorshipForm()}

	j, err := in.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	out, err := ParseFormData(j)
	if err != nil {
		t.Fatalf("ParseFormData: %v", err)
	}
	if out.Type != PaymentTypeSponsorship || out.Sponsorship == nil {
		t.Fatalf("round trip lost variant: %+v", out)
	}
	if out.Sponsorship.CompanyName != "Acme Ltd" || out.Sponsorship.PackageType != "gold" {
		t.Errorf("round trip mutated fields: %+v", out.Sponsorship)
	}
}

func TestToJSONRejectsMismatch(t *testing.T) {
	f := &FormData{Type: PaymentTypeRegistration}
	if _, err := f.ToJSON(); err == nil {
		t.Error("ToJSON should refuse an inconsistent snapshot")
	}
}

func TestParseFormDataRejects(t *testing.T) {
	if _, err := ParseFormData(nil); err == nil {
		t.Error("want error for empty snapshot")
	}
	if _, err := ParseFormData([]byte("{not json")); err == nil {
		t.Error("want error for malformed snapshot")
	}
	if _, err := ParseFormData([]byte(`{"type":"registration"}`)); err == nil {
		t.Error("want error for snapshot missing its variant")
	}
}
