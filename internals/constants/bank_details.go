package constants

// BankDetails is the manual-payment fallback surfaced verbatim whenever the
// gateway path cannot be completed. Keep in sync with the static payment
// instructions page on the website.
type BankDetails struct {
	AccountName       string `json:"account_name"`
	AccountNumber     string `json:"account_number"`
	BankName          string `json:"bank_name"`
	Branch            string `json:"branch"`
	SwiftCode         string `json:"swift_code"`
	CorrespondentBank string `json:"correspondent_bank"`
	Currency          string `json:"currency"`
}

var TransferBankDetails = BankDetails{
	AccountName:       "Conference Secretariat Ltd",
	AccountNumber:     "9030012345671",
	BankName:          "Stanbic Bank Uganda",
	Branch:            "Garden City, Kampala",
	SwiftCode:         "SBICUGKX",
	CorrespondentBank: "Citibank N.A. New York",
	Currency:          DefaultCurrency,
}
