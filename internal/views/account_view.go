package views

// CreateAccountRequest carries the raw form-field strings from the
// presentation layer. The initial balance stays a string here; parsing and
// validation happen at the ledger boundary.
type CreateAccountRequest struct {
	FullName       string `json:"fullName" binding:"required"`
	PhoneNumber    string `json:"phoneNumber" binding:"required"`
	InitialBalance string `json:"initialBalance" binding:"required"`
}

type AccountResponse struct {
	CardNumber  int64  `json:"cardNumber"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Balance     int64  `json:"balance"`
}

type BalanceResponse struct {
	CardNumber int64 `json:"cardNumber"`
	Balance    int64 `json:"balance"`
}
