// Package ledger implements the in-memory single-bank ledger: the account
// registry, card-number generation, and the atomic transfer engine. All state
// lives in a Registry guarded by one writer lock; callers only ever see
// copies of accounts and transactions, never internal pointers.
package ledger

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	"cardbank/pkg"
)

// CardNumber is the unique 8-digit identifier of an account.
type CardNumber int64

// Valid card numbers are exactly 8 digits.
const (
	CardNumberMin CardNumber = 10_000_000
	CardNumberMax CardNumber = 99_999_999
)

func (c CardNumber) String() string {
	return strconv.FormatInt(int64(c), 10)
}

// ParseCardNumber parses raw card-number text from the presentation layer.
func ParseCardNumber(s string) (CardNumber, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, pkg.NewAppError(pkg.ErrInvalidInputCode, "card number must be an 8-digit integer", err)
	}
	card := CardNumber(n)
	if card < CardNumberMin || card > CardNumberMax {
		return 0, pkg.NewAppError(pkg.ErrInvalidInputCode, "card number must be an 8-digit integer", nil)
	}
	return card, nil
}

// Account is a single balance-bearing entity. The card number is immutable
// after creation; Balance is in the smallest currency unit and never negative.
type Account struct {
	CardNumber  CardNumber
	FullName    string
	PhoneNumber string
	Balance     int64
}

// Transaction is an immutable record of a completed transfer. The recipient is
// always recorded by its resolved card number, even for phone-addressed
// transfers: phone numbers are not unique and make a poor historical key.
type Transaction struct {
	ID            uuid.UUID
	Timestamp     time.Time
	Amount        int64
	SenderCard    CardNumber
	RecipientCard CardNumber
}

// RecipientSelector identifies a transfer target either by card number or by
// phone number.
type RecipientSelector struct {
	card    CardNumber
	phone   string
	byPhone bool
}

// ByCard selects a transfer recipient by card number.
func ByCard(card CardNumber) RecipientSelector {
	return RecipientSelector{card: card}
}

// ByPhone selects a transfer recipient by phone number.
func ByPhone(phone string) RecipientSelector {
	return RecipientSelector{phone: phone, byPhone: true}
}

// parseAmount parses raw amount text. Initial balances may be zero; transfer
// amounts must be strictly positive. Negative or malformed input is rejected,
// never clamped.
func parseAmount(s string, requirePositive bool) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, pkg.NewAppError(pkg.ErrInvalidAmountCode, "amount must be an integer", pkg.ErrInvalidAmount)
	}
	if n < 0 || (requirePositive && n == 0) {
		return 0, pkg.NewAppError(pkg.ErrInvalidAmountCode, "amount must be positive", pkg.ErrInvalidAmount)
	}
	return n, nil
}
