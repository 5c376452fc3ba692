package ledger

import (
	"time"

	"github.com/google/uuid"

	"cardbank/pkg"
)

// Engine executes transfers against a Registry. All validation happens before
// any balance mutation: the debit and credit are applied together inside one
// critical section, or not at all, and only a fully applied transfer appends
// a ledger entry. The engine performs no retries; every failure surfaces as a
// typed error for the caller to act on.
type Engine struct {
	reg *Registry
}

// NewEngine creates a transfer engine bound to the registry.
func NewEngine(reg *Registry) *Engine {
	return &Engine{reg: reg}
}

// Transfer moves amountText from the sender to the account selected by
// recipient, and returns the ledger entry recorded for it.
func (e *Engine) Transfer(senderCard CardNumber, recipient RecipientSelector, amountText string) (Transaction, error) {
	amount, err := parseAmount(amountText, true)
	if err != nil {
		return Transaction{}, err
	}

	r := e.reg
	r.mu.Lock()
	defer r.mu.Unlock()

	sender, ok := r.accounts[senderCard]
	if !ok {
		return Transaction{}, pkg.NewAppError(pkg.ErrAccountNotFoundCode, "sender account not found", pkg.ErrAccountNotFound)
	}

	// Resolve the recipient before touching any balance. Debiting first and
	// resolving later can strand the sender's money when the lookup misses.
	var target *Account
	if recipient.byPhone {
		target, ok = r.findByPhoneLocked(recipient.phone)
	} else {
		target, ok = r.accounts[recipient.card]
	}
	if !ok {
		return Transaction{}, pkg.NewAppError(pkg.ErrRecipientNotFoundCode, "recipient not found", pkg.ErrRecipientNotFound)
	}

	if sender.Balance < amount {
		return Transaction{}, pkg.NewAppError(pkg.ErrInsufficientFundsCode, "insufficient balance", pkg.ErrInsufficientFunds)
	}
	if target.CardNumber == sender.CardNumber {
		return Transaction{}, pkg.NewAppError(pkg.ErrInvalidRecipientCode, "sender and recipient are the same account", pkg.ErrInvalidRecipient)
	}

	sender.Balance -= amount
	target.Balance += amount

	tx := Transaction{
		ID:            uuid.New(),
		Timestamp:     e.nextTimestampLocked(),
		Amount:        amount,
		SenderCard:    sender.CardNumber,
		RecipientCard: target.CardNumber,
	}
	r.ledger = append(r.ledger, tx)
	return tx, nil
}

// nextTimestampLocked keeps ledger timestamps non-decreasing in insertion
// order even if the wall clock steps backwards. Caller holds the write lock.
func (e *Engine) nextTimestampLocked() time.Time {
	now := time.Now()
	if n := len(e.reg.ledger); n > 0 {
		if last := e.reg.ledger[n-1].Timestamp; now.Before(last) {
			now = last
		}
	}
	return now
}
