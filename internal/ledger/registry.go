package ledger

import (
	"sync"

	"cardbank/pkg"
)

// Registry owns all accounts of the bank and the append-only transaction
// ledger. A single RWMutex serializes every mutation (create, delete,
// transfer) so cross-account operations are atomic and linearizable; reads
// run under the read lock and return copies, so no caller can observe or
// mutate internal state directly.
type Registry struct {
	mu       sync.RWMutex
	accounts map[CardNumber]*Account
	order    []CardNumber // insertion order; phone-lookup ties go to the earliest-created account
	ledger   []Transaction
	gen      *cardGenerator
}

// NewRegistry creates an empty in-memory registry.
func NewRegistry() *Registry {
	return &Registry{
		accounts: make(map[CardNumber]*Account),
		gen:      newCardGenerator(),
	}
}

// CreateAccount parses the initial balance, assigns a fresh unique card
// number and inserts the new account. The balance text must parse as a
// non-negative integer.
func (r *Registry) CreateAccount(fullName, phoneNumber, initialBalanceText string) (CardNumber, error) {
	balance, err := parseAmount(initialBalanceText, false)
	if err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	card, err := r.gen.generate(r.accounts)
	if err != nil {
		return 0, err
	}
	r.accounts[card] = &Account{
		CardNumber:  card,
		FullName:    fullName,
		PhoneNumber: phoneNumber,
		Balance:     balance,
	}
	r.order = append(r.order, card)
	return card, nil
}

// DeleteAccount removes the account. Past transactions referencing the card
// stay in the ledger; deletion never rewrites history.
func (r *Registry) DeleteAccount(card CardNumber) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[card]; !ok {
		return pkg.NewAppError(pkg.ErrAccountNotFoundCode, "account not found", pkg.ErrAccountNotFound)
	}
	delete(r.accounts, card)
	for i, c := range r.order {
		if c == card {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// FindByCard returns a snapshot of the account, if it exists.
func (r *Registry) FindByCard(card CardNumber) (Account, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.accounts[card]
	if !ok {
		return Account{}, false
	}
	return *a, true
}

// FindByPhone returns a snapshot of the earliest-created account with the
// given phone number. Phone numbers are not unique.
func (r *Registry) FindByPhone(phone string) (Account, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.findByPhoneLocked(phone)
	if !ok {
		return Account{}, false
	}
	return *a, true
}

// findByPhoneLocked walks accounts in insertion order. Caller holds the lock.
func (r *Registry) findByPhoneLocked(phone string) (*Account, bool) {
	for _, card := range r.order {
		if a := r.accounts[card]; a.PhoneNumber == phone {
			return a, true
		}
	}
	return nil, false
}

// BalanceOf is a convenience read of a single account balance.
func (r *Registry) BalanceOf(card CardNumber) (int64, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.accounts[card]
	if !ok {
		return 0, false
	}
	return a.Balance, true
}

// Accounts returns snapshots of all live accounts in insertion order.
func (r *Registry) Accounts() []Account {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Account, 0, len(r.order))
	for _, card := range r.order {
		out = append(out, *r.accounts[card])
	}
	return out
}

// Ledger returns a copy of the full transaction ledger in insertion
// (chronological) order.
func (r *Registry) Ledger() []Transaction {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Transaction, len(r.ledger))
	copy(out, r.ledger)
	return out
}

// TransactionsOf returns every ledger entry a card participated in, as sender
// or recipient. Deleted accounts keep their history here.
func (r *Registry) TransactionsOf(card CardNumber) []Transaction {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Transaction, 0)
	for _, tx := range r.ledger {
		if tx.SenderCard == card || tx.RecipientCard == card {
			out = append(out, tx)
		}
	}
	return out
}
