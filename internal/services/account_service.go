package services

import (
	"context"

	"go.uber.org/zap"

	"cardbank/internal/ledger"
	"cardbank/internal/views"
	"cardbank/pkg"
)

type AccountService interface {
	// CreateAccount creates a new account with a fresh card number.
	CreateAccount(ctx context.Context, traceId string, req views.CreateAccountRequest) (views.AccountResponse, error)
	// DeleteAccount removes an account; its transaction history is retained.
	DeleteAccount(ctx context.Context, traceId string, cardText string) error
	// GetAccount finds an account by card number.
	GetAccount(ctx context.Context, traceId string, cardText string) (views.AccountResponse, error)
	// ListAccounts returns all live accounts in creation order.
	ListAccounts(ctx context.Context, traceId string) ([]views.AccountResponse, error)
	// GetBalance reads a single account balance.
	GetBalance(ctx context.Context, traceId string, cardText string) (views.BalanceResponse, error)
	// GetTransactions returns the ledger entries a card participated in.
	GetTransactions(ctx context.Context, traceId string, cardText string) ([]views.TransactionResponse, error)
}

type AccountServiceImpl struct {
	logger *zap.Logger
	reg    *ledger.Registry
}

func NewAccountService(logger *zap.Logger, reg *ledger.Registry) AccountService {
	return &AccountServiceImpl{logger: logger, reg: reg}
}

func (s *AccountServiceImpl) CreateAccount(ctx context.Context, traceId string, req views.CreateAccountRequest) (views.AccountResponse, error) {
	card, err := s.reg.CreateAccount(req.FullName, req.PhoneNumber, req.InitialBalance)
	if err != nil {
		return views.AccountResponse{}, err
	}
	acct, _ := s.reg.FindByCard(card)
	s.logger.Info("account created",
		zap.String(pkg.TraceId, traceId),
		zap.Int64("card", int64(card)),
		zap.Int64("balance", acct.Balance),
	)
	return toAccountResponse(acct), nil
}

func (s *AccountServiceImpl) DeleteAccount(ctx context.Context, traceId string, cardText string) error {
	card, err := ledger.ParseCardNumber(cardText)
	if err != nil {
		return err
	}
	if err := s.reg.DeleteAccount(card); err != nil {
		return err
	}
	s.logger.Info("account deleted", zap.String(pkg.TraceId, traceId), zap.Int64("card", int64(card)))
	return nil
}

func (s *AccountServiceImpl) GetAccount(ctx context.Context, traceId string, cardText string) (views.AccountResponse, error) {
	card, err := ledger.ParseCardNumber(cardText)
	if err != nil {
		return views.AccountResponse{}, err
	}
	acct, ok := s.reg.FindByCard(card)
	if !ok {
		return views.AccountResponse{}, pkg.NewAppError(pkg.ErrAccountNotFoundCode, "account not found", pkg.ErrAccountNotFound)
	}
	return toAccountResponse(acct), nil
}

func (s *AccountServiceImpl) ListAccounts(ctx context.Context, traceId string) ([]views.AccountResponse, error) {
	accounts := s.reg.Accounts()
	out := make([]views.AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toAccountResponse(a))
	}
	return out, nil
}

func (s *AccountServiceImpl) GetBalance(ctx context.Context, traceId string, cardText string) (views.BalanceResponse, error) {
	card, err := ledger.ParseCardNumber(cardText)
	if err != nil {
		return views.BalanceResponse{}, err
	}
	balance, ok := s.reg.BalanceOf(card)
	if !ok {
		return views.BalanceResponse{}, pkg.NewAppError(pkg.ErrAccountNotFoundCode, "account not found", pkg.ErrAccountNotFound)
	}
	return views.BalanceResponse{CardNumber: int64(card), Balance: balance}, nil
}

func (s *AccountServiceImpl) GetTransactions(ctx context.Context, traceId string, cardText string) ([]views.TransactionResponse, error) {
	card, err := ledger.ParseCardNumber(cardText)
	if err != nil {
		return nil, err
	}
	txs := s.reg.TransactionsOf(card)
	out := make([]views.TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toTransactionResponse(tx))
	}
	return out, nil
}

func toAccountResponse(a ledger.Account) views.AccountResponse {
	return views.AccountResponse{
		CardNumber:  int64(a.CardNumber),
		FullName:    a.FullName,
		PhoneNumber: a.PhoneNumber,
		Balance:     a.Balance,
	}
}

func toTransactionResponse(tx ledger.Transaction) views.TransactionResponse {
	return views.TransactionResponse{
		ID:            tx.ID.String(),
		Timestamp:     tx.Timestamp,
		Amount:        tx.Amount,
		SenderCard:    int64(tx.SenderCard),
		RecipientCard: int64(tx.RecipientCard),
	}
}
