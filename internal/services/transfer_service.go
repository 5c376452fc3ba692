package services

import (
	"context"

	"go.uber.org/zap"

	"cardbank/internal/ledger"
	"cardbank/internal/views"
	"cardbank/pkg"
	middleware "cardbank/pkg/middlewares"
)

type TransferService interface {
	// Transfer moves money between two accounts and returns the ledger entry.
	Transfer(ctx context.Context, traceId string, req views.TransferRequest) (views.TransactionResponse, error)
	// ListTransfers returns the full transaction ledger in chronological order.
	ListTransfers(ctx context.Context, traceId string) ([]views.TransactionResponse, error)
}

type TransferServiceImpl struct {
	logger *zap.Logger
	reg    *ledger.Registry
	engine *ledger.Engine
}

func NewTransferService(logger *zap.Logger, reg *ledger.Registry, engine *ledger.Engine) TransferService {
	return &TransferServiceImpl{logger: logger, reg: reg, engine: engine}
}

func (s *TransferServiceImpl) Transfer(ctx context.Context, traceId string, req views.TransferRequest) (views.TransactionResponse, error) {
	senderCard, err := ledger.ParseCardNumber(req.SenderCard)
	if err != nil {
		return views.TransactionResponse{}, err
	}
	recipient, err := resolveSelector(req)
	if err != nil {
		return views.TransactionResponse{}, err
	}

	tx, err := s.engine.Transfer(senderCard, recipient, req.Amount)
	if err != nil {
		middleware.CountTransfer(pkg.CodeOf(err).Code)
		return views.TransactionResponse{}, err
	}
	middleware.CountTransfer("success")

	s.logger.Info("transfer completed",
		zap.String(pkg.TraceId, traceId),
		zap.String("id", tx.ID.String()),
		zap.Int64("amount", tx.Amount),
		zap.Int64("sender", int64(tx.SenderCard)),
		zap.Int64("recipient", int64(tx.RecipientCard)),
	)
	return toTransactionResponse(tx), nil
}

func (s *TransferServiceImpl) ListTransfers(ctx context.Context, traceId string) ([]views.TransactionResponse, error) {
	txs := s.reg.Ledger()
	out := make([]views.TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toTransactionResponse(tx))
	}
	return out, nil
}

// resolveSelector builds the recipient selector from the request. Exactly one
// of recipientCard and recipientPhone must be set.
func resolveSelector(req views.TransferRequest) (ledger.RecipientSelector, error) {
	hasCard := req.RecipientCard != ""
	hasPhone := req.RecipientPhone != ""
	switch {
	case hasCard && hasPhone:
		return ledger.RecipientSelector{}, pkg.NewAppError(pkg.ErrInvalidInputCode, "recipientCard and recipientPhone are mutually exclusive", nil)
	case hasCard:
		card, err := ledger.ParseCardNumber(req.RecipientCard)
		if err != nil {
			return ledger.RecipientSelector{}, err
		}
		return ledger.ByCard(card), nil
	case hasPhone:
		return ledger.ByPhone(req.RecipientPhone), nil
	default:
		return ledger.RecipientSelector{}, pkg.NewAppError(pkg.ErrInvalidInputCode, "either recipientCard or recipientPhone is required", nil)
	}
}
