package cancel_hold

import (
	"context"
	"fmt"
)

// UseCase use case отмены hold'а клиентом.
// Операция идемпотентна: отмена уже удалённого или истёкшего hold'а,
// как и отмена с чужим токеном, выглядит одинаково успешной.
type UseCase struct {
	holdRepo HoldRepository
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(holdRepo HoldRepository, logger Logger) *UseCase {
	return &UseCase{
		holdRepo: holdRepo,
		logger:   logger,
	}
}

// Request модель запроса на отмену hold'а
type Request struct {
	HoldID       int64  // ID hold'а
	SessionToken string // Токен, выданный при создании
}

// Execute выполняет use case отмены hold'а
func (uc *UseCase) Execute(ctx context.Context, req *Request) error {
	uc.logger.Info("CancelHold: cancelling hold id=%d", req.HoldID)

	if req.HoldID <= 0 {
		return fmt.Errorf("%w: holdID must be positive", ErrInvalidInput)
	}
	if req.SessionToken == "" {
		return fmt.Errorf("%w: session token is required", ErrInvalidInput)
	}

	if err := uc.holdRepo.DeleteByIDAndToken(ctx, req.HoldID, req.SessionToken); err != nil {
		uc.logger.Error("CancelHold: repository error for hold id=%d: %v", req.HoldID, err)
		return fmt.Errorf("%w: failed to delete hold: %v", ErrInternal, err)
	}

	uc.logger.Info("CancelHold: hold id=%d is released", req.HoldID)
	return nil
}
