package cancel_hold

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
	cancelHold "github.com/m04kA/Salon-BookingService/internal/usecase/cancel_hold"
)

const (
	msgInvalidHoldID      = "некорректный ID резервации"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingToken       = "session token обязателен"
)

type Handler struct {
	useCase CancelHoldUseCase
	logger  Logger
}

func NewHandler(useCase CancelHoldUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// CancelHoldRequest HTTP модель запроса на отмену резервации
type CancelHoldRequest struct {
	SessionToken string `json:"sessionToken"`
}

// Handle POST /api/v1/salons/{salonSlug}/holds/{holdId}/cancel
// Операция идемпотентна: повторная отмена возвращает тот же 204
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	holdID, err := strconv.ParseInt(vars["holdId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /salons/{slug}/holds/{id}/cancel - Invalid hold ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHoldID)
		return
	}

	var req CancelHoldRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /salons/{slug}/holds/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.useCase.Execute(r.Context(), &cancelHold.Request{
		HoldID:       holdID,
		SessionToken: req.SessionToken,
	})
	if err != nil {
		if errors.Is(err, cancelHold.ErrInvalidInput) {
			h.logger.Warn("POST /salons/{slug}/holds/{id}/cancel - Invalid input: hold_id=%d, error=%v", holdID, err)
			handlers.RespondBadRequest(w, msgMissingToken)
			return
		}
		h.logger.Error("POST /salons/{slug}/holds/{id}/cancel - Failed to cancel hold: hold_id=%d, error=%v", holdID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /salons/{slug}/holds/{id}/cancel - Hold released: hold_id=%d", holdID)
	handlers.RespondNoContent(w)
}
