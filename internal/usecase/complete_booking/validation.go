package complete_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/Salon-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SalonSlug == "" {
		return fmt.Errorf("%w: salon slug is required", ErrInvalidInput)
	}

	if req.HoldID <= 0 {
		return fmt.Errorf("%w: holdID must be positive", ErrInvalidInput)
	}

	if req.SessionToken == "" {
		return fmt.Errorf("%w: session token is required", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.ClientName)
	if name == "" {
		return fmt.Errorf("%w: client name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxClientNameLength {
		return fmt.Errorf("%w: client name is too long", ErrInvalidInput)
	}

	phone := strings.TrimSpace(req.ClientPhone)
	if phone == "" {
		return fmt.Errorf("%w: client phone is required", ErrInvalidInput)
	}
	if len(phone) > domain.MaxClientPhoneLength {
		return fmt.Errorf("%w: client phone is too long", ErrInvalidInput)
	}

	if req.ClientEmail != nil && !strings.Contains(*req.ClientEmail, "@") {
		return fmt.Errorf("%w: invalid client email", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are too long", ErrInvalidInput)
	}

	return nil
}
