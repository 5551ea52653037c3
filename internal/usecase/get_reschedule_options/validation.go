package get_reschedule_options

import "fmt"

// validateRequest проверяет корректность входных данных
func validateRequest(req *Request) error {
	if req.SalonSlug == "" {
		return fmt.Errorf("%w: salon slug is required", ErrInvalidInput)
	}
	if req.Token == "" {
		return fmt.Errorf("%w: reschedule token is required", ErrInvalidInput)
	}
	return nil
}
