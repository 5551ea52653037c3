package mailer

// BookingEmail данные письма о бронировании
type BookingEmail struct {
	SalonName    string  `json:"salonName"`
	SalonSlug    string  `json:"salonSlug"`
	OwnerEmail   string  `json:"ownerEmail,omitempty"`
	ClientName   string  `json:"clientName"`
	ClientEmail  string  `json:"clientEmail,omitempty"`
	ServiceName  string  `json:"serviceName"`
	StaffName    string  `json:"staffName"`
	Date         string  `json:"date"`      // "2025-10-15"
	StartTime    string  `json:"startTime"` // "10:00"
	Price        float64 `json:"price"`
	CancelURL    string  `json:"cancelUrl,omitempty"`
	OldDate      string  `json:"oldDate,omitempty"`
	OldStartTime string  `json:"oldStartTime,omitempty"`
}
