package domain

import "time"

// Salon арендатор (tenant) системы бронирования.
// Все дочерние записи (услуги, мастера, расписания, бронирования)
// привязаны к салону через salon_id и запрашиваются только вместе с ним.
type Salon struct {
	ID         int64
	Slug       string // Уникальный идентификатор в публичных URL
	Name       string
	Timezone   string // IANA-зона, например "Europe/Berlin"
	OwnerEmail string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Staff мастер салона, доступный для записи через виджет
type Staff struct {
	ID       int64
	SalonID  int64
	Name     string
	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
