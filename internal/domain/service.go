package domain

import "time"

// Service услуга мастера
// Для движка бронирования услуга неизменяема: читается, никогда не редактируется
type Service struct {
	ID              int64
	MasterID        int64
	Name            string
	DurationMinutes int
	Price           float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasValidDuration проверяет, что длительность услуги в допустимых пределах
func (s *Service) HasValidDuration() bool {
	return s.DurationMinutes >= MinServiceDuration && s.DurationMinutes <= MaxServiceDuration
}
