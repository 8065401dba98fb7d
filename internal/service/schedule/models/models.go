package models

import (
	"time"

	"github.com/m04kA/MST-BookingService/internal/domain"
)

// Request модели

// TimeWindow пара время начала и конца в формате HH:MM
type TimeWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// UpsertDayScheduleRequest запрос на создание или замену расписания на дату
// Запись перезаписывает день целиком
type UpsertDayScheduleRequest struct {
	RequesterID int64        `json:"requesterId"`
	MasterID    int64        `json:"masterId"`
	Date        time.Time    `json:"date"`
	WorkHours   TimeWindow   `json:"workHours"`
	Breaks      []TimeWindow `json:"breaks,omitempty"`
}

// ToDomain конвертирует request в domain модель с валидацией времени
func (r *UpsertDayScheduleRequest) ToDomain() (*domain.DaySchedule, error) {
	workHours, err := domain.NewWorkHours(r.WorkHours.Start, r.WorkHours.End)
	if err != nil {
		return nil, err
	}

	breaks := make([]domain.Break, len(r.Breaks))
	for i, br := range r.Breaks {
		breaks[i], err = domain.NewBreak(br.Start, br.End)
		if err != nil {
			return nil, err
		}
	}

	schedule := &domain.DaySchedule{
		MasterID:  r.MasterID,
		Date:      r.Date,
		WorkHours: workHours,
		Breaks:    breaks,
	}

	if err := schedule.Validate(); err != nil {
		return nil, err
	}

	return schedule, nil
}

// Response модели

// DayScheduleResponse расписание мастера на одну дату
type DayScheduleResponse struct {
	MasterID  int64        `json:"masterId"`
	Date      string       `json:"date"` // "2026-03-15"
	WorkHours TimeWindow   `json:"workHours"`
	Breaks    []TimeWindow `json:"breaks"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// MonthScheduleResponse расписания мастера за календарный месяц
// Дни без записей означают нерабочие дни и в список не попадают
type MonthScheduleResponse struct {
	MasterID int64                 `json:"masterId"`
	Month    string                `json:"month"` // "2026-03"
	Days     []DayScheduleResponse `json:"days"`
}

// FromDomainSchedule конвертирует domain модель в DTO
func FromDomainSchedule(s *domain.DaySchedule) *DayScheduleResponse {
	if s == nil {
		return nil
	}

	breaks := make([]TimeWindow, len(s.Breaks))
	for i, br := range s.Breaks {
		breaks[i] = TimeWindow{Start: br.Start.String(), End: br.End.String()}
	}

	return &DayScheduleResponse{
		MasterID: s.MasterID,
		Date:     s.Date.Format(domain.DateFormat),
		WorkHours: TimeWindow{
			Start: s.WorkHours.Start.String(),
			End:   s.WorkHours.End.String(),
		},
		Breaks:    breaks,
		UpdatedAt: s.UpdatedAt,
	}
}

// FromDomainScheduleList конвертирует список domain моделей в DTO месяца
func FromDomainScheduleList(masterID int64, month time.Time, schedules []*domain.DaySchedule) *MonthScheduleResponse {
	resp := &MonthScheduleResponse{
		MasterID: masterID,
		Month:    month.Format(domain.MonthFormat),
		Days:     make([]DayScheduleResponse, 0, len(schedules)),
	}

	for _, s := range schedules {
		if day := FromDomainSchedule(s); day != nil {
			resp.Days = append(resp.Days, *day)
		}
	}

	return resp
}
