package models

import (
	"time"

	"github.com/dlazarev-dev/TPS-SchedulingService/internal/domain"
	"github.com/dlazarev-dev/TPS-SchedulingService/pkg/types"
)

// Request модели

// SetSlotRequest запрос на установку одного слота
type SetSlotRequest struct {
	AdminID   int64
	Date      time.Time
	DayOfWeek string // если пусто, выводится из даты
	Time      types.TimeLabel
	SlotType  domain.SlotType
	Available bool
}

// SetSlotsBulkRequest запрос на массовую установку слотов дня
type SetSlotsBulkRequest struct {
	AdminID   int64
	Date      time.Time
	DayOfWeek string
	Times     []types.TimeLabel
	SlotType  domain.SlotType
	Available bool
}

// CopyDayToWeekRequest запрос на копирование слотов дня на остальные дни недели
type CopyDayToWeekRequest struct {
	AdminID    int64
	SourceDate time.Time
}

// Response модели

// SlotResponse один слот дня
type SlotResponse struct {
	Time        string `json:"time"`
	IsAvailable bool   `json:"isAvailable"`
	SlotType    string `json:"slotType"`
}

// DayResponse расписание на один день
type DayResponse struct {
	Date  string         `json:"date"` // "2025-06-10"
	Slots []SlotResponse `json:"slots"`
}

// FromDomainDays конвертирует доменные расписания в ответ
func FromDomainDays(days []*domain.DaySchedule) []DayResponse {
	result := make([]DayResponse, 0, len(days))
	for _, day := range days {
		slots := make([]SlotResponse, 0, len(day.Slots))
		for _, s := range day.Slots {
			slots = append(slots, SlotResponse{
				Time:        s.Time.String(),
				IsAvailable: s.IsAvailable,
				SlotType:    string(s.SlotType),
			})
		}
		result = append(result, DayResponse{
			Date:  day.Date.Format(domain.DateFormat),
			Slots: slots,
		})
	}
	return result
}
