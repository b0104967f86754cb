package set_availability

import (
	"time"

	"github.com/dlazarev-dev/TPS-SchedulingService/internal/domain"
	"github.com/dlazarev-dev/TPS-SchedulingService/internal/service/availability/models"
	"github.com/dlazarev-dev/TPS-SchedulingService/pkg/types"
)

// SetSlotRequest HTTP request model
type SetSlotRequest struct {
	Date      string `json:"date"`                // "2025-06-10"
	DayOfWeek string `json:"dayOfWeek,omitempty"` // если пусто, выводится из даты
	Time      string `json:"time"`                // "10:00 AM"
	SlotType  string `json:"slotType"`            // online | in_person | both
	Available bool   `json:"available"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса (с парсингом даты и времени)
func (r *SetSlotRequest) ToServiceRequest(adminID int64) (*models.SetSlotRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	label, err := types.ParseTimeLabel(r.Time)
	if err != nil {
		return nil, err
	}

	slotType := domain.SlotType(r.SlotType)
	if r.SlotType == "" {
		slotType = domain.SlotTypeBoth
	}

	return &models.SetSlotRequest{
		AdminID:   adminID,
		Date:      date,
		DayOfWeek: r.DayOfWeek,
		Time:      label,
		SlotType:  slotType,
		Available: r.Available,
	}, nil
}
