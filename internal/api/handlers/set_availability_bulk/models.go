package set_availability_bulk

import (
	"time"

	"github.com/dlazarev-dev/TPS-SchedulingService/internal/domain"
	"github.com/dlazarev-dev/TPS-SchedulingService/internal/service/availability/models"
	"github.com/dlazarev-dev/TPS-SchedulingService/pkg/types"
)

// SetSlotsBulkRequest HTTP request model
type SetSlotsBulkRequest struct {
	Date      string   `json:"date"` // "2025-06-10"
	DayOfWeek string   `json:"dayOfWeek,omitempty"`
	Times     []string `json:"times"`    // ["10:00 AM", "10:30 AM"]
	SlotType  string   `json:"slotType"` // online | in_person | both
	Available bool     `json:"available"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса.
// Каждая метка времени нормализуется при парсинге, поэтому массовое
// снятие находит слоты независимо от пробелов и регистра во входе.
func (r *SetSlotsBulkRequest) ToServiceRequest(adminID int64) (*models.SetSlotsBulkRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	labels := make([]types.TimeLabel, 0, len(r.Times))
	for _, raw := range r.Times {
		label, err := types.ParseTimeLabel(raw)
		if err != nil {
			return nil, err
		}
		labels = append(labels, label)
	}

	slotType := domain.SlotType(r.SlotType)
	if r.SlotType == "" {
		slotType = domain.SlotTypeBoth
	}

	return &models.SetSlotsBulkRequest{
		AdminID:   adminID,
		Date:      date,
		DayOfWeek: r.DayOfWeek,
		Times:     labels,
		SlotType:  slotType,
		Available: r.Available,
	}, nil
}
