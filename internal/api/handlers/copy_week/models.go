package copy_week

import (
	"time"

	"github.com/dlazarev-dev/TPS-SchedulingService/internal/domain"
	"github.com/dlazarev-dev/TPS-SchedulingService/internal/service/availability/models"
)

// CopyDayToWeekRequest HTTP request model
type CopyDayToWeekRequest struct {
	SourceDate string `json:"sourceDate"` // "2025-06-10"
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CopyDayToWeekRequest) ToServiceRequest(adminID int64) (*models.CopyDayToWeekRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.SourceDate)
	if err != nil {
		return nil, err
	}

	return &models.CopyDayToWeekRequest{
		AdminID:    adminID,
		SourceDate: date,
	}, nil
}
