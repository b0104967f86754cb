package get_availability

import (
	"github.com/dlazarev-dev/TPS-SchedulingService/internal/service/availability/models"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	AdminID int64                `json:"adminId"`
	Days    []models.DayResponse `json:"days"`
}
