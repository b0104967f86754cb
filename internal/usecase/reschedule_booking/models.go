package reschedule_booking

import (
	"time"

	"github.com/dlazarev-dev/TPS-SchedulingService/internal/domain"
	"github.com/dlazarev-dev/TPS-SchedulingService/pkg/types"
)

// Request модель запроса на перенос сессии.
// Все поля, кроме идентификаторов, опциональны: nil означает "не менять"
type Request struct {
	BookingID   int64
	AdminID     int64            // Админ, от имени которого выполняется перенос
	NewDate     *time.Time       // Новая дата сессии
	NewTime     *types.TimeLabel // Новая метка времени; nil при смене даты = прежнее время
	NewDuration *int             // Новая длительность в минутах
	NewNotes    *string          // Новые заметки
}

// Response модель ответа с обновленным бронированием
type Response struct {
	ID              int64
	AdminID         int64
	Date            time.Time
	TimeSlot        types.TimeLabel
	Mode            domain.SessionMode
	DurationMinutes int
	Status          domain.BookingStatus
	Notes           *string
	UpdatedAt       time.Time
}
