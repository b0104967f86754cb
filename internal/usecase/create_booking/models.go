package create_booking

import (
	"time"

	"github.com/dlazarev-dev/TPS-SchedulingService/internal/domain"
	"github.com/dlazarev-dev/TPS-SchedulingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	AdminID   int64              // ID админа, чей слот бронируется
	Date      time.Time          // Дата сессии (без времени)
	TimeSlot  types.TimeLabel    // Метка времени слота (например, "10:00 AM")
	Mode      domain.SessionMode // Формат сессии: in-person | online
	Duration  int                // Длительность в минутах (0 = значение по умолчанию)
	Client    domain.ClientInfo  // Данные клиента
	Notes     *string            // Заметки (опционально)
	Confirmed bool               // true = прямая запись админом, статус confirmed сразу
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	AdminID         int64
	Date            time.Time
	TimeSlot        types.TimeLabel
	Mode            domain.SessionMode
	DurationMinutes int
	Status          domain.BookingStatus
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
