package notifyservice

// BookingCreatedEvent факт создания бронирования для сервиса уведомлений
type BookingCreatedEvent struct {
	AdminID    int64  `json:"admin_id"`
	BookingID  int64  `json:"booking_id"`
	ClientName string `json:"client_name"`
	Date       string `json:"date"`       // "2025-06-10"
	TimeSlot   string `json:"time_slot"`  // "10:00 AM"
}

// ReminderEvent факт напоминания о предстоящей сессии
type ReminderEvent struct {
	AdminID       int64  `json:"admin_id"`
	BookingID     int64  `json:"booking_id"`
	Kind          string `json:"kind"` // "24h" | "10m"
	RecipientName string `json:"recipient_name"`
	WhenLocal     string `json:"when_local"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
