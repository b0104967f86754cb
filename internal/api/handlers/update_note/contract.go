package update_note

import "context"

type BookingsService interface {
	UpdateNote(ctx context.Context, id int64, adminID int64, notes string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
