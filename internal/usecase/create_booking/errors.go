package create_booking

import "errors"

var (
	// ErrNoScheduleForDate возвращается, когда на дату не настроено расписание
	ErrNoScheduleForDate = errors.New("create_booking: no schedule for date")

	// ErrSlotNotOffered возвращается, когда слот с таким временем не предложен
	ErrSlotNotOffered = errors.New("create_booking: slot not offered on that date")

	// ErrSlotAlreadyTaken возвращается, когда слот уже занят.
	// Ожидаемый исход для проигравшего гонку за слот, а не сбой.
	ErrSlotAlreadyTaken = errors.New("create_booking: slot already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
