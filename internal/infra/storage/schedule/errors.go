package schedule

import "errors"

var (
	// ErrDayNotFound возвращается, когда на дату не настроено ни одного слота
	ErrDayNotFound = errors.New("schedule.repository: no schedule for date")

	// ErrSlotNotFound возвращается, когда слот с такой меткой времени не настроен
	ErrSlotNotFound = errors.New("schedule.repository: slot not offered")

	// ErrSlotTaken возвращается, когда слот уже занят другим бронированием
	ErrSlotTaken = errors.New("schedule.repository: slot already taken")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
