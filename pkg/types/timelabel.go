package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// LabelFormat формат отображения времени слота (12-часовой, например "10:00 AM")
const LabelFormat = "03:04 PM"

var (
	// ErrInvalidTimeLabel возвращается при некорректном формате метки времени
	ErrInvalidTimeLabel = errors.New("types: invalid time label format, expected hh:mm AM/PM")
)

// TimeLabel метка времени слота в каноническом виде: "03:04 PM",
// без пробелов по краям, AM/PM в верхнем регистре.
// Все сравнения меток в системе выполняются через этот тип,
// поэтому "10:00 am " и "10:00 AM" считаются одной и той же меткой.
type TimeLabel string

// NewTimeLabel создает метку из time.Time
func NewTimeLabel(t time.Time) TimeLabel {
	return TimeLabel(t.Format(LabelFormat))
}

// ParseTimeLabel парсит строку в каноническую метку времени.
// Входная строка нормализуется: обрезаются пробелы, регистр приводится к верхнему.
func ParseTimeLabel(s string) (TimeLabel, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	t, err := time.Parse(LabelFormat, normalized)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeLabel, s)
	}
	return TimeLabel(t.Format(LabelFormat)), nil
}

// String возвращает строковое представление метки
func (l TimeLabel) String() string {
	return string(l)
}

// IsZero возвращает true, если метка пустая
func (l TimeLabel) IsZero() bool {
	return l == ""
}

// Validate проверяет, что метка находится в каноническом виде
func (l TimeLabel) Validate() error {
	parsed, err := ParseTimeLabel(string(l))
	if err != nil {
		return err
	}
	if parsed != l {
		return fmt.Errorf("%w: %q is not canonical", ErrInvalidTimeLabel, string(l))
	}
	return nil
}

// Minutes возвращает количество минут с полуночи
func (l TimeLabel) Minutes() (int, error) {
	t, err := time.Parse(LabelFormat, string(l))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeLabel, string(l))
	}
	return t.Hour()*60 + t.Minute(), nil
}

// AddMinutes возвращает метку, сдвинутую на указанное число минут
func (l TimeLabel) AddMinutes(minutes int) (TimeLabel, error) {
	t, err := time.Parse(LabelFormat, string(l))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeLabel, string(l))
	}
	return TimeLabel(t.Add(time.Duration(minutes) * time.Minute).Format(LabelFormat)), nil
}

// IsBefore возвращает true, если метка раньше other в пределах суток
func (l TimeLabel) IsBefore(other TimeLabel) bool {
	m1, err1 := l.Minutes()
	m2, err2 := other.Minutes()
	if err1 != nil || err2 != nil {
		return false
	}
	return m1 < m2
}

// At совмещает метку с календарной датой, возвращая момент начала слота
// в часовом поясе даты
func (l TimeLabel) At(date time.Time) (time.Time, error) {
	m, err := l.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return day.Add(time.Duration(m) * time.Minute), nil
}

// Value реализует driver.Valuer для записи в БД
func (l TimeLabel) Value() (driver.Value, error) {
	return string(l), nil
}

// Scan реализует sql.Scanner для чтения из БД
func (l *TimeLabel) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*l = TimeLabel(v)
	case []byte:
		*l = TimeLabel(v)
	default:
		return fmt.Errorf("types: cannot scan %T into TimeLabel", src)
	}
	return nil
}

// MarshalJSON сериализует метку как строку
func (l TimeLabel) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(l))
}

// UnmarshalJSON десериализует и нормализует метку
func (l *TimeLabel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeLabel(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
