package cartridges

import (
	"errors"
	"strings"
	"time"
)

// ErrBadItemLine — ввід не схожий на "відділ, дата"; сесія додавання
// залишається на місці, оператор може спробувати ще раз.
var ErrBadItemLine = errors.New("bad item line")

// ParseItemLine розбирає рядок нового картриджа: два поля через кому,
// "відділ, дата" або "дата, відділ". Порожнє поле дати означає сьогодні;
// дата, що не розбирається, проходить без змін (best effort).
func ParseItemLine(line string, loc *time.Location) (department, date string, err error) {
	parts := strings.Split(line, ",")
	if len(parts) != 2 {
		return "", "", ErrBadItemLine
	}
	first := strings.TrimSpace(parts[0])
	second := strings.TrimSpace(parts[1])

	if isDate(first) {
		department, date = second, NormalizeDate(first)
	} else {
		department, date = first, NormalizeDate(second)
	}
	if department == "" {
		return "", "", ErrBadItemLine
	}
	if date == "" {
		date = CurrentDate(loc)
	}
	return department, date, nil
}
