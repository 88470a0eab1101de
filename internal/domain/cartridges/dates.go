package cartridges

import (
	"strings"
	"time"
)

// DateLayout — канонічний формат дат у базі та у дзеркалі.
const DateLayout = "02.01.2006"

// dateLayouts — допустимі формати вводу, перший вдалий розбір виграє.
var dateLayouts = []string{
	"02.01.2006",
	"02.01.06",
	"2006-01-02",
	"02-01-2006",
	"2006/01/02",
	"02/01/2006",
}

// CurrentDate повертає сьогоднішню дату в зоні loc у канонічному форматі.
func CurrentDate(loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return time.Now().In(loc).Format(DateLayout)
}

// NormalizeDate приводить дату до канонічного формату. Рядок, який не
// розбирається жодним з форматів, повертається без змін: ввід оператора
// не відхиляємо, UI показує його як є.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DateLayout)
		}
	}
	return s
}

func isDate(s string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return true
		}
	}
	return false
}
