package cartridges

// Status — етап життєвого циклу картриджа. У базі зберігаються коди,
// відображуваний текст дає Title().
type Status string

const (
	StatusWithdrawn Status = "withdrawn"
	StatusSent      Status = "sent"
	StatusReturned  Status = "returned"
	StatusIssued    Status = "issued"
)

// AllStatuses — порядок кнопок у меню зміни статусу.
var AllStatuses = []Status{StatusWithdrawn, StatusSent, StatusReturned, StatusIssued}

// dateColumns — фіксована відповідність статус → колонка дати, яку він штампує.
var dateColumns = map[Status]string{
	StatusWithdrawn: "date_received",
	StatusSent:      "date_sent",
	StatusReturned:  "date_returned",
	StatusIssued:    "date_given",
}

var titles = map[Status]string{
	StatusWithdrawn: "⛔ Вилучено у працівника",
	StatusSent:      "🔄 Відправлено на фірму",
	StatusReturned:  "✅ Прибуло з фірми",
	StatusIssued:    "📦 Видано працівнику",
}

func (s Status) Valid() bool { return dateColumns[s] != "" }

// DateColumn повертає назву колонки дати для статусу ("" для невідомого коду).
func (s Status) DateColumn() string { return dateColumns[s] }

func (s Status) Title() string {
	if t, ok := titles[s]; ok {
		return t
	}
	return string(s)
}

// Item — один картридж. Порожній рядок дати означає, що відповідний
// перехід ще не відбувався; поле DateIssued лежить у колонці date_given.
type Item struct {
	ID            int64
	DateWithdrawn string
	Department    string
	Status        Status
	DateSent      string
	DateReturned  string
	DateIssued    string
	BatchID       int64
}

// StatusDate повертає значення поля дати, що відповідає статусу st.
func (i *Item) StatusDate(st Status) string {
	switch st {
	case StatusWithdrawn:
		return i.DateWithdrawn
	case StatusSent:
		return i.DateSent
	case StatusReturned:
		return i.DateReturned
	case StatusIssued:
		return i.DateIssued
	}
	return ""
}
