package batches

// Status — стан партії: активна приймає нові картриджі, закрита лишається
// тільки в історії. Активна партія завжди щонайбільше одна.
type Status string

const (
	StatusActive Status = "active"
	StatusClosed Status = "closed"
)

func (s Status) Title() string {
	if s == StatusActive {
		return "🟢 Активна"
	}
	return "📕 Закрита"
}

type Batch struct {
	ID        int64
	CreatedAt string
	Status    Status
}
