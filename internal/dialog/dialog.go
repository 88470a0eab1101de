package dialog

import "sync"

// State — крок багатокрокового сценарію оператора.
type State string

const (
	StateIdle State = "idle"

	// Додавання картриджа
	StateAddPickBatch State = "add_pick_batch" // вибір партії або "нова партія"
	StateAddEnterItem State = "add_enter_item" // очікуємо рядок "відділ, дата"
)

type Payload map[string]any

// Item — сесія одного чату: поточний стан і контекст кроку.
type Item struct {
	ChatID  int64
	State   State
	Payload Payload
}

// Manager тримає щонайбільше одну сесію на оператора. Новий сценарій
// перезаписує попередню сесію; Reset чистить її безумовно. Таймаута
// неактивності немає.
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*Item
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[int64]*Item)}
}

// Get повертає сесію чату; якщо її немає — порожню зі станом idle.
func (m *Manager) Get(chatID int64) *Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	if it, ok := m.sessions[chatID]; ok {
		return it
	}
	return &Item{ChatID: chatID, State: StateIdle, Payload: Payload{}}
}

func (m *Manager) Set(chatID int64, state State, payload Payload) {
	if payload == nil {
		payload = Payload{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[chatID] = &Item{ChatID: chatID, State: state, Payload: payload}
}

func (m *Manager) Reset(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, chatID)
}

// GetInt64 дістає числове значення з payload (JSON-и тут не ходять, але
// значення могли класти і як int, і як int64).
func GetInt64(p Payload, key string) (int64, bool) {
	v, ok := p[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	}
	return 0, false
}
