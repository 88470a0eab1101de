package mirror

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/LapkoMarian/cartridges-bot/internal/domain/cartridges"
	"github.com/LapkoMarian/cartridges-bot/internal/infra/metrics"
)

const resyncTimeout = 30 * time.Second

// Lister — зріз сховища, потрібний дзеркалу.
type Lister interface {
	ListAllItems(ctx context.Context) ([]cartridges.Item, error)
}

// Synchronizer після кожної мутації перезаписує зовнішнє дзеркало цілком.
// Дзеркало похідне і одноразове: локальна база лишається авторитетною,
// падіння синхронізації ніколи не відкочує мутацію.
type Synchronizer struct {
	store Lister
	up    Uploader
	log   *slog.Logger

	mu      sync.Mutex
	running bool
	pending bool
}

// New створює синхронізатор; up == nil означає, що дзеркало вимкнено.
func New(store Lister, up Uploader, log *slog.Logger) *Synchronizer {
	return &Synchronizer{store: store, up: up, log: log}
}

// Resync читає всі картриджі і повністю замінює вміст дзеркала.
func (s *Synchronizer) Resync(ctx context.Context) error {
	if s.up == nil {
		return nil
	}
	items, err := s.store.ListAllItems(ctx)
	if err != nil {
		return fmt.Errorf("listing items: %w", err)
	}
	data, err := BuildWorkbook(items)
	if err != nil {
		return fmt.Errorf("building workbook: %w", err)
	}
	if err := s.up.Upload(ctx, data); err != nil {
		return fmt.Errorf("uploading mirror: %w", err)
	}
	return nil
}

// Trigger ставить resync у фонову чергу і одразу повертається. Одночасно
// виконується щонайбільше один перезапис; повторні тригери під час роботи
// злипаються в один відкладений прогін.
func (s *Synchronizer) Trigger() {
	if s.up == nil {
		return
	}
	s.mu.Lock()
	if s.running {
		s.pending = true
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	go s.loop()
}

func (s *Synchronizer) loop() {
	for {
		ctx, cancel := context.WithTimeout(context.Background(), resyncTimeout)
		err := s.Resync(ctx)
		cancel()
		if err != nil {
			// Дзеркалу дозволено відставати; помилку лише фіксуємо.
			s.log.Error("mirror resync failed", "err", err)
			metrics.MirrorResyncs.WithLabelValues("error").Inc()
		} else {
			metrics.MirrorResyncs.WithLabelValues("ok").Inc()
		}

		s.mu.Lock()
		if !s.pending {
			s.running = false
			s.mu.Unlock()
			return
		}
		s.pending = false
		s.mu.Unlock()
	}
}
