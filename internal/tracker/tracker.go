package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/LapkoMarian/cartridges-bot/internal/dialog"
	"github.com/LapkoMarian/cartridges-bot/internal/domain/cartridges"
	"github.com/LapkoMarian/cartridges-bot/internal/infra/metrics"
	"github.com/LapkoMarian/cartridges-bot/internal/storage"
)

// Syncer — тригер фонового перезапису дзеркала після мутації.
type Syncer interface {
	Trigger()
}

// Tracker — ядро обліку: переходи життєвого циклу, партії, сесія додавання.
// Кожна вдала мутація синхронно зафіксована у сховищі і після цього
// best-effort штовхає дзеркало.
type Tracker struct {
	store  storage.Store
	states *dialog.Manager
	mirror Syncer
	loc    *time.Location
	log    *slog.Logger
}

func New(store storage.Store, states *dialog.Manager, mirror Syncer, loc *time.Location, log *slog.Logger) *Tracker {
	if loc == nil {
		loc = time.Local
	}
	return &Tracker{store: store, states: states, mirror: mirror, loc: loc, log: log}
}

// Today — поточна дата у зоні процесу, канонічний формат.
func (t *Tracker) Today() string { return cartridges.CurrentDate(t.loc) }

// EnsureActiveBatch повертає активну партію, за відсутності — ліниво
// створює нову: картридж без партії існувати не може.
func (t *Tracker) EnsureActiveBatch(ctx context.Context) (int64, error) {
	id, err := t.store.ActiveBatchID(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return t.NewBatch(ctx)
	}
	return id, err
}

// NewBatch відкриває нову активну партію; попередня активна закривається.
func (t *Tracker) NewBatch(ctx context.Context) (int64, error) {
	id, err := t.store.CreateBatch(ctx, t.Today())
	if err != nil {
		return 0, err
	}
	metrics.Mutations.WithLabelValues("batch_create").Inc()
	t.mirror.Trigger()
	return id, nil
}

// StartAdd починає сценарій додавання: далі оператор обирає партію.
// Попередня незавершена сесія перезаписується.
func (t *Tracker) StartAdd(chatID int64) {
	t.states.Set(chatID, dialog.StateAddPickBatch, dialog.Payload{})
}

// ChooseBatch фіксує вибір наявної партії і переводить сесію до вводу даних.
// Застарілий id партії обриває сценарій.
func (t *Tracker) ChooseBatch(ctx context.Context, chatID, batchID int64) error {
	if _, err := t.store.GetBatch(ctx, batchID); err != nil {
		t.states.Reset(chatID)
		return err
	}
	t.states.Set(chatID, dialog.StateAddEnterItem, dialog.Payload{"batch_id": batchID})
	return nil
}

// ChooseNewBatch — гілка "створити нову" з вибору партії: синтезує активну
// партію і одразу переходить до вводу даних.
func (t *Tracker) ChooseNewBatch(ctx context.Context, chatID int64) (int64, error) {
	id, err := t.NewBatch(ctx)
	if err != nil {
		t.states.Reset(chatID)
		return 0, err
	}
	t.states.Set(chatID, dialog.StateAddEnterItem, dialog.Payload{"batch_id": id})
	return id, nil
}

// SubmitLine завершує сценарій додавання: розбирає "відділ, дата" і створює
// картридж у вибраній партії. При ErrBadItemLine сесія лишається на місці.
func (t *Tracker) SubmitLine(ctx context.Context, chatID int64, line string) (*cartridges.Item, error) {
	st := t.states.Get(chatID)
	if st.State != dialog.StateAddEnterItem {
		return nil, fmt.Errorf("no pending add for chat %d", chatID)
	}
	batchID, ok := dialog.GetInt64(st.Payload, "batch_id")
	if !ok {
		t.states.Reset(chatID)
		return nil, storage.ErrNotFound
	}

	department, date, err := cartridges.ParseItemLine(line, t.loc)
	if err != nil {
		return nil, err
	}

	if _, err := t.store.GetBatch(ctx, batchID); err != nil {
		t.states.Reset(chatID)
		return nil, err
	}
	id, err := t.store.CreateItem(ctx, batchID, department, date)
	if err != nil {
		return nil, err
	}
	t.states.Reset(chatID)
	metrics.Mutations.WithLabelValues("item_create").Inc()
	t.mirror.Trigger()
	return t.store.GetItem(ctx, id)
}

// Home обриває будь-який незавершений сценарій чату.
func (t *Tracker) Home(chatID int64) { t.states.Reset(chatID) }

// SetStatus застосовує перехід життєвого циклу: виставляє статус і штампує
// його поле дати сьогоднішнім числом. Порядок переходів не обмежується,
// повторний перехід лише оновлює власну дату.
func (t *Tracker) SetStatus(ctx context.Context, itemID int64, st cartridges.Status) (*cartridges.Item, error) {
	if !st.Valid() {
		return nil, fmt.Errorf("unknown status %q", st)
	}
	if err := t.store.SetItemStatus(ctx, itemID, st, t.Today()); err != nil {
		return nil, err
	}
	metrics.Mutations.WithLabelValues("status_change").Inc()
	t.mirror.Trigger()
	return t.store.GetItem(ctx, itemID)
}

func (t *Tracker) DeleteItem(ctx context.Context, itemID int64) error {
	if err := t.store.DeleteItem(ctx, itemID); err != nil {
		return err
	}
	metrics.Mutations.WithLabelValues("item_delete").Inc()
	t.mirror.Trigger()
	return nil
}

func (t *Tracker) DeleteBatch(ctx context.Context, batchID int64) error {
	if err := t.store.DeleteBatch(ctx, batchID); err != nil {
		return err
	}
	metrics.Mutations.WithLabelValues("batch_delete").Inc()
	t.mirror.Trigger()
	return nil
}
