package storage

import (
	"context"
	"errors"

	"github.com/LapkoMarian/cartridges-bot/internal/domain/batches"
	"github.com/LapkoMarian/cartridges-bot/internal/domain/cartridges"
)

// ErrNotFound — запис зник (видалений паралельним кроком або застарілий id).
// Для викликачів це сигнал перервати поточний сценарій, а не ігнорувати.
var ErrNotFound = errors.New("record not found")

// Store — сховище партій та картриджів. Дві реалізації: postgres (бойова)
// та sqlite (локальний запуск і тести). Усі записи фіксуються синхронно.
type Store interface {
	// CreateBatch відкриває нову активну партію і в тій самій транзакції
	// закриває попередню активну, якщо вона була.
	CreateBatch(ctx context.Context, createdAt string) (int64, error)
	// ActiveBatchID повертає ErrNotFound, коли активної партії немає.
	ActiveBatchID(ctx context.Context) (int64, error)
	GetBatch(ctx context.Context, id int64) (*batches.Batch, error)
	// ListBatches повертає партії за зростанням id.
	ListBatches(ctx context.Context) ([]batches.Batch, error)
	// DeleteBatch видаляє партію разом з усіма її картриджами.
	DeleteBatch(ctx context.Context, id int64) error

	CreateItem(ctx context.Context, batchID int64, department, dateWithdrawn string) (int64, error)
	GetItem(ctx context.Context, id int64) (*cartridges.Item, error)
	ListItems(ctx context.Context, batchID int64) ([]cartridges.Item, error)
	ListAllItems(ctx context.Context) ([]cartridges.Item, error)
	// SetItemStatus виставляє статус і штампує відповідну колонку дати;
	// раніше проставлені дати не чіпає.
	SetItemStatus(ctx context.Context, id int64, st cartridges.Status, date string) error
	DeleteItem(ctx context.Context, id int64) error

	Close() error
}
