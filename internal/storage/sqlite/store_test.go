package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/LapkoMarian/cartridges-bot/internal/domain/batches"
	"github.com/LapkoMarian/cartridges-bot/internal/domain/cartridges"
	"github.com/LapkoMarian/cartridges-bot/internal/storage"
)

func TestCreateBatchClosesPrevious(t *testing.T) {
	s := NewTestStore(t)
	ctx := context.Background()

	id1, err := s.CreateBatch(ctx, "01.01.2025")
	if err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	id2, err := s.CreateBatch(ctx, "02.01.2025")
	if err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	if id2 <= id1 {
		t.Errorf("batch ids not monotonic: %d then %d", id1, id2)
	}

	active, err := s.ActiveBatchID(ctx)
	if err != nil {
		t.Fatalf("ActiveBatchID: %v", err)
	}
	if active != id2 {
		t.Errorf("active batch = %d, want %d", active, id2)
	}

	bs, err := s.ListBatches(ctx)
	if err != nil {
		t.Fatalf("ListBatches: %v", err)
	}
	var activeCount int
	for _, b := range bs {
		if b.Status == batches.StatusActive {
			activeCount++
		}
	}
	if activeCount != 1 {
		t.Errorf("expected exactly 1 active batch, got %d", activeCount)
	}
	first, _ := s.GetBatch(ctx, id1)
	if first.Status != batches.StatusClosed {
		t.Errorf("previous batch status = %s, want closed", first.Status)
	}
}

func TestActiveBatchIDEmpty(t *testing.T) {
	s := NewTestStore(t)
	if _, err := s.ActiveBatchID(context.Background()); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("ActiveBatchID on empty store: err = %v, want ErrNotFound", err)
	}
}

func TestCreateAndGetItem(t *testing.T) {
	s := NewTestStore(t)
	ctx := context.Background()

	bid, _ := s.CreateBatch(ctx, "01.01.2025")
	id, err := s.CreateItem(ctx, bid, "Бухгалтерія", "20.10.2025")
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	it, err := s.GetItem(ctx, id)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if it.Department != "Бухгалтерія" {
		t.Errorf("department = %q", it.Department)
	}
	if it.Status != cartridges.StatusWithdrawn {
		t.Errorf("status = %s, want withdrawn", it.Status)
	}
	if it.DateWithdrawn != "20.10.2025" {
		t.Errorf("date withdrawn = %q", it.DateWithdrawn)
	}
	if it.DateSent != "" || it.DateReturned != "" || it.DateIssued != "" {
		t.Errorf("later dates must start empty: %+v", it)
	}
	if it.BatchID != bid {
		t.Errorf("batch id = %d, want %d", it.BatchID, bid)
	}
}

func TestSetItemStatusNeverClearsDates(t *testing.T) {
	s := NewTestStore(t)
	ctx := context.Background()

	bid, _ := s.CreateBatch(ctx, "01.01.2025")
	id, _ := s.CreateItem(ctx, bid, "Склад", "01.01.2025")

	if err := s.SetItemStatus(ctx, id, cartridges.StatusSent, "02.01.2025"); err != nil {
		t.Fatalf("SetItemStatus: %v", err)
	}
	if err := s.SetItemStatus(ctx, id, cartridges.StatusReturned, "03.01.2025"); err != nil {
		t.Fatalf("SetItemStatus: %v", err)
	}

	it, _ := s.GetItem(ctx, id)
	if it.Status != cartridges.StatusReturned {
		t.Errorf("status = %s, want returned", it.Status)
	}
	if it.DateWithdrawn != "01.01.2025" || it.DateSent != "02.01.2025" || it.DateReturned != "03.01.2025" {
		t.Errorf("earlier dates must survive transitions: %+v", it)
	}

	// Повторний перехід оновлює лише власну дату.
	if err := s.SetItemStatus(ctx, id, cartridges.StatusSent, "05.01.2025"); err != nil {
		t.Fatalf("SetItemStatus: %v", err)
	}
	it, _ = s.GetItem(ctx, id)
	if it.DateSent != "05.01.2025" {
		t.Errorf("date sent = %q, want overwritten 05.01.2025", it.DateSent)
	}
	if it.DateReturned != "03.01.2025" {
		t.Errorf("date returned = %q, must be untouched", it.DateReturned)
	}
}

func TestSetItemStatusUnknown(t *testing.T) {
	s := NewTestStore(t)
	ctx := context.Background()
	bid, _ := s.CreateBatch(ctx, "01.01.2025")
	id, _ := s.CreateItem(ctx, bid, "Склад", "01.01.2025")

	if err := s.SetItemStatus(ctx, id, "bogus", "02.01.2025"); err == nil {
		t.Error("expected error for unknown status")
	}
}

func TestDeleteBatchCascades(t *testing.T) {
	s := NewTestStore(t)
	ctx := context.Background()

	bid1, _ := s.CreateBatch(ctx, "01.01.2025")
	id1, _ := s.CreateItem(ctx, bid1, "Перший", "01.01.2025")
	bid2, _ := s.CreateBatch(ctx, "02.01.2025")
	id2, _ := s.CreateItem(ctx, bid2, "Другий", "02.01.2025")

	if err := s.DeleteBatch(ctx, bid1); err != nil {
		t.Fatalf("DeleteBatch: %v", err)
	}

	if _, err := s.GetItem(ctx, id1); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("item of deleted batch: err = %v, want ErrNotFound", err)
	}
	if _, err := s.GetItem(ctx, id2); err != nil {
		t.Errorf("item of surviving batch must remain: %v", err)
	}

	if err := s.DeleteBatch(ctx, bid1); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second delete: err = %v, want ErrNotFound", err)
	}
}

func TestListItemsScopedToBatch(t *testing.T) {
	s := NewTestStore(t)
	ctx := context.Background()

	bid1, _ := s.CreateBatch(ctx, "01.01.2025")
	_, _ = s.CreateItem(ctx, bid1, "A", "01.01.2025")
	_, _ = s.CreateItem(ctx, bid1, "B", "01.01.2025")
	bid2, _ := s.CreateBatch(ctx, "02.01.2025")
	_, _ = s.CreateItem(ctx, bid2, "C", "02.01.2025")

	items, err := s.ListItems(ctx, bid1)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("expected 2 items in batch %d, got %d", bid1, len(items))
	}

	all, err := s.ListAllItems(ctx)
	if err != nil {
		t.Fatalf("ListAllItems: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 items total, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].ID <= all[i-1].ID {
			t.Errorf("items not ordered by id: %d after %d", all[i].ID, all[i-1].ID)
		}
	}
}

func TestNotFoundErrors(t *testing.T) {
	s := NewTestStore(t)
	ctx := context.Background()

	if _, err := s.GetBatch(ctx, 42); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetBatch: err = %v, want ErrNotFound", err)
	}
	if _, err := s.GetItem(ctx, 42); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetItem: err = %v, want ErrNotFound", err)
	}
	if err := s.DeleteItem(ctx, 42); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("DeleteItem: err = %v, want ErrNotFound", err)
	}
	if err := s.SetItemStatus(ctx, 42, cartridges.StatusSent, "01.01.2025"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("SetItemStatus: err = %v, want ErrNotFound", err)
	}
}
