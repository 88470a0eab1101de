package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/LapkoMarian/cartridges-bot/internal/domain/batches"
	"github.com/LapkoMarian/cartridges-bot/internal/domain/cartridges"
	"github.com/LapkoMarian/cartridges-bot/internal/storage"
)

type Store struct{ pool *pgxpool.Pool }

func New(pool *pgxpool.Pool) *Store { return &Store{pool: pool} }

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func (s *Store) CreateBatch(ctx context.Context, createdAt string) (int64, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err = tx.Exec(ctx, `UPDATE batches SET status='closed' WHERE status='active'`); err != nil {
		return 0, fmt.Errorf("closing active batch: %w", err)
	}

	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO batches (created_at, status) VALUES ($1, 'active') RETURNING id
	`, createdAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("creating batch: %w", err)
	}
	return id, tx.Commit(ctx)
}

func (s *Store) ActiveBatchID(ctx context.Context) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx, `SELECT id FROM batches WHERE status='active'`).Scan(&id)
	if err == pgx.ErrNoRows {
		return 0, storage.ErrNotFound
	}
	return id, err
}

func (s *Store) GetBatch(ctx context.Context, id int64) (*batches.Batch, error) {
	b := &batches.Batch{}
	err := s.pool.
		QueryRow(ctx, `SELECT id, created_at, status FROM batches WHERE id=$1`, id).
		Scan(&b.ID, &b.CreatedAt, &b.Status)
	if err == pgx.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting batch: %w", err)
	}
	return b, nil
}

func (s *Store) ListBatches(ctx context.Context) ([]batches.Batch, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, created_at, status FROM batches ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing batches: %w", err)
	}
	defer rows.Close()

	var out []batches.Batch
	for rows.Next() {
		var b batches.Batch
		if err := rows.Scan(&b.ID, &b.CreatedAt, &b.Status); err != nil {
			return nil, fmt.Errorf("scanning batch: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *Store) DeleteBatch(ctx context.Context, id int64) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Каскад явний: спершу картриджі партії, потім сама партія.
	if _, err = tx.Exec(ctx, `DELETE FROM cartridges WHERE batch_id=$1`, id); err != nil {
		return fmt.Errorf("deleting batch items: %w", err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM batches WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("deleting batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return tx.Commit(ctx)
}

func (s *Store) CreateItem(ctx context.Context, batchID int64, department, dateWithdrawn string) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO cartridges (date_received, department, status, batch_id)
		VALUES ($1, $2, $3, $4) RETURNING id
	`, dateWithdrawn, department, string(cartridges.StatusWithdrawn), batchID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("creating item: %w", err)
	}
	return id, nil
}

func (s *Store) GetItem(ctx context.Context, id int64) (*cartridges.Item, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, date_received, department, status, date_sent, date_returned, date_given, batch_id
		FROM cartridges WHERE id=$1
	`, id)
	it, err := scanItem(row)
	if err == pgx.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return it, nil
}

func (s *Store) ListItems(ctx context.Context, batchID int64) ([]cartridges.Item, error) {
	return s.listItems(ctx, `
		SELECT id, date_received, department, status, date_sent, date_returned, date_given, batch_id
		FROM cartridges WHERE batch_id=$1 ORDER BY id
	`, batchID)
}

func (s *Store) ListAllItems(ctx context.Context) ([]cartridges.Item, error) {
	return s.listItems(ctx, `
		SELECT id, date_received, department, status, date_sent, date_returned, date_given, batch_id
		FROM cartridges ORDER BY id
	`)
}

func (s *Store) listItems(ctx context.Context, query string, args ...any) ([]cartridges.Item, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var out []cartridges.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		out = append(out, *it)
	}
	return out, rows.Err()
}

func (s *Store) SetItemStatus(ctx context.Context, id int64, st cartridges.Status, date string) error {
	col := st.DateColumn()
	if col == "" {
		return fmt.Errorf("unknown status %q", st)
	}
	// col походить лише з таблиці статусів, у запит зовнішній ввід не потрапляє.
	tag, err := s.pool.Exec(ctx,
		fmt.Sprintf(`UPDATE cartridges SET status=$1, %s=$2 WHERE id=$3`, col),
		string(st), date, id)
	if err != nil {
		return fmt.Errorf("setting item status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteItem(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM cartridges WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanItem(row pgx.Row) (*cartridges.Item, error) {
	it := &cartridges.Item{}
	var recv, sent, ret, given *string
	if err := row.Scan(&it.ID, &recv, &it.Department, &it.Status, &sent, &ret, &given, &it.BatchID); err != nil {
		return nil, err
	}
	it.DateWithdrawn = deref(recv)
	it.DateSent = deref(sent)
	it.DateReturned = deref(ret)
	it.DateIssued = deref(given)
	return it, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
