package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/LapkoMarian/cartridges-bot/internal/domain/batches"
	"github.com/LapkoMarian/cartridges-bot/internal/domain/cartridges"
	"github.com/LapkoMarian/cartridges-bot/internal/storage"
)

type Store struct{ db *sql.DB }

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) CreateBatch(ctx context.Context, createdAt string) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.ExecContext(ctx, `UPDATE batches SET status='closed' WHERE status='active'`); err != nil {
		return 0, fmt.Errorf("closing active batch: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO batches (created_at, status) VALUES (?, 'active')`, createdAt)
	if err != nil {
		return 0, fmt.Errorf("creating batch: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting batch id: %w", err)
	}
	return id, tx.Commit()
}

func (s *Store) ActiveBatchID(ctx context.Context) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM batches WHERE status='active'`).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, storage.ErrNotFound
	}
	return id, err
}

func (s *Store) GetBatch(ctx context.Context, id int64) (*batches.Batch, error) {
	b := &batches.Batch{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, status FROM batches WHERE id=?`, id).
		Scan(&b.ID, &b.CreatedAt, &b.Status)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting batch: %w", err)
	}
	return b, nil
}

func (s *Store) ListBatches(ctx context.Context) ([]batches.Batch, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, created_at, status FROM batches ORDER BY id`)
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
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// Каскад явний: спершу картриджі партії, потім сама партія.
	if _, err = tx.ExecContext(ctx, `DELETE FROM cartridges WHERE batch_id=?`, id); err != nil {
		return fmt.Errorf("deleting batch items: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM batches WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("deleting batch: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return tx.Commit()
}

func (s *Store) CreateItem(ctx context.Context, batchID int64, department, dateWithdrawn string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO cartridges (date_received, department, status, batch_id)
		VALUES (?, ?, ?, ?)
	`, dateWithdrawn, department, string(cartridges.StatusWithdrawn), batchID)
	if err != nil {
		return 0, fmt.Errorf("creating item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting item id: %w", err)
	}
	return id, nil
}

func (s *Store) GetItem(ctx context.Context, id int64) (*cartridges.Item, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, date_received, department, status, date_sent, date_returned, date_given, batch_id
		FROM cartridges WHERE id=?
	`, id)
	it, err := scanItem(row.Scan)
	if err == sql.ErrNoRows {
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
		FROM cartridges WHERE batch_id=? ORDER BY id
	`, batchID)
}

func (s *Store) ListAllItems(ctx context.Context) ([]cartridges.Item, error) {
	return s.listItems(ctx, `
		SELECT id, date_received, department, status, date_sent, date_returned, date_given, batch_id
		FROM cartridges ORDER BY id
	`)
}

func (s *Store) listItems(ctx context.Context, query string, args ...any) ([]cartridges.Item, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var out []cartridges.Item
	for rows.Next() {
		it, err := scanItem(rows.Scan)
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
	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE cartridges SET status=?, %s=? WHERE id=?`, col),
		string(st), date, id)
	if err != nil {
		return fmt.Errorf("setting item status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteItem(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cartridges WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanItem(scan func(dest ...any) error) (*cartridges.Item, error) {
	it := &cartridges.Item{}
	var recv, sent, ret, given sql.NullString
	if err := scan(&it.ID, &recv, &it.Department, &it.Status, &sent, &ret, &given, &it.BatchID); err != nil {
		return nil, err
	}
	it.DateWithdrawn = recv.String
	it.DateSent = sent.String
	it.DateReturned = ret.String
	it.DateIssued = given.String
	return it, nil
}
