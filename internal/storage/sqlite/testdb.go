package sqlite

import "testing"

// NewTestStore створює свіжу базу в пам'яті для тестів.
func NewTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}
