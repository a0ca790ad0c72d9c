package dictionary

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T, dsn string) *SQLite {
	t.Helper()
	db, err := OpenSQLite(context.Background(), dsn)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSQLiteSeedAndCheck(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t, filepath.Join(t.TempDir(), "data", "dict.db"))

	n, err := db.Seed(ctx, "en", []string{"silk", "worm", "silk"})
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if n != 2 {
		t.Errorf("Seed inserted %d, want 2", n)
	}

	for word, want := range map[string]bool{"silk": true, "worm": true, "zzz": false} {
		got, err := db.Check(ctx, word, "en")
		if err != nil {
			t.Fatalf("Check(%q): %v", word, err)
		}
		if got != want {
			t.Errorf("Check(%q) = %v, want %v", word, got, want)
		}
	}
	if ok, _ := db.Check(ctx, "silk", "fr"); ok {
		t.Error("Check(silk, fr) = true, want false")
	}
}

func TestSQLiteReopenDoesNotReseed(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "dict.db")

	first, err := OpenSQLite(ctx, dsn)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if _, err := first.Seed(ctx, "en", []string{"silk", "worm"}); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second := openTestDB(t, dsn)
	n, err := second.Seed(ctx, "en", []string{"silk", "worm", "milk"})
	if err != nil {
		t.Fatalf("Seed (reopen): %v", err)
	}
	if n != 0 {
		t.Errorf("Seed after reopen inserted %d, want 0", n)
	}
	count, err := second.Count(ctx, "en")
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 2 {
		t.Errorf("Count = %d, want 2", count)
	}
}
