package store

import (
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/infodaemon/infoterm/internal/history"

	_ "modernc.org/sqlite"
)

// testStore returns a Store backed by an in-memory SQLite database.
func testStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	db.SetMaxOpenConns(1)
	s, err := NewFromDB(db)
	if err != nil {
		db.Close()
		t.Fatalf("new store from db: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_GetSet(t *testing.T) {
	s := testStore(t)

	t.Run("missing key", func(t *testing.T) {
		v, ok, err := s.Get("https://a.example", "k")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if ok || v != "" {
			t.Errorf("Get = (%q, %v), want missing", v, ok)
		}
	})

	t.Run("set then get", func(t *testing.T) {
		if err := s.Set("https://a.example", "k", "v1"); err != nil {
			t.Fatalf("Set: %v", err)
		}
		v, ok, err := s.Get("https://a.example", "k")
		if err != nil || !ok || v != "v1" {
			t.Errorf("Get = (%q, %v, %v), want v1", v, ok, err)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		if err := s.Set("https://a.example", "k", "v2"); err != nil {
			t.Fatalf("Set: %v", err)
		}
		if v, _, _ := s.Get("https://a.example", "k"); v != "v2" {
			t.Errorf("Get = %q, want v2", v)
		}
	})

	t.Run("origins are isolated", func(t *testing.T) {
		if _, ok, _ := s.Get("https://b.example", "k"); ok {
			t.Error("value leaked across origins")
		}
	})
}

func TestStore_Quota(t *testing.T) {
	s := testStore(t)
	err := s.Set("o", "big", strings.Repeat("x", MaxValueBytes+1))
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("Set oversized value: err = %v, want ErrQuotaExceeded", err)
	}
}

func TestStore_KeysDelete(t *testing.T) {
	s := testStore(t)
	for _, k := range []string{"b", "a", "c"} {
		if err := s.Set("o", k, k); err != nil {
			t.Fatal(err)
		}
	}
	keys, err := s.Keys("o")
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if strings.Join(keys, ",") != "a,b,c" {
		t.Errorf("Keys = %v", keys)
	}
	if err := s.Delete("o", "b"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete("o", "missing"); err != nil {
		t.Fatalf("Delete missing: %v", err)
	}
	keys, _ = s.Keys("o")
	if strings.Join(keys, ",") != "a,c" {
		t.Errorf("Keys after delete = %v", keys)
	}
}

func TestScoped_BacksHistory(t *testing.T) {
	s := testStore(t)
	scope := s.Scope("https://site.example")

	h := history.New(scope, nil)
	h.Push("help")
	h.Push("ls projects")

	reloaded := history.New(s.Scope("https://site.example"), nil)
	got := reloaded.Entries()
	if strings.Join(got, "|") != "help|ls projects" {
		t.Errorf("reloaded history = %v", got)
	}

	other := history.New(s.Scope("https://other.example"), nil)
	if other.Len() != 0 {
		t.Errorf("other origin sees %d entries", other.Len())
	}
}
