package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) (*SQLite, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	st, err := OpenSQLite(context.Background(), path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st, path
}

func TestSQLiteSetGetRemove(t *testing.T) {
	st, _ := openTestStore(t)
	ctx := context.Background()

	if _, ok, err := st.Get(ctx, "missing"); ok || err != nil {
		t.Fatalf("missing key: ok=%v err=%v", ok, err)
	}

	if err := st.Set(ctx, KeySettings, []byte(`{"a":1}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := st.Get(ctx, KeySettings)
	if err != nil || !ok || string(v) != `{"a":1}` {
		t.Fatalf("get: %q ok=%v err=%v", v, ok, err)
	}

	// Whole-value replace.
	if err := st.Set(ctx, KeySettings, []byte(`{"a":2}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, _, _ = st.Get(ctx, KeySettings)
	if string(v) != `{"a":2}` {
		t.Fatalf("after overwrite: %q", v)
	}

	if err := st.Remove(ctx, KeySettings); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok, _ := st.Get(ctx, KeySettings); ok {
		t.Fatalf("key survived remove")
	}
	if err := st.Remove(ctx, KeySettings); err != nil {
		t.Fatalf("remove of absent key: %v", err)
	}
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	st, path := openTestStore(t)
	ctx := context.Background()

	if err := st.Set(ctx, KeyProgress, []byte(`{"v":1}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	again, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer again.Close()
	v, ok, err := again.Get(ctx, KeyProgress)
	if err != nil || !ok || string(v) != `{"v":1}` {
		t.Fatalf("after reopen: %q ok=%v err=%v", v, ok, err)
	}
}

func TestSQLiteNotifiesKeyOnly(t *testing.T) {
	st, _ := openTestStore(t)
	ctx := context.Background()

	var got []string
	cancel := st.Subscribe(func(key string) { got = append(got, key) })

	if err := st.Set(ctx, KeyRules, []byte(`[]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := st.Remove(ctx, KeyRules); err != nil {
		t.Fatalf("remove: %v", err)
	}
	cancel()
	if err := st.Set(ctx, KeyRules, []byte(`[]`)); err != nil {
		t.Fatalf("set after cancel: %v", err)
	}

	if len(got) != 2 || got[0] != KeyRules || got[1] != KeyRules {
		t.Fatalf("notifications=%v, want two %q", got, KeyRules)
	}
}

func TestMemoryStoreDouble(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if err := m.Set(ctx, KeyDailyStats, []byte(`{}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	m.FailWrites = true
	if err := m.Set(ctx, KeyDailyStats, []byte(`{"x":1}`)); err == nil {
		t.Fatalf("expected write failure")
	}
	v, ok, err := m.Get(ctx, KeyDailyStats)
	if err != nil || !ok || string(v) != `{}` {
		t.Fatalf("failed write must not clobber: %q ok=%v err=%v", v, ok, err)
	}
}
