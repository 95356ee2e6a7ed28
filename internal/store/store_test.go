package store_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/idilsaglam/cabina/internal/logging"
	"github.com/idilsaglam/cabina/internal/model"
	"github.com/idilsaglam/cabina/internal/store"
	"github.com/idilsaglam/cabina/internal/store/jsonstore"
	"github.com/idilsaglam/cabina/internal/store/sqlitestore"
)

func backends(t *testing.T) map[string]store.Backend {
	t.Helper()
	js, err := jsonstore.Open(t.TempDir())
	if err != nil {
		t.Fatalf("jsonstore.Open: %v", err)
	}
	sq, err := sqlitestore.Open(filepath.Join(t.TempDir(), "cabina.sqlite"))
	if err != nil {
		t.Fatalf("sqlitestore.Open: %v", err)
	}
	t.Cleanup(func() { _ = sq.Close() })
	return map[string]store.Backend{"json": js, "sqlite": sq}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	for name, b := range backends(t) {
		a := store.New(b, "cabina_", nil)
		want := model.DefaultTemplate()
		if err := a.Save("template", want); err != nil {
			t.Fatalf("%s: Save: %v", name, err)
		}
		got := store.Load(a, "template", []model.Item(nil))
		if !reflect.DeepEqual(want, got) {
			t.Fatalf("%s: roundtrip mismatch:\nwant: %#v\ngot:  %#v", name, want, got)
		}

		// Overwrite replaces the previous value.
		if err := a.Save("checked", []string{"1"}); err != nil {
			t.Fatalf("%s: Save: %v", name, err)
		}
		if err := a.Save("checked", []string{"2", "3"}); err != nil {
			t.Fatalf("%s: Save: %v", name, err)
		}
		if got := store.Load(a, "checked", []string{}); !reflect.DeepEqual(got, []string{"2", "3"}) {
			t.Fatalf("%s: checked = %v", name, got)
		}
	}
}

func TestLoad_MissingKeyReturnsDefault(t *testing.T) {
	t.Parallel()

	for name, b := range backends(t) {
		if _, err := b.Get("cabina_nothing"); !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("%s: Get missing = %v, want ErrNotFound", name, err)
		}
		a := store.New(b, "cabina_", nil)
		if got := store.Load(a, "nothing", []string{"fallback"}); !reflect.DeepEqual(got, []string{"fallback"}) {
			t.Fatalf("%s: got %v", name, got)
		}
	}
}

func TestLoad_CorruptValueFallsBackSilently(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	js, _ := jsonstore.Open(dir)
	if err := os.WriteFile(filepath.Join(dir, "cabina_template.json"), []byte("[{oops"), 0o644); err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	a := store.New(js, "cabina_", logging.New(&logs, "debug"))
	got := store.Load(a, "template", []model.Item{{ID: "d", Label: "default"}})
	if len(got) != 1 || got[0].ID != "d" {
		t.Fatalf("expected default, got %#v", got)
	}
	if !strings.Contains(logs.String(), "decode failed") {
		t.Fatalf("expected a debug log, got %q", logs.String())
	}
}

func TestAdapter_Prefix(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	js, _ := jsonstore.Open(dir)
	a := store.New(js, "booth2_", nil)
	if err := a.Save("checked", []string{"1"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(dir, "booth2_checked.json"))
	if err != nil {
		t.Fatalf("prefixed file missing: %v", err)
	}
	if !strings.Contains(string(b), "\n  \"1\"\n") {
		t.Fatalf("json file should be indented, got %q", b)
	}
}

func TestJSONStore_RejectsPathKeys(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	js, _ := jsonstore.Open(dir)
	if err := js.Put("b_template", []byte(`["kept"]`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	for _, key := range []string{"a/b_template", "../b_template", ".."} {
		if err := js.Put(key, []byte(`["lost"]`)); err == nil {
			t.Fatalf("Put(%q): expected invalid key error", key)
		}
		if _, err := js.Get(key); err == nil || errors.Is(err, store.ErrNotFound) {
			t.Fatalf("Get(%q) = %v, want invalid key error", key, err)
		}
	}
	b, err := js.Get("b_template")
	if err != nil || !strings.Contains(string(b), "kept") {
		t.Fatalf("b_template overwritten: %q, %v", b, err)
	}
}

func TestSQLite_PersistsAcrossOpen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "cabina.sqlite")
	sq, err := sqlitestore.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := sq.Put("k", []byte(`["a"]`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := sq.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	sq, err = sqlitestore.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer sq.Close()
	got, err := sq.Get("k")
	if err != nil || string(got) != `["a"]` {
		t.Fatalf("Get = %q, %v", got, err)
	}
}
