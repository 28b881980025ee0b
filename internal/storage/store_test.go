package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestStoreSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", "bonsai")
	st := New(path)

	rec := Record{
		Seed:           42,
		Ticks:          1234,
		Created:        time.Unix(1700000000, 0),
		SecondsPerTick: 0.5,
	}
	if err := st.Save(rec); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(data) != "42 1234 1700000000 0.500000" {
		t.Errorf("unexpected file contents %q", data)
	}

	got, err := st.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Seed != rec.Seed || got.Ticks != rec.Ticks || got.SecondsPerTick != rec.SecondsPerTick {
		t.Errorf("expected %+v, got %+v", rec, got)
	}
	if !got.Created.Equal(rec.Created) {
		t.Errorf("expected created %v, got %v", rec.Created, got.Created)
	}
	if !got.Named() {
		t.Error("expected a named record")
	}
}

func TestLoadMissing(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "missing"))
	if _, err := st.Load(); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Record
		err   bool
	}{
		{"canonical", "7 99 1600000000 2.000000", Record{Seed: 7, Ticks: 99, Created: time.Unix(1600000000, 0), SecondsPerTick: 2}, false},
		{"trailing newline", "7 99 1600000000 2.000000\n", Record{Seed: 7, Ticks: 99, Created: time.Unix(1600000000, 0), SecondsPerTick: 2}, false},
		{"legacy", "12 340", Record{Seed: 12, Ticks: 340}, false},
		{"negative seed", "-5 1 0 0.000000", Record{Seed: -5, Ticks: 1, Created: time.Unix(0, 0)}, false},
		{"empty", "", Record{}, true},
		{"one field", "12", Record{}, true},
		{"three fields", "1 2 3", Record{}, true},
		{"bad ticks", "1 -2 3 0.5", Record{}, true},
		{"bad rate", "1 2 3 fast", Record{}, true},
		{"negative rate", "1 2 3 -0.5", Record{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.err {
				if !errors.Is(err, ErrMalformedRecord) {
					t.Fatalf("expected ErrMalformedRecord, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if got.Seed != tt.want.Seed || got.Ticks != tt.want.Ticks || got.SecondsPerTick != tt.want.SecondsPerTick {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
			if !got.Created.Equal(tt.want.Created) {
				t.Errorf("expected created %v, got %v", tt.want.Created, got.Created)
			}
		})
	}
}

func TestLegacyRecordIsSimple(t *testing.T) {
	rec, err := Parse("3 50")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if rec.Named() {
		t.Error("legacy record should not be named")
	}
	if got := Format(rec); !strings.HasPrefix(got, "3 50 ") || !strings.HasSuffix(got, " 0.000000") {
		t.Errorf("legacy records are written in the four field layout, got %q", got)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	t.Setenv("HOME", "/home/user")
	if got := DefaultPath("bonsai"); got != filepath.Join("/tmp/xdg", "bonsai") {
		t.Errorf("xdg: got %s", got)
	}

	t.Setenv("XDG_CACHE_HOME", "")
	if got := DefaultPath("bonsai"); got != filepath.Join("/home/user", ".cache", "bonsai") {
		t.Errorf("home: got %s", got)
	}

	t.Setenv("HOME", "")
	if got := DefaultPath("bonsai"); got != "bonsai" {
		t.Errorf("fallback: got %s", got)
	}
}
