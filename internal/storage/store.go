package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ErrMalformedRecord is returned when a record file holds neither the four
// field nor the legacy two field layout.
var ErrMalformedRecord = errors.New("storage: malformed growth record")

// Record is the persisted progress of one tree.
type Record struct {
	Seed           int64
	Ticks          uint64
	Created        time.Time
	SecondsPerTick float64
}

// Named reports whether the record paces growth against wall-clock time.
func (r Record) Named() bool {
	return r.SecondsPerTick > 0
}

// Format renders r as "seed ticks created secondsPerTick".
func Format(r Record) string {
	return fmt.Sprintf("%d %d %d %.6f", r.Seed, r.Ticks, r.Created.Unix(), r.SecondsPerTick)
}

// Parse reads either the four field layout or the legacy "seed count" layout.
func Parse(s string) (Record, error) {
	fields := strings.Fields(s)

	switch len(fields) {
	case 2, 4:
	default:
		return Record{}, fmt.Errorf("%d fields: %w", len(fields), ErrMalformedRecord)
	}

	seed, err := strconv.ParseInt(fields[0], 0, 64)
	if err != nil {
		return Record{}, fmt.Errorf("seed %q: %w", fields[0], ErrMalformedRecord)
	}
	ticks, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("ticks %q: %w", fields[1], ErrMalformedRecord)
	}

	rec := Record{Seed: seed, Ticks: ticks}
	if len(fields) == 2 {
		return rec, nil
	}

	created, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("created %q: %w", fields[2], ErrMalformedRecord)
	}
	spt, err := strconv.ParseFloat(fields[3], 64)
	if err != nil || spt < 0 {
		return Record{}, fmt.Errorf("seconds per tick %q: %w", fields[3], ErrMalformedRecord)
	}

	rec.Created = time.Unix(created, 0)
	rec.SecondsPerTick = spt
	return rec, nil
}

type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Save(r Record) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(Format(r)), 0644)
}

func (s *Store) Load() (Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Record{}, err
	}

	rec, err := Parse(string(data))
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w", s.path, err)
	}
	return rec, nil
}

// DefaultPath is $XDG_CACHE_HOME/app, then $HOME/.cache/app, then ./app.
func DefaultPath(app string) string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, app)
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".cache", app)
	}
	return app
}
