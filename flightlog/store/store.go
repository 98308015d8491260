package store

import (
	"context"
	"database/sql"
	"errors"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a landing id does not exist.
var ErrNotFound = errors.New("landing not found")

type Landing struct {
	ID     int     `json:"id"`
	BodyID int     `json:"body_id"`
	Kind   string  `json:"kind"`
	Time   float64 `json:"time"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	VX     float64 `json:"vx"`
	VY     float64 `json:"vy"`
}

const schema = `
CREATE TABLE IF NOT EXISTS landings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	body_id INTEGER NOT NULL,
	kind TEXT NOT NULL,
	time REAL NOT NULL,
	x REAL NOT NULL,
	y REAL NOT NULL,
	vx REAL NOT NULL,
	vy REAL NOT NULL
);`

type Store struct {
	db *sql.DB
}

// Open opens the SQLite database at path and makes sure the schema exists.
// Use ":memory:" for a throwaway database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// an in-memory database lives and dies with its single connection
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Insert(ctx context.Context, l Landing) (Landing, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO landings (body_id, kind, time, x, y, vx, vy) VALUES (?, ?, ?, ?, ?, ?, ?)",
		l.BodyID, l.Kind, l.Time, l.X, l.Y, l.VX, l.VY)
	if err != nil {
		return Landing{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Landing{}, err
	}
	l.ID = int(id)
	return l, nil
}

func (s *Store) List(ctx context.Context) ([]Landing, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, body_id, kind, time, x, y, vx, vy FROM landings ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Landing{}
	for rows.Next() {
		var l Landing
		if err := rows.Scan(&l.ID, &l.BodyID, &l.Kind, &l.Time, &l.X, &l.Y, &l.VX, &l.VY); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id int) (Landing, error) {
	var l Landing
	err := s.db.QueryRowContext(ctx, "SELECT id, body_id, kind, time, x, y, vx, vy FROM landings WHERE id = ?", id).
		Scan(&l.ID, &l.BodyID, &l.Kind, &l.Time, &l.X, &l.Y, &l.VX, &l.VY)
	if errors.Is(err, sql.ErrNoRows) {
		return Landing{}, ErrNotFound
	}
	return l, err
}

func (s *Store) Delete(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM landings WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
