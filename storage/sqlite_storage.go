package storage

import (
	"database/sql"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

type sqliteStorage struct {
	db   *sql.DB
	path string
}

func openSQLiteStorage(path string) (Storage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "open sqlite storage %s", path)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (k BLOB PRIMARY KEY, v BLOB NOT NULL)`); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create sqlite table")
	}
	return &sqliteStorage{db: db, path: path}, nil
}

func (s *sqliteStorage) WALName() string {
	return s.path
}

func (s *sqliteStorage) Set(k []byte, v []byte) error {
	_, err := s.db.Exec(`INSERT INTO kv (k, v) VALUES (?, ?) ON CONFLICT(k) DO UPDATE SET v = excluded.v`, k, v)
	return err
}

func (s *sqliteStorage) Get(k []byte) ([]byte, error) {
	var v []byte
	err := s.db.QueryRow(`SELECT v FROM kv WHERE k = ?`, k).Scan(&v)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return v, err
}

func (s *sqliteStorage) Delete(k []byte) error {
	_, err := s.db.Exec(`DELETE FROM kv WHERE k = ?`, k)
	return err
}

func (s *sqliteStorage) ForEach(fn func(k, v []byte) error) error {
	rows, err := s.db.Query(`SELECT k, v FROM kv ORDER BY k`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var k, v []byte
		if err := rows.Scan(&k, &v); err != nil {
			return err
		}
		if err := fn(k, v); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (s *sqliteStorage) Close() error {
	return s.db.Close()
}
