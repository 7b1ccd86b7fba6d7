// SPDX-FileCopyrightText: © 2025 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package manifest stores the build manifest of a destination
// directory: one record per converted document with its source
// checksum, and one record per batch run. It lets the batch command
// skip sources that did not change since the previous run.
package manifest

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const (
	buildTable    = "build"
	documentTable = "document"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

var schema = []string{
	`CREATE TABLE IF NOT EXISTS document (
		id       integer PRIMARY KEY AUTOINCREMENT,
		name     text NOT NULL UNIQUE,
		checksum text NOT NULL,
		updated  timestamp NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS build (
		id        integer PRIMARY KEY AUTOINCREMENT,
		uid       text NOT NULL,
		created   timestamp NOT NULL,
		source    text NOT NULL,
		documents integer NOT NULL,
		assets    integer NOT NULL
	)`,
}

// Document is the manifest record of one converted document.
type Document struct {
	ID       int       `db:"id" goqu:"skipinsert,skipupdate"`
	Name     string    `db:"name"`
	Checksum string    `db:"checksum"`
	Updated  time.Time `db:"updated"`
}

// Build is the record of one batch run.
type Build struct {
	ID        int       `db:"id" goqu:"skipinsert,skipupdate"`
	UID       string    `db:"uid"`
	Created   time.Time `db:"created" goqu:"skipupdate"`
	Source    string    `db:"source"`
	Documents int       `db:"documents"`
	Assets    int       `db:"assets"`
}

// Manifest is an open manifest database.
type Manifest struct {
	fd *sql.DB
	db *goqu.Database
}

// Open opens, creating it when needed, the manifest database at path.
func Open(path string) (*Manifest, error) {
	dsn := fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(wal)",
		path,
	)
	fd, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	for _, q := range schema {
		if _, err := fd.Exec(q); err != nil {
			fd.Close() //nolint:errcheck
			return nil, err
		}
	}

	return &Manifest{fd: fd, db: goqu.New("sqlite3", fd)}, nil
}

// Close closes the database.
func (m *Manifest) Close() error {
	return m.fd.Close()
}

// GetDocument returns a document record or [ErrNotFound].
func (m *Manifest) GetDocument(name string) (*Document, error) {
	var d Document
	found, err := m.db.From(documentTable).Prepared(true).
		Where(goqu.C("name").Eq(name)).
		ScanStruct(&d)

	switch {
	case err != nil:
		return nil, err
	case !found:
		return nil, ErrNotFound
	}

	return &d, nil
}

// Changed reports whether a source checksum differs from the recorded
// one. An unknown name reports as changed.
func (m *Manifest) Changed(name, checksum string) (bool, error) {
	d, err := m.GetDocument(name)
	if errors.Is(err, ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return d.Checksum != checksum, nil
}

// RecordDocument stores a document's source checksum, replacing any
// previous record with the same name.
func (m *Manifest) RecordDocument(name, checksum string) error {
	res, err := m.db.Update(documentTable).Prepared(true).
		Set(goqu.Record{
			"checksum": checksum,
			"updated":  time.Now().UTC(),
		}).
		Where(goqu.C("name").Eq(name)).
		Executor().Exec()
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return nil
	}

	_, err = m.db.Insert(documentTable).Prepared(true).
		Rows(Document{
			Name:     name,
			Checksum: checksum,
			Updated:  time.Now().UTC(),
		}).
		Executor().Exec()
	return err
}

// Documents iterates over every document record, most recently
// updated first.
func (m *Manifest) Documents() Iterator[Document] {
	return scan[Document](
		m.db.From(documentTable).Prepared(true).
			Order(goqu.C("updated").Desc(), goqu.C("name").Asc()),
	)
}

// AddBuild records a finished batch run and returns its UID.
func (m *Manifest) AddBuild(source string, documents, assets int) (string, error) {
	b := Build{
		UID:       uuid.NewString(),
		Created:   time.Now().UTC(),
		Source:    source,
		Documents: documents,
		Assets:    assets,
	}

	_, err := m.db.Insert(buildTable).Prepared(true).
		Rows(b).
		Executor().Exec()
	return b.UID, err
}

// LastBuild returns the most recent build record or [ErrNotFound].
func (m *Manifest) LastBuild() (*Build, error) {
	var b Build
	found, err := m.db.From(buildTable).Prepared(true).
		Order(goqu.C("id").Desc()).
		Limit(1).
		ScanStruct(&b)

	switch {
	case err != nil:
		return nil, err
	case !found:
		return nil, ErrNotFound
	}

	return &b, nil
}

// Checksum returns the hex encoded sha256 checksum of a file.
func Checksum(path string) (string, error) {
	fd, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer fd.Close() //nolint:errcheck

	h := sha256.New()
	if _, err := io.Copy(h, fd); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
