package sink

import (
	"database/sql"

	"github.com/lsftools/lsbacct/pkg/models"
	"github.com/pkg/errors"

	// sqlite driver
	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS acct_records (
	line       INTEGER NOT NULL,
	event_type TEXT NOT NULL,
	version    TEXT NOT NULL,
	event_time INTEGER NOT NULL,
	user_name  TEXT NOT NULL,
	record     TEXT NOT NULL
)`

const sqliteInsert = `INSERT INTO acct_records (line, event_type, version, event_time, user_name, record) VALUES (?, ?, ?, ?, ?, ?)`

// SQLiteSink inserts records as Row into acct_records table. All rows are
// committed in one transaction by Close.
type SQLiteSink struct {
	db   *sql.DB
	tx   *sql.Tx
	stmt *sql.Stmt
}

// NewSQLiteSink is constructor of SQLiteSink
func NewSQLiteSink(path string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "Fail to open sqlite: %s", path)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "Fail to create acct_records table")
	}

	tx, err := db.Begin()
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "Fail to begin transaction")
	}

	stmt, err := tx.Prepare(sqliteInsert)
	if err != nil {
		tx.Rollback()
		db.Close()
		return nil, errors.Wrap(err, "Fail to prepare insert")
	}

	return &SQLiteSink{db: db, tx: tx, stmt: stmt}, nil
}

// Write of SQLiteSink
func (x *SQLiteSink) Write(rec *models.Record) error {
	row, err := NewRow(rec)
	if err != nil {
		return err
	}

	if _, err := x.stmt.Exec(row.Line, row.EventType, row.Version, row.EventTime, row.UserName, row.Record); err != nil {
		return errors.Wrapf(err, "Fail to insert record at line %d", rec.Line)
	}
	return nil
}

// Close commits inserted rows.
func (x *SQLiteSink) Close() error {
	defer x.db.Close()
	x.stmt.Close()

	if err := x.tx.Commit(); err != nil {
		return errors.Wrap(err, "Fail to commit sqlite transaction")
	}
	return nil
}
