// Package oracle provides a SQL cross-check database for the scenario
// runner. It loads the fixture tables into an in-memory SQLite
// database so that a scenario's reference SQL can be executed and its
// result compared against the in-memory query operators.
package oracle

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/relforge/scottql/internal/fixture"
	"github.com/relforge/scottql/internal/scenario"
)

//go:embed schema.sql
var schemaSQL string

// DB wraps the seeded in-memory reference database.
type DB struct {
	db *sql.DB
}

// Open creates a fresh in-memory database, applies the schema, and
// seeds it from the fixture set. Each Open returns an isolated
// database; callers own Close.
func Open(fx *fixture.Set) (*DB, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps the :memory: database alive and
	// avoids SQLITE_BUSY from concurrent writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	if err := seed(db, fx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed fixture data: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.db == nil {
		return nil
	}
	return d.db.Close()
}

// seed inserts the fixture rows inside one transaction.
func seed(db *sql.DB, fx *fixture.Set) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, d := range fx.Departments() {
		if _, err := tx.Exec("INSERT INTO dept (deptno, dname, loc) VALUES (?, ?, ?)", d.DeptNo, d.Name, d.Location); err != nil {
			return fmt.Errorf("insert dept %d: %w", d.DeptNo, err)
		}
	}

	for _, e := range fx.Employees() {
		var comm any
		if v, ok := e.Commission.Get(); ok {
			comm = v
		}
		if _, err := tx.Exec("INSERT INTO emp (ename, job, deptno, sal, comm) VALUES (?, ?, ?, ?, ?)",
			e.Name, e.Job, e.DeptNo, e.Salary, comm); err != nil {
			return fmt.Errorf("insert emp %s: %w", e.Name, err)
		}
	}

	for _, g := range fx.SalaryGrades() {
		if _, err := tx.Exec("INSERT INTO salgrade (grade, losal, hisal) VALUES (?, ?, ?)", g.Grade, g.Low, g.High); err != nil {
			return fmt.Errorf("insert salgrade %d: %w", g.Grade, err)
		}
	}

	return tx.Commit()
}

// Query executes a reference SQL statement and returns its full result
// set. []byte cells are converted to string for comparability.
func (d *DB) Query(ctx context.Context, query string, args ...any) (*scenario.ResultSet, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("get columns: %w", err)
	}

	rs := scenario.NewResultSet(columns...)
	for rows.Next() {
		values := make([]any, len(columns))
		valuePtrs := make([]any, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		rs.Append(values...)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return rs, nil
}
