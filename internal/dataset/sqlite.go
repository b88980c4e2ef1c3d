package dataset

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"kina/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS budget_records (
    id               TEXT PRIMARY KEY,
    name             TEXT NOT NULL,
    parent_id        TEXT,
    category         TEXT NOT NULL,
    allocation_2024  INTEGER NOT NULL,
    allocation_2025  INTEGER NOT NULL,
    allocation_2026  INTEGER NOT NULL,
    population       INTEGER,
    description      TEXT,
    position         INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_records_parent ON budget_records(parent_id);
CREATE INDEX IF NOT EXISTS idx_records_category ON budget_records(category);
`

// OpenSQLite loads the full record set from a SQLite database written
// by Export. Like the other sources it is all-or-nothing: any read or
// scan failure yields ErrDataUnavailable, never a partial set.
func OpenSQLite(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)")
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrDataUnavailable, path, err)
	}
	defer func() { _ = db.Close() }()

	rows, err := db.Query(`SELECT id, name, parent_id, category,
		allocation_2024, allocation_2025, allocation_2026, population, description
		FROM budget_records ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying records: %v", ErrDataUnavailable, err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.BudgetRecord
	for rows.Next() {
		var r model.BudgetRecord
		var parentID, description sql.NullString
		var population sql.NullInt64
		if err := rows.Scan(&r.ID, &r.Name, &parentID, &r.Category,
			&r.Allocation2024, &r.Allocation2025, &r.Allocation2026,
			&population, &description); err != nil {
			return nil, fmt.Errorf("%w: scanning record: %v", ErrDataUnavailable, err)
		}
		r.ParentID = parentID.String
		r.Description = description.String
		r.Population = population.Int64
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading records: %v", ErrDataUnavailable, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s holds no records", ErrDataUnavailable, path)
	}

	return New(records)
}

// Export writes the record set to a SQLite database at the given path,
// creating parent directories as needed. Existing rows are replaced.
func Export(s *Store, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating export dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)")
	if err != nil {
		return fmt.Errorf("opening export db: %w", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM budget_records"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO budget_records
		(id, name, parent_id, category, allocation_2024, allocation_2025,
		 allocation_2026, population, description, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for i, r := range s.Records() {
		parentID := sql.NullString{String: r.ParentID, Valid: r.ParentID != ""}
		description := sql.NullString{String: r.Description, Valid: r.Description != ""}
		population := sql.NullInt64{Int64: r.Population, Valid: r.Population > 0}
		if _, err := stmt.Exec(r.ID, r.Name, parentID, string(r.Category),
			r.Allocation2024, r.Allocation2025, r.Allocation2026,
			population, description, i); err != nil {
			return fmt.Errorf("writing record %s: %w", r.ID, err)
		}
	}

	return tx.Commit()
}
