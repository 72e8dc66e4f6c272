package db

import (
	"database/sql"
	"time"

	"github.com/hollyoak/loom/internal/errors"
	"github.com/hollyoak/loom/internal/prompt"
)

// PutDocument upserts a persisted state document under key.
func PutDocument(db *sql.DB, key, body string) error {
	query := `
		INSERT INTO documents (key, body, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at
	`
	if _, err := db.Exec(query, key, body, time.Now().Unix()); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// GetDocument retrieves a persisted state document. A missing key is not
// an error; ok reports whether the document exists.
func GetDocument(db *sql.DB, key string) (body string, ok bool, err error) {
	row := db.QueryRow(`SELECT body FROM documents WHERE key = ?`, key)
	if err := row.Scan(&body); err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, errors.NewInternal(err)
	}
	return body, true, nil
}

// InsertHistory stores a new history entry.
func InsertHistory(db *sql.DB, e *prompt.HistoryEntry) error {
	query := `
		INSERT INTO history_entries (id, day, clock, summary, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	if _, err := db.Exec(query, e.ID, e.Day, e.Clock, e.Text, e.CreatedAt); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// GetHistoryByID retrieves a single history entry.
func GetHistoryByID(db *sql.DB, id string) (*prompt.HistoryEntry, error) {
	row := db.QueryRow(`
		SELECT id, day, clock, summary, created_at
		FROM history_entries WHERE id = ?
	`, id)

	var e prompt.HistoryEntry
	if err := row.Scan(&e.ID, &e.Day, &e.Clock, &e.Text, &e.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewHistoryNotFound(id)
		}
		return nil, errors.NewInternal(err)
	}
	return &e, nil
}

// ListHistory returns the entries for one day. With newestFirst the most
// recent entry comes first (the list view); otherwise oldest-first (the
// export order). The ULID id breaks created_at ties; ids carry a
// millisecond timestamp, so the tiebreak holds to that precision.
func ListHistory(db *sql.DB, day string, newestFirst bool) ([]prompt.HistoryEntry, error) {
	order := "ASC"
	if newestFirst {
		order = "DESC"
	}
	query := `
		SELECT id, day, clock, summary, created_at
		FROM history_entries WHERE day = ?
		ORDER BY created_at ` + order + `, id ` + order

	rows, err := db.Query(query, day)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	entries := make([]prompt.HistoryEntry, 0)
	for rows.Next() {
		var e prompt.HistoryEntry
		if err := rows.Scan(&e.ID, &e.Day, &e.Clock, &e.Text, &e.CreatedAt); err != nil {
			return nil, errors.NewInternal(err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return entries, nil
}

// DeleteHistory removes one entry by id and reports whether it existed.
func DeleteHistory(db *sql.DB, id string) (bool, error) {
	result, err := db.Exec(`DELETE FROM history_entries WHERE id = ?`, id)
	if err != nil {
		return false, errors.NewInternal(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, errors.NewInternal(err)
	}
	return affected > 0, nil
}

// ClearHistory removes every entry for one day and returns the count.
func ClearHistory(db *sql.DB, day string) (int, error) {
	result, err := db.Exec(`DELETE FROM history_entries WHERE day = ?`, day)
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	return int(affected), nil
}

// PurgeOtherDays removes entries partitioned under any day other than the
// given one and returns the count.
func PurgeOtherDays(db *sql.DB, day string) (int, error) {
	result, err := db.Exec(`DELETE FROM history_entries WHERE day != ?`, day)
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	return int(affected), nil
}
