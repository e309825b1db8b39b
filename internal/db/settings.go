package db

import (
	"database/sql"
	"errors"

	"github.com/banshee-data/enlighten/internal/config"
)

// GetString returns the raw value stored under section/name. ok is false if
// the key has never been written.
func (db *DB) GetString(section, name string) (string, bool, error) {
	var value string
	err := db.QueryRow(`SELECT value FROM settings WHERE section = ? AND name = ?`, section, name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (db *DB) GetBool(section, name string) (bool, bool, error) {
	s, ok, err := db.GetString(section, name)
	if err != nil || !ok {
		return false, ok, err
	}
	b, err := config.ParseBool(s)
	if err != nil {
		return false, true, err
	}
	return b, true, nil
}

func (db *DB) GetFloat(section, name string) (float64, bool, error) {
	s, ok, err := db.GetString(section, name)
	if err != nil || !ok {
		return 0, ok, err
	}
	f, err := config.ParseFloat(s)
	if err != nil {
		return 0, true, err
	}
	return f, true, nil
}

// Set writes value under section/name, replacing any previous value.
func (db *DB) Set(section, name string, value any) error {
	s, err := config.FormatValue(value)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
		INSERT INTO settings (section, name, value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (section, name) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		section, name, s,
	)
	return err
}

// Settings returns every key in section.
func (db *DB) Settings(section string) (map[string]string, error) {
	rows, err := db.Query(`SELECT name, value FROM settings WHERE section = ? ORDER BY name`, section)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		out[name] = value
	}
	return out, rows.Err()
}

// AllSettings returns every persisted key grouped by section.
func (db *DB) AllSettings() (map[string]map[string]string, error) {
	rows, err := db.Query(`SELECT section, name, value FROM settings ORDER BY section, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]map[string]string)
	for rows.Next() {
		var section, name, value string
		if err := rows.Scan(&section, &name, &value); err != nil {
			return nil, err
		}
		if out[section] == nil {
			out[section] = make(map[string]string)
		}
		out[section][name] = value
	}
	return out, rows.Err()
}
