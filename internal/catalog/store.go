package catalog

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	_ "modernc.org/sqlite"

	"github.com/SamTurer/travelbuddy-next-mvp/internal/models"
)

// Store is a sqlite-backed catalog. Vibe tags and opening hours are
// stored as JSON text columns; the catalog is read-only during a
// planning run.
type Store struct {
	db *sql.DB
}

// OpenStore opens (or creates) the catalog database at path
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog db: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	// WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set journal mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS pois (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			category TEXT NOT NULL,
			neighborhood TEXT,
			min_minutes INTEGER DEFAULT 0,
			max_minutes INTEGER DEFAULT 0,
			vibes_json TEXT,
			energy_json TEXT,
			description TEXT,
			url TEXT,
			lat REAL DEFAULT 0,
			lng REAL DEFAULT 0,
			hours_json TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create pois table: %w", err)
	}
	return nil
}

// LoadAll returns every catalog place
func (s *Store) LoadAll() ([]models.Place, error) {
	rows, err := s.db.Query(`
		SELECT name, category, neighborhood, min_minutes, max_minutes,
		       vibes_json, energy_json, description, url, lat, lng, hours_json
		FROM pois ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query pois: %w", err)
	}
	defer rows.Close()

	var places []models.Place
	for rows.Next() {
		var p models.Place
		var neighborhood, vibesJSON, energyJSON, description, url, hoursJSON sql.NullString
		if err := rows.Scan(&p.Name, &p.Category, &neighborhood, &p.MinMinutes, &p.MaxMinutes,
			&vibesJSON, &energyJSON, &description, &url, &p.Lat, &p.Lng, &hoursJSON); err != nil {
			return nil, fmt.Errorf("failed to scan poi: %w", err)
		}
		p.Neighborhood = neighborhood.String
		p.Description = description.String
		p.URL = url.String
		if vibesJSON.String != "" {
			if err := json.Unmarshal([]byte(vibesJSON.String), &p.Vibes); err != nil {
				log.Printf("Skipping bad vibes for %s: %v", p.Name, err)
			}
		}
		if energyJSON.String != "" {
			if err := json.Unmarshal([]byte(energyJSON.String), &p.Energy); err != nil {
				log.Printf("Skipping bad energy tags for %s: %v", p.Name, err)
			}
		}
		if hoursJSON.String != "" {
			var h models.OpeningHours
			if err := json.Unmarshal([]byte(hoursJSON.String), &h); err != nil {
				log.Printf("Skipping bad hours for %s: %v", p.Name, err)
			} else {
				p.Hours = &h
			}
		}
		places = append(places, p)
	}
	return places, rows.Err()
}

// Seed inserts places, replacing rows with the same name. Used to
// populate a fresh db from a JSON catalog file.
func (s *Store) Seed(places []models.Place) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO pois
			(name, category, neighborhood, min_minutes, max_minutes,
			 vibes_json, energy_json, description, url, lat, lng, hours_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare seed statement: %w", err)
	}
	defer stmt.Close()

	for _, p := range places {
		vibesJSON := marshalOrEmpty(p.Vibes)
		energyJSON := marshalOrEmpty(p.Energy)
		hoursJSON := ""
		if p.Hours != nil {
			hoursJSON = marshalOrEmpty(p.Hours)
		}
		if _, err := stmt.Exec(p.Name, p.Category, p.Neighborhood, p.MinMinutes, p.MaxMinutes,
			vibesJSON, energyJSON, p.Description, p.URL, p.Lat, p.Lng, hoursJSON); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to seed poi %s: %w", p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}
	return nil
}

// Count returns the number of catalog places
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM pois").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count pois: %w", err)
	}
	return n, nil
}

func marshalOrEmpty(v interface{}) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
