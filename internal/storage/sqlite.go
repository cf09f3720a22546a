package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"characli/internal/model"

	_ "modernc.org/sqlite"
)

const (
	dbFile = "characli.db"

	// Secure file permissions - owner read/write only
	secureFileMode = 0600 // -rw-------
	secureDirMode  = 0700 // drwx------

	// historyLimit caps the number of fetch records kept locally
	historyLimit = 100
)

// ensureSecureFile creates a file with secure permissions if it doesn't exist,
// or verifies/fixes permissions if it does exist. This prevents a TOCTOU race
// condition where the file could be created with insecure default permissions.
func ensureSecureFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, secureFileMode)
		if err != nil {
			return fmt.Errorf("failed to create secure file: %w", err)
		}
		f.Close()
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}

	if info.Mode().Perm() != secureFileMode {
		if err := os.Chmod(path, secureFileMode); err != nil {
			return fmt.Errorf("failed to set secure permissions: %w", err)
		}
	}
	return nil
}

// SQLiteStorage is the local store: the catalog cache (last successful
// fetch), favorites, and fetch history.
type SQLiteStorage struct {
	db *sql.DB
}

// NewStorage opens the store under ~/.characli, creating it on first use.
func NewStorage() (*SQLiteStorage, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	dataDir := filepath.Join(homeDir, ".characli")
	if err := os.MkdirAll(dataDir, secureDirMode); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dataDir, dbFile)
	if err := ensureSecureFile(dbPath); err != nil {
		return nil, err
	}

	return Open(dbPath)
}

// Open opens (or creates) the store at an explicit database path.
func Open(dbPath string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLiteStorage{db: db}

	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func (s *SQLiteStorage) initSchema() error {
	schema := `
	-- Catalog cache: the last successfully fetched character collection
	CREATE TABLE IF NOT EXISTS characters (
		id TEXT PRIMARY KEY,
		variation_id TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL,
		avatar TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL,
		dont_show INTEGER NOT NULL DEFAULT 0,
		first_message TEXT NOT NULL DEFAULT '',
		cost INTEGER NOT NULL DEFAULT 0,
		costs TEXT NOT NULL DEFAULT '[]',
		state TEXT NOT NULL DEFAULT '',
		accept_photos INTEGER NOT NULL DEFAULT 0,
		should_return_ads INTEGER NOT NULL DEFAULT 0,
		description TEXT NOT NULL DEFAULT '',
		voice_id TEXT NOT NULL DEFAULT '',
		chats_count INTEGER NOT NULL DEFAULT 0,
		rating REAL NOT NULL DEFAULT 0,
		position INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_characters_position ON characters(position);

	-- Favorites
	CREATE TABLE IF NOT EXISTS favorites (
		character_id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		added_at DATETIME NOT NULL
	);

	-- Fetch history
	CREATE TABLE IF NOT EXISTS fetch_history (
		id TEXT PRIMARY KEY,
		timestamp DATETIME NOT NULL,
		endpoint TEXT NOT NULL,
		status TEXT NOT NULL,
		item_count INTEGER NOT NULL DEFAULT 0,
		duration_ms INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_fetch_history_timestamp ON fetch_history(timestamp DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// Catalog cache
// =============================================================================

// ReplaceCatalog replaces the cached collection with the given one,
// preserving server order.
func (s *SQLiteStorage) ReplaceCatalog(characters []model.Character) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM characters"); err != nil {
		return err
	}

	for i, ch := range characters {
		costsJSON, err := json.Marshal(ch.Costs)
		if err != nil {
			return fmt.Errorf("failed to encode cost tiers: %w", err)
		}

		_, err = tx.Exec(`
			INSERT INTO characters (
				id, variation_id, created_at, avatar, name, dont_show,
				first_message, cost, costs, state, accept_photos,
				should_return_ads, description, voice_id, chats_count,
				rating, position
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			ch.ID, ch.VariationID, ch.CreatedAt, ch.Avatar, ch.Name,
			ch.DontShow, ch.FirstMessage, ch.Cost, string(costsJSON),
			ch.State, ch.AcceptPhotos, ch.ShouldReturnAds, ch.Description,
			ch.VoiceID, ch.ChatsCount, ch.Rating, i,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadCatalog returns the cached collection in its original server order.
func (s *SQLiteStorage) LoadCatalog() ([]model.Character, error) {
	rows, err := s.db.Query(`
		SELECT id, variation_id, created_at, avatar, name, dont_show,
		       first_message, cost, costs, state, accept_photos,
		       should_return_ads, description, voice_id, chats_count, rating
		FROM characters
		ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	characters := []model.Character{}
	for rows.Next() {
		var ch model.Character
		var costsJSON string

		err := rows.Scan(
			&ch.ID, &ch.VariationID, &ch.CreatedAt, &ch.Avatar, &ch.Name,
			&ch.DontShow, &ch.FirstMessage, &ch.Cost, &costsJSON,
			&ch.State, &ch.AcceptPhotos, &ch.ShouldReturnAds,
			&ch.Description, &ch.VoiceID, &ch.ChatsCount, &ch.Rating,
		)
		if err != nil {
			return nil, err
		}

		if costsJSON != "" {
			_ = json.Unmarshal([]byte(costsJSON), &ch.Costs)
		}

		characters = append(characters, ch)
	}

	return characters, rows.Err()
}

// =============================================================================
// Favorites
// =============================================================================

// AddFavorite pins a character. Adding an existing favorite is a no-op.
func (s *SQLiteStorage) AddFavorite(fav model.Favorite) error {
	_, err := s.db.Exec(`
		INSERT INTO favorites (character_id, name, added_at)
		VALUES (?, ?, ?)
		ON CONFLICT(character_id) DO NOTHING`,
		fav.CharacterID, fav.Name, fav.AddedAt)
	return err
}

// RemoveFavorite unpins a character by id.
func (s *SQLiteStorage) RemoveFavorite(characterID string) error {
	_, err := s.db.Exec("DELETE FROM favorites WHERE character_id = ?", characterID)
	return err
}

// ListFavorites returns favorites, most recently added first.
func (s *SQLiteStorage) ListFavorites() ([]model.Favorite, error) {
	rows, err := s.db.Query(`
		SELECT character_id, name, added_at
		FROM favorites
		ORDER BY added_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	favorites := []model.Favorite{}
	for rows.Next() {
		var fav model.Favorite
		if err := rows.Scan(&fav.CharacterID, &fav.Name, &fav.AddedAt); err != nil {
			return nil, err
		}
		favorites = append(favorites, fav)
	}

	return favorites, rows.Err()
}

// IsFavorite reports whether the character is pinned.
func (s *SQLiteStorage) IsFavorite(characterID string) (bool, error) {
	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM favorites WHERE character_id = ?", characterID,
	).Scan(&count)
	return count > 0, err
}

// =============================================================================
// Fetch history
// =============================================================================

// AddFetchRecord appends a fetch record and enforces the history cap.
func (s *SQLiteStorage) AddFetchRecord(rec model.FetchRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO fetch_history (id, timestamp, endpoint, status, item_count, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Timestamp, rec.Endpoint, rec.Status, rec.ItemCount, rec.DurationMs)
	if err != nil {
		return err
	}

	// Enforce the limit by deleting oldest entries
	_, err = tx.Exec(`
		DELETE FROM fetch_history
		WHERE id NOT IN (
			SELECT id FROM fetch_history ORDER BY timestamp DESC LIMIT ?
		)`, historyLimit)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// LoadFetchHistory returns fetch records, newest first.
func (s *SQLiteStorage) LoadFetchHistory() ([]model.FetchRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, timestamp, endpoint, status, item_count, duration_ms
		FROM fetch_history
		ORDER BY timestamp DESC
		LIMIT ?`, historyLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []model.FetchRecord{}
	for rows.Next() {
		var rec model.FetchRecord
		err := rows.Scan(&rec.ID, &rec.Timestamp, &rec.Endpoint,
			&rec.Status, &rec.ItemCount, &rec.DurationMs)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// ClearFetchHistory removes all fetch records.
func (s *SQLiteStorage) ClearFetchHistory() error {
	_, err := s.db.Exec("DELETE FROM fetch_history")
	return err
}
