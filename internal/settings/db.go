package settings

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/sangeetx/sangeetx/internal/db"
)

const (
	appName      = "sangeetx"
	dbFileName   = "sangeetx.db"
	saveDebounce = 500 * time.Millisecond
)

// DB is a Store backed by SQLite. It also keeps the saved play queue.
type DB struct {
	db    *sql.DB
	watch watchers

	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   *QueueState
}

var _ Store = (*DB)(nil)

// Open opens the settings database under the XDG data directory.
func Open() (*DB, error) {
	dbPath, err := xdg.DataFile(filepath.Join(appName, dbFileName))
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}
	return OpenPath(dbPath)
}

// OpenPath opens the settings database at path. Use ":memory:" in tests.
func OpenPath(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if path == ":memory:" {
		// Each connection to :memory: is a separate database.
		sqlDB.SetMaxOpenConns(1)
	}
	if err := initSchema(sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("init settings schema: %w", err)
	}
	return &DB{db: sqlDB}, nil
}

// Close flushes any pending queue save and closes the database.
func (d *DB) Close() error {
	d.saveMu.Lock()
	if d.saveTimer != nil {
		d.saveTimer.Stop()
	}
	pending := d.pending
	d.pending = nil
	d.saveMu.Unlock()

	if pending != nil {
		_ = saveQueue(d.db, *pending)
	}
	return d.db.Close()
}

func (d *DB) Get(key string) (string, bool) {
	var v string
	err := d.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&v)
	if err != nil {
		return "", false
	}
	return v, true
}

func (d *DB) Set(key, value string) error {
	_, err := d.db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("save setting %s: %w", key, err)
	}
	d.watch.notify(key, value)
	return nil
}

func (d *DB) Subscribe(fn func(key, value string)) func() {
	return d.watch.add(fn)
}

// GetQueue returns the saved queue, or an empty state with index -1.
func (d *DB) GetQueue() (*QueueState, error) {
	return getQueue(d.db)
}

// SaveQueue persists the queue after a short debounce; rapid changes
// collapse into one write.
func (d *DB) SaveQueue(state QueueState) {
	d.saveMu.Lock()
	defer d.saveMu.Unlock()

	d.pending = &state

	if d.saveTimer != nil {
		d.saveTimer.Stop()
	}

	d.saveTimer = time.AfterFunc(saveDebounce, func() {
		d.saveMu.Lock()
		pending := d.pending
		d.pending = nil
		d.saveMu.Unlock()

		if pending != nil {
			_ = saveQueue(d.db, *pending)
		}
	})
}

func initSchema(sqlDB *sql.DB) error {
	return db.WithTx(sqlDB, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			CREATE TABLE IF NOT EXISTS settings (
				key TEXT PRIMARY KEY,
				value TEXT NOT NULL
			);

			CREATE TABLE IF NOT EXISTS queue_state (
				id INTEGER PRIMARY KEY CHECK (id = 1),
				current_index INTEGER NOT NULL,
				repeat_mode TEXT NOT NULL DEFAULT 'none',
				shuffle INTEGER NOT NULL DEFAULT 0
			);

			CREATE TABLE IF NOT EXISTS queue_songs (
				position INTEGER PRIMARY KEY,
				song_id TEXT NOT NULL,
				data TEXT NOT NULL
			);
		`)
		return err
	})
}
