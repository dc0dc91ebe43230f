package settings

import (
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/sangeetx/sangeetx/internal/api"
	"github.com/sangeetx/sangeetx/internal/db"
)

// QueueState is the play queue saved between sessions.
type QueueState struct {
	CurrentIndex int
	RepeatMode   string
	Shuffle      bool
	Songs        []api.Song
}

func getQueue(sqlDB *sql.DB) (*QueueState, error) {
	state := &QueueState{CurrentIndex: -1, RepeatMode: "none"}
	row := sqlDB.QueryRow(`SELECT current_index, repeat_mode, shuffle FROM queue_state WHERE id = 1`)
	err := row.Scan(&state.CurrentIndex, &state.RepeatMode, &state.Shuffle)
	if errors.Is(err, sql.ErrNoRows) {
		return state, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := sqlDB.Query(`SELECT data FROM queue_songs ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var s api.Song
		if err := json.Unmarshal([]byte(data), &s); err != nil {
			// Skip rows written by an incompatible version.
			continue
		}
		state.Songs = append(state.Songs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if state.CurrentIndex >= len(state.Songs) {
		state.CurrentIndex = len(state.Songs) - 1
	}
	return state, nil
}

func saveQueue(sqlDB *sql.DB, state QueueState) error {
	return db.WithTx(sqlDB, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO queue_state (id, current_index, repeat_mode, shuffle)
			VALUES (1, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				current_index = excluded.current_index,
				repeat_mode = excluded.repeat_mode,
				shuffle = excluded.shuffle
		`, state.CurrentIndex, state.RepeatMode, state.Shuffle)
		if err != nil {
			return err
		}

		if _, err := tx.Exec(`DELETE FROM queue_songs`); err != nil {
			return err
		}

		stmt, err := tx.Prepare(`INSERT INTO queue_songs (position, song_id, data) VALUES (?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, s := range state.Songs {
			data, err := json.Marshal(s)
			if err != nil {
				return err
			}
			if _, err := stmt.Exec(i, s.ID, string(data)); err != nil {
				return err
			}
		}
		return nil
	})
}
