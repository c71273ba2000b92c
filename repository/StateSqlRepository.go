package repository

import (
	"database/sql"
	"errors"
	"time"

	"luxeStore/models"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type StateSqlRepo struct {
	db *sqlx.DB
}

func NewStateSqlRepository(conn *sqlx.DB) (StateRepository, error) {
	if conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := conn.Ping()
	if err != nil {
		return nil, err
	}
	return &StateSqlRepo{
		db: conn,
	}, nil
}

func (s *StateSqlRepo) LoadState(name string) (state models.PersistedState, exists bool, err error) {
	var data string
	err = s.db.Get(&data, s.db.Rebind("SELECT data FROM session_state WHERE name = ?"), name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = nil
		} else {
			logrus.Errorf("LoadState: %v", err)
			err = models.ErrServerError
		}
		return
	}
	state, exists = decodeState(name, []byte(data))
	return
}

func (s *StateSqlRepo) SaveState(name string, state models.PersistedState) (err error) {
	data, err := encodeState(state)
	if err != nil {
		logrus.Errorf("SaveState: Marshal: %v", err)
		err = models.ErrServerError
		return
	}
	// ON CONFLICT upserts work the same on postgres and sqlite >= 3.24
	_, err = s.db.Exec(s.db.Rebind(`INSERT INTO session_state (name, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`),
		name, string(data), time.Now().UTC())
	if err != nil {
		logrus.Errorf("SaveState: %v", err)
		err = models.ErrServerError
	}
	return
}

func (s *StateSqlRepo) DeleteState(name string) (err error) {
	_, err = s.db.Exec(s.db.Rebind("DELETE FROM session_state WHERE name = ?"), name)
	if err != nil {
		logrus.Errorf("DeleteState: %v", err)
		err = models.ErrServerError
	}
	return
}
