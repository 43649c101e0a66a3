package tokenstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// sessionEntry is a single key/value row of the sqlite session store
type sessionEntry struct {
	Key   string `gorm:"primaryKey;type:varchar(128)"`
	Value string `gorm:"type:text"`
}

func (sessionEntry) TableName() string {
	return "sessions"
}

// SQLiteStore persists sessions in a local sqlite file. It exists for
// headless machines (CI, servers) where no OS keyring is available.
type SQLiteStore struct {
	db *gorm.DB
}

// DefaultSQLitePath returns ~/.config/schedulr/sessions.db
func DefaultSQLitePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "schedulr", "sessions.db"), nil
}

// OpenSQLite opens (creating if needed) the sqlite session store at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	if err := db.AutoMigrate(&sessionEntry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate session store: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Save(env string, session Session) error {
	entries := []sessionEntry{
		{Key: tokenKey(env), Value: session.Token},
		{Key: userKey(env), Value: string(session.User)},
	}

	// Both rows are written in one transaction so a reader never sees a
	// half-written session.
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&entries).Error
	})
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load(env string) (Session, error) {
	token, ok, err := s.get(tokenKey(env))
	if err != nil || !ok {
		return Session{}, err
	}

	user, ok, err := s.get(userKey(env))
	if err != nil || !ok {
		return Session{}, err
	}

	if !validSession(token, []byte(user)) {
		return Session{}, nil
	}

	return Session{Token: token, User: []byte(user)}, nil
}

func (s *SQLiteStore) Clear(env string) error {
	err := s.db.
		Where("key IN ?", []string{tokenKey(env), userKey(env)}).
		Delete(&sessionEntry{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) get(key string) (string, bool, error) {
	var entry sessionEntry
	if err := s.db.First(&entry, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	return entry.Value, true, nil
}
