package auth

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

var bucketUsers = []byte("users")

// User owns a set of API keys. Only salted hashes of key secrets are
// stored; the secret itself is shown once at creation.
type User struct {
	ID        uuid.UUID   `json:"id"`
	Username  string      `json:"username"`
	CreatedAt time.Time   `json:"created_at"`
	Keys      []KeyRecord `json:"api_keys"`
}

// KeyRecord is one issued API key: its hashing salt and hash, never the
// secret.
type KeyRecord struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Salt      string    `json:"salt"`
	Hash      string    `json:"hash"`
}

// BoltStore persists users in an embedded bbolt file, keyed by username.
type BoltStore struct {
	db *bolt.DB
}

// OpenBoltStore opens (creating if needed) the auth database in dataDir.
func OpenBoltStore(dataDir string) (*BoltStore, error) {
	db, err := bolt.Open(filepath.Join(dataDir, "auth.db"), 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Join(ErrStoreFailed, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketUsers)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Join(ErrStoreFailed, err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying database file.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// Find returns the user with the given username, or ErrUserNotFound.
func (s *BoltStore) Find(username string) (*User, error) {
	var user User
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketUsers).Get([]byte(username))
		if data == nil {
			return ErrUserNotFound
		}
		return json.Unmarshal(data, &user)
	})
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.Join(ErrStoreFailed, err)
	}
	return &user, nil
}

// Save upserts the user record.
func (s *BoltStore) Save(user *User) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(user)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketUsers).Put([]byte(user.Username), data)
	})
	if err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}
