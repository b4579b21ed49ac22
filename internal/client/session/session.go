// Package session owns the console's credentials. Login stores them, logout
// clears them, and every outgoing request reads the token through the
// manager instead of poking at storage directly.
package session

import (
	"os"
	"path/filepath"
	"sync"

	bolt "go.etcd.io/bbolt"
)

var (
	bucketSession = []byte("session")
	keyToken      = []byte("token")
	keyUsername   = []byte("username")
)

type Manager struct {
	mu       sync.Mutex
	db       *bolt.DB
	token    string
	username string
}

// Open loads any persisted session from the state file, creating it (and its
// directory) on first use.
func Open(path string) (*Manager, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, err
		}
	}
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, err
	}

	m := &Manager{db: db}
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSession)
		if b == nil {
			return nil
		}
		m.token = string(b.Get(keyToken))
		m.username = string(b.Get(keyUsername))
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return m, nil
}

func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *Manager) Username() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.username
}

func (m *Manager) LoggedIn() bool {
	return m.Token() != ""
}

// SetCredentials stores the bearer token and username from a successful
// login, in memory and in the state file.
func (m *Manager) SetCredentials(token, username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.username = username
	return m.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketSession)
		if err != nil {
			return err
		}
		if err := b.Put(keyToken, []byte(token)); err != nil {
			return err
		}
		return b.Put(keyUsername, []byte(username))
	})
}

// Clear wipes the session; the next request goes out unauthenticated.
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.username = ""
	return m.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketSession); err != nil && err != bolt.ErrBucketNotFound {
			return err
		}
		return nil
	})
}

func (m *Manager) Close() error {
	return m.db.Close()
}
