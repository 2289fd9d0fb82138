package localstore

import (
	"time"

	bolt "go.etcd.io/bbolt"

	"muaban/pkg/errors"
)

var bucketName = []byte("state")

// Store is the persisted client state: a small key-value file holding
// the session token, username and selected item across restarts.
type Store struct {
	db *bolt.DB
}

func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Internal("failed to open local state store", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.Internal("failed to initialize local state store", err)
	}

	return &Store{db: db}, nil
}

// Get returns the stored value, or an empty string when the key is
// absent.
func (s *Store) Get(key string) (string, error) {
	var value string
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketName).Get([]byte(key)); v != nil {
			value = string(v)
		}
		return nil
	})
	if err != nil {
		return "", errors.Internal("failed to read local state", err)
	}
	return value, nil
}

func (s *Store) Set(key, value string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), []byte(value))
	})
	if err != nil {
		return errors.Internal("failed to write local state", err)
	}
	return nil
}

func (s *Store) Delete(key string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Delete([]byte(key))
	})
	if err != nil {
		return errors.Internal("failed to delete local state", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
