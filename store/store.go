// Package store keeps summary reports in a bolt database, so that a
// repeated summary of the same trace log can be reused.
package store

import (
	"encoding/json"
	"path/filepath"
	"time"

	"github.com/op/go-logging"

	bolt "go.etcd.io/bbolt"
)

// log is the global logging variable.
var log = logging.MustGetLogger("store")

// MAIN is the bucket name for all the reports.
var MAIN = []byte("main")

// Store is a report database.
type Store struct {
	db *bolt.DB
}

// Open opens or creates a database.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0666, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	log.Debugf("Opened database %s", path)
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Key returns a key for a trace label in a log file. The path of the
// log file is absolute.
func Key(logFile, label string) []byte {
	path, err := filepath.Abs(logFile)
	if err != nil {
		log.Warningf("Cannot get absolute path of %s: %v", logFile, err)
		path = filepath.Clean(logFile)
	}
	return []byte(path + "/" + label)
}

// Save serializes v to JSON and stores it under the key.
func (s *Store) Save(key []byte, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		log.Error("Error serializing data", err)
		return err
	}
	err = SaveData(s.db, key, data)
	if err != nil {
		log.Error("Error saving data", err)
	}
	return err
}

// Load loads the value stored under the key into v. It returns false
// if the key is not present.
func (s *Store) Load(key []byte, v interface{}) (bool, error) {
	data, err := LoadData(s.db, key)
	if err != nil || data == nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, err
	}
	log.Debugf("Loaded %s", key)
	return true, nil
}

// SaveData saves values in bolt database.
func SaveData(db *bolt.DB, key []byte, data []byte) error {
	if db == nil {
		return nil
	}
	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(MAIN)
		if err != nil {
			return err
		}
		return b.Put(key, data)
	})
}

// LoadData loads data from bolt database. The returned slice is a copy
// and remains valid after the transaction.
func LoadData(db *bolt.DB, key []byte) ([]byte, error) {
	var data []byte
	if db == nil {
		return nil, nil
	}
	err := db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(MAIN)
		if b == nil {
			return nil
		}
		if v := b.Get(key); v != nil {
			data = append(make([]byte, 0, len(v)), v...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}
