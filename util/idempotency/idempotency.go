// Package idempotency is a small BoltDB-backed seen-key store.
//
// Payout gateways redeliver webhook events until they get a 2xx, so the
// same disbursement update can arrive more than once. MarkOnce records
// a delivery key and reports whether this is the first time it was
// seen; callers skip processing on repeats.
package idempotency

import (
	"time"

	bolt "github.com/boltdb/bolt"
)

const bucketName = "webhook_events"

type Store struct {
	db *bolt.DB
}

// New opens (or creates) the bolt file and ensures the bucket exists.
func New(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// MarkOnce records key and returns true only on its first appearance.
// The check and the write happen in one bolt transaction, so two
// concurrent deliveries of the same key cannot both see "first".
func (s *Store) MarkOnce(key string) (first bool, err error) {
	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b.Get([]byte(key)) != nil {
			return nil
		}
		first = true
		return b.Put([]byte(key), []byte(time.Now().UTC().Format(time.RFC3339)))
	})
	return first, err
}
