package storage

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

var deliveriesBucket = []byte("deliveries")

// deliveryBytes is the encoded size of a delivery: expiry seconds then digest.
const deliveryBytes = 16

var errBucketMissing = errors.New("deliveries bucket missing")

// delivery is what the store keeps per event key.
type delivery struct {
	expires time.Time
	digest  uint64
}

func (d delivery) live(now time.Time) bool {
	return d.expires.After(now)
}

func (d delivery) encode() []byte {
	buf := make([]byte, deliveryBytes)
	binary.BigEndian.PutUint64(buf[:8], uint64(d.expires.Unix()))
	binary.BigEndian.PutUint64(buf[8:], d.digest)
	return buf
}

// decodeDelivery rejects values of the wrong size or with a non-positive expiry.
func decodeDelivery(value []byte) (delivery, bool) {
	if len(value) != deliveryBytes {
		return delivery{}, false
	}
	unix := int64(binary.BigEndian.Uint64(value[:8]))
	if unix <= 0 {
		return delivery{}, false
	}
	return delivery{
		expires: time.Unix(unix, 0),
		digest:  binary.BigEndian.Uint64(value[8:]),
	}, true
}

// boltStore keeps one delivery record per event key in a BoltDB file.
// Expired records are ignored on lookup and removed by a periodic sweep.
type boltStore struct {
	db         *bolt.DB
	ttl        time.Duration
	sweepEvery time.Duration
	now        func() time.Time

	mu        sync.Mutex
	nextSweep time.Time
}

func openBolt(path string, opts Options) (*boltStore, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(deliveriesBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init deliveries bucket: %w", err)
	}

	now := time.Now()
	return &boltStore{
		db:         db,
		ttl:        opts.TTL,
		sweepEvery: opts.CleanupInterval,
		now:        time.Now,
		nextSweep:  now.Add(opts.CleanupInterval),
	}, nil
}

func deliveries(tx *bolt.Tx) (*bolt.Bucket, error) {
	bucket := tx.Bucket(deliveriesBucket)
	if bucket == nil {
		return nil, errBucketMissing
	}
	return bucket, nil
}

// Close closes the BoltDB file.
func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// Seen reports whether key holds a live delivery with the same digest.
func (b *boltStore) Seen(key string, digest uint64) (bool, error) {
	if b == nil || b.db == nil {
		return false, nil
	}

	now := b.now()
	if err := b.sweepIfDue(now); err != nil {
		return false, err
	}

	var (
		rec   delivery
		found bool
	)
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket, err := deliveries(tx)
		if err != nil {
			return err
		}
		rec, found = decodeDelivery(bucket.Get([]byte(key)))
		return nil
	})
	if err != nil {
		return false, err
	}
	return found && rec.live(now) && rec.digest == digest, nil
}

// Mark records a delivery of key with digest, replacing any earlier one.
func (b *boltStore) Mark(key string, digest uint64) error {
	if b == nil || b.db == nil {
		return nil
	}

	now := b.now()
	if err := b.sweepIfDue(now); err != nil {
		return err
	}

	rec := delivery{expires: now.Add(b.ttl), digest: digest}
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket, err := deliveries(tx)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(key), rec.encode())
	})
}

// sweepIfDue deletes expired or unreadable records once per sweep interval.
func (b *boltStore) sweepIfDue(now time.Time) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if now.Before(b.nextSweep) {
		return nil
	}

	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket, err := deliveries(tx)
		if err != nil {
			return err
		}
		cursor := bucket.Cursor()
		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			if rec, ok := decodeDelivery(v); ok && rec.live(now) {
				continue
			}
			if err := cursor.Delete(); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("sweep expired deliveries: %w", err)
	}
	b.nextSweep = now.Add(b.sweepEvery)
	return nil
}

// count returns the number of stored records, expired or not.
func (b *boltStore) count() (int, error) {
	var n int
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket, err := deliveries(tx)
		if err != nil {
			return err
		}
		n = bucket.Stats().KeyN
		return nil
	})
	return n, err
}
