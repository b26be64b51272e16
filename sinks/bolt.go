package sinks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Comcast/datagen/core"
	"github.com/Comcast/datagen/util"

	bolt "go.etcd.io/bbolt"
)

// DefaultBoltBucket is the bucket records go in unless a Bolt says
// otherwise.
const DefaultBoltBucket = "records"

// Bolt stores records in a BoltDB file, one key per iteration.
//
// Keys are zero-padded iterations, so a cursor walks records in the
// order they were made.  Values are the records' JSON.
type Bolt struct {
	Bucket string

	filename string
	db       *bolt.DB
}

// OpenBolt opens (or creates) the file and the bucket.
func OpenBolt(filename, bucket string) (*Bolt, error) {
	if bucket == "" {
		bucket = DefaultBoltBucket
	}
	opts := &bolt.Options{
		Timeout: time.Second,
	}
	db, err := bolt.Open(filename, 0644, opts)
	if err != nil {
		return nil, &core.ResourceError{Resource: filename, Err: err}
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, &core.ResourceError{Resource: filename, Err: err}
	}
	return &Bolt{
		Bucket:   bucket,
		filename: filename,
		db:       db,
	}, nil
}

// Close closes the file.
func (s *Bolt) Close() error {
	return s.db.Close()
}

func boltKey(iteration int) []byte {
	return []byte(fmt.Sprintf("%012d", iteration))
}

// Record stores the record under its iteration.
func (s *Bolt) Record(ctx context.Context, r *core.Record) error {
	js, err := r.MarshalOrderedJSON()
	if err != nil {
		return err
	}
	util.Logf("bolt %s put %d", s.filename, r.Iteration)
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(s.Bucket))
		if b == nil {
			return &core.ResourceError{Resource: s.filename + ":" + s.Bucket}
		}
		return b.Put(boltKey(r.Iteration), js)
	})
}

// Each calls the function with the stored records' values in
// iteration order until the function returns an error.
func (s *Bolt) Each(ctx context.Context, f func(iteration int, values map[string]interface{}) error) error {
	return s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(s.Bucket))
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, bs := c.First(); k != nil; k, bs = c.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var i int
			if _, err := fmt.Sscanf(string(k), "%d", &i); err != nil {
				return err
			}
			var values map[string]interface{}
			if err := json.Unmarshal(bs, &values); err != nil {
				return err
			}
			if err := f(i, values); err != nil {
				return err
			}
		}
		return nil
	})
}
