package store

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/models"
)

const (
	schemaVersionKey = "schema_version"
	schemaVersion    = 1
)

// migrateSessions rewrites every session under its canonical key and rebuilds
// the id index. Records imported without an id get a new one.
func migrateSessions(tx *bbolt.Tx) error {
	bucket := tx.Bucket([]byte(sessionBucket))
	ids := tx.Bucket([]byte(sessionIDBucket))

	type entry struct {
		oldKey []byte
		key    []byte
		value  []byte
		id     string
	}

	var entries []entry

	// the bucket is only modified once the cursor is done with it
	err := bucket.ForEach(func(k, v []byte) error {
		var rec models.SessionRecord

		err := json.Unmarshal(v, &rec)
		if err != nil {
			return err
		}

		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}

		if rec.Date == "" {
			rec.Date = rec.StartedAt.Local().Format(models.DateLayout)
		}

		value, err := json.Marshal(&rec)
		if err != nil {
			return err
		}

		entries = append(entries, entry{
			oldKey: bytes.Clone(k),
			key:    sessionKey(&rec),
			value:  value,
			id:     rec.ID,
		})

		return nil
	})
	if err != nil {
		return err
	}

	for _, e := range entries {
		if !bytes.Equal(e.oldKey, e.key) {
			err = bucket.Delete(e.oldKey)
			if err != nil {
				return err
			}
		}

		err = bucket.Put(e.key, e.value)
		if err != nil {
			return err
		}

		err = ids.Put([]byte(e.id), e.key)
		if err != nil {
			return err
		}
	}

	return nil
}

func (c *Client) migrate(tx *bbolt.Tx) error {
	meta := tx.Bucket([]byte(metaBucket))

	current := 0

	if v := meta.Get([]byte(schemaVersionKey)); v != nil {
		n, err := strconv.Atoi(string(v))
		if err != nil {
			return err
		}

		current = n
	}

	if current >= schemaVersion {
		return nil
	}

	err := migrateSessions(tx)
	if err != nil {
		return err
	}

	return meta.Put([]byte(schemaVersionKey), []byte(strconv.Itoa(schemaVersion)))
}
