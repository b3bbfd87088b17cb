// Package store persists session records, card counters and small pieces of
// local state
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"strconv"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/models"
)

const (
	sessionBucket   = "sessions"
	sessionIDBucket = "session_ids"
	cardBucket      = "cards"
	settingsBucket  = "settings"
	metaBucket      = "meta"
)

// keyLayout is RFC3339 with a fixed number of fractional digits so that keys
// sort in time order.
const keyLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
}

var _ DB = (*Client)(nil)

func sessionKey(rec *models.SessionRecord) []byte {
	return []byte(timeKey(rec.StartedAt) + "|" + rec.ID)
}

func timeKey(t time.Time) string {
	return t.UTC().Format(keyLayout)
}

func (c *Client) view(ctx context.Context, fn func(tx *bolt.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return c.View(fn)
}

func (c *Client) update(ctx context.Context, fn func(tx *bolt.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return c.Update(fn)
}

func (c *Client) CreateSession(
	ctx context.Context,
	rec *models.SessionRecord,
) (string, error) {
	r := *rec
	if r.ID == "" {
		r.ID = uuid.NewString()
	}

	value, err := json.Marshal(&r)
	if err != nil {
		return "", err
	}

	key := sessionKey(&r)

	err = c.update(ctx, func(tx *bolt.Tx) error {
		ids := tx.Bucket([]byte(sessionIDBucket))

		// a retried create replaces the earlier copy
		if old := ids.Get([]byte(r.ID)); old != nil {
			if err := tx.Bucket([]byte(sessionBucket)).Delete(old); err != nil {
				return err
			}
		}

		if err := tx.Bucket([]byte(sessionBucket)).Put(key, value); err != nil {
			return err
		}

		return ids.Put([]byte(r.ID), key)
	})
	if err != nil {
		return "", err
	}

	return r.ID, nil
}

func (c *Client) UpdateSession(
	ctx context.Context,
	id string,
	patch models.SessionPatch,
) error {
	return c.update(ctx, func(tx *bolt.Tx) error {
		key := tx.Bucket([]byte(sessionIDBucket)).Get([]byte(id))
		if key == nil {
			return ErrNotFound.Wrap(errors.New(id))
		}

		b := tx.Bucket([]byte(sessionBucket))

		var rec models.SessionRecord

		if err := json.Unmarshal(b.Get(key), &rec); err != nil {
			return err
		}

		rec.Apply(patch)

		value, err := json.Marshal(&rec)
		if err != nil {
			return err
		}

		return b.Put(key, value)
	})
}

func (c *Client) DeleteSession(ctx context.Context, id string) error {
	return c.update(ctx, func(tx *bolt.Tx) error {
		ids := tx.Bucket([]byte(sessionIDBucket))

		key := ids.Get([]byte(id))
		if key == nil {
			return ErrNotFound.Wrap(errors.New(id))
		}

		if err := tx.Bucket([]byte(sessionBucket)).Delete(key); err != nil {
			return err
		}

		return ids.Delete([]byte(id))
	})
}

func (c *Client) ListSessionsForDate(
	ctx context.Context,
	date string,
) ([]models.SessionRecord, error) {
	start, end, err := DayBounds(date, time.Local)
	if err != nil {
		return nil, err
	}

	return c.ListSessionsForRange(ctx, start, end)
}

func (c *Client) ListSessionsForRange(
	ctx context.Context,
	start, end time.Time,
) ([]models.SessionRecord, error) {
	var s []models.SessionRecord

	lower := []byte(timeKey(start))
	// "|" sorts after every character of the time part, so keys of records
	// started exactly at end are included
	upper := []byte(timeKey(end) + "|\xff")

	err := c.view(ctx, func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(sessionBucket)).Cursor()

		for k, v := cur.Seek(lower); k != nil && bytes.Compare(k, upper) <= 0; k, v = cur.Next() {
			var rec models.SessionRecord

			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}

			s = append(s, rec)
		}

		return nil
	})

	return s, err
}

func (c *Client) IncrementCardPomodoros(ctx context.Context, cardID string) error {
	return c.update(ctx, func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(cardBucket))

		n, err := counter(b.Get([]byte(cardID)))
		if err != nil {
			return err
		}

		return b.Put([]byte(cardID), []byte(strconv.Itoa(n+1)))
	})
}

func (c *Client) CardPomodoros(ctx context.Context, cardID string) (int, error) {
	var n int

	err := c.view(ctx, func(tx *bolt.Tx) error {
		var err error

		n, err = counter(tx.Bucket([]byte(cardBucket)).Get([]byte(cardID)))

		return err
	})

	return n, err
}

func counter(v []byte) (int, error) {
	if v == nil {
		return 0, nil
	}

	return strconv.Atoi(string(v))
}

func (c *Client) GetSetting(ctx context.Context, key string) ([]byte, error) {
	var value []byte

	err := c.view(ctx, func(tx *bolt.Tx) error {
		if v := tx.Bucket([]byte(settingsBucket)).Get([]byte(key)); v != nil {
			// v is only valid for the life of the transaction
			value = bytes.Clone(v)
		}

		return nil
	})

	return value, err
}

func (c *Client) PutSetting(ctx context.Context, key string, value []byte) error {
	return c.update(ctx, func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(settingsBucket)).Put([]byte(key), value)
	})
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrDatabaseOpen) ||
			errors.Is(err, bolt.ErrTimeout) {
			return nil, ErrAlreadyRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string) (*Client, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	c := &Client{db}

	// Create the necessary buckets for storing data if they do not exist already
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{
			sessionBucket,
			sessionIDBucket,
			cardBucket,
			settingsBucket,
			metaBucket,
		} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}

		return c.migrate(tx)
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return c, nil
}
