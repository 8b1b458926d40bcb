// Package queue is a redis-backed job queue with at-least-once delivery.
// Jobs move between per-queue pending, active and failed lists; failed jobs
// are parked, not dropped.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"files-manager/backend/common"
)

// Job is a unit of derivative work.
type Job struct {
	ID       string `json:"id"`
	Queue    string `json:"queue"`
	FileID   uint64 `json:"fileId"`
	UserID   uint64 `json:"userId"`
	Attempts int    `json:"attempts"`
}

type Queue struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Queue {
	return &Queue{rdb: rdb}
}

// Enqueue appends a job to the named queue and returns it.
func (q *Queue) Enqueue(ctx context.Context, name string, fileID, userID uint64) (*Job, error) {
	job := &Job{ID: uuid.New().String(), Queue: name, FileID: fileID, UserID: userID}
	raw, err := json.Marshal(job)
	if err != nil {
		return nil, err
	}
	if err := q.rdb.LPush(ctx, pendingKey(name), raw).Err(); err != nil {
		return nil, err
	}
	return job, nil
}

func pendingKey(name string) string   { return "queue:" + name + ":pending" }
func activeKey(name string) string    { return "queue:" + name + ":active" }
func failedKey(name string) string    { return "queue:" + name + ":failed" }
func completedKey(name string) string { return "queue:" + name + ":completed" }

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks an error so the consumer parks the job immediately instead
// of redelivering it.
func Permanent(err error) error {
	return &permanentError{err: err}
}

func IsPermanent(err error) bool {
	var pe *permanentError
	return errors.As(err, &pe)
}

// Handler processes one delivery of a job. A nil return acknowledges it;
// an error makes it eligible for redelivery unless permanent.
type Handler func(ctx context.Context, job *Job) error

// Consumer pulls jobs from one named queue.
type Consumer struct {
	rdb  *redis.Client
	name string

	// MaxAttempts bounds redelivery; after that many deliveries a job is
	// parked on the failed list.
	MaxAttempts int

	// OnResult, when set, observes every settled delivery.
	OnResult func(job *Job, err error)
}

func NewConsumer(rdb *redis.Client, name string) *Consumer {
	return &Consumer{rdb: rdb, name: name, MaxAttempts: 3}
}

// RequeueActive moves jobs stranded on the active list (a consumer died
// mid-delivery) back to pending. Called once at boot.
func (c *Consumer) RequeueActive(ctx context.Context) error {
	for {
		_, err := c.rdb.LMove(ctx, activeKey(c.name), pendingKey(c.name), "RIGHT", "LEFT").Result()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Run consumes jobs until ctx is done. Each delivery is handed to h exactly
// once; unacknowledged or failed deliveries go back to pending until
// MaxAttempts is reached.
func (c *Consumer) Run(ctx context.Context, h Handler) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		raw, err := c.rdb.BLMove(ctx, pendingKey(c.name), activeKey(c.name), "RIGHT", "LEFT", time.Second).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			common.SysError("queue " + c.name + ": " + err.Error())
			time.Sleep(time.Second)
			continue
		}

		var job Job
		if err := json.Unmarshal([]byte(raw), &job); err != nil {
			c.park(ctx, raw, &job, err)
			continue
		}
		job.Attempts++
		c.settle(ctx, raw, &job, h(ctx, &job))
	}
}

func (c *Consumer) settle(ctx context.Context, raw string, job *Job, herr error) {
	c.rdb.LRem(ctx, activeKey(c.name), 1, raw)
	switch {
	case herr == nil:
		c.rdb.Incr(ctx, completedKey(c.name))
	case IsPermanent(herr) || job.Attempts >= c.MaxAttempts:
		c.park(ctx, raw, job, herr)
		return
	default:
		requeued, err := json.Marshal(job)
		if err == nil {
			err = c.rdb.LPush(ctx, pendingKey(c.name), requeued).Err()
		}
		if err != nil {
			common.SysError("queue " + c.name + ": requeue " + job.ID + ": " + err.Error())
		}
	}
	if c.OnResult != nil {
		c.OnResult(job, herr)
	}
}

// park retains a failed job for diagnostics.
func (c *Consumer) park(ctx context.Context, raw string, job *Job, herr error) {
	entry, err := json.Marshal(struct {
		Job   json.RawMessage `json:"job"`
		Error string          `json:"error"`
	}{Job: json.RawMessage(raw), Error: herr.Error()})
	if err != nil {
		entry = []byte(raw)
	}
	if err := c.rdb.LPush(ctx, failedKey(c.name), entry).Err(); err != nil {
		common.SysError("queue " + c.name + ": park " + job.ID + ": " + err.Error())
	}
	if c.OnResult != nil {
		c.OnResult(job, herr)
	}
}

// FailedCount reports how many jobs are parked on the failed list.
func (q *Queue) FailedCount(ctx context.Context, name string) (int64, error) {
	return q.rdb.LLen(ctx, failedKey(name)).Result()
}

// PendingCount reports how many jobs await delivery.
func (q *Queue) PendingCount(ctx context.Context, name string) (int64, error) {
	return q.rdb.LLen(ctx, pendingKey(name)).Result()
}
