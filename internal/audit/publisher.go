package audit

import (
	"time"

	"github.com/ticoencargo/cartera/pkg/logger"
	"github.com/ticoencargo/cartera/pkg/redis"
	"github.com/ticoencargo/cartera/pkg/worker"
)

// Event is one applied mutation, recorded for inspection with
// `XRANGE <stream> - +`. The stream is advisory; nothing in the
// request path waits on it.
type Event struct {
	Collection string
	Operation  string
	EntityID   int64
	At         time.Time
}

// Publisher appends mutation events to a capped Redis stream through a
// small worker pool so store handlers never block on Redis.
type Publisher struct {
	redis   redis.RedisAdapter
	stream  string
	maxLen  int64
	manager *worker.WorkerManager
}

func NewPublisher(r redis.RedisAdapter, stream string, maxLen int64, workers int) *Publisher {
	p := &Publisher{
		redis:  r,
		stream: stream,
		maxLen: maxLen,
	}
	p.manager = worker.NewWorkerManager(1024, workers, nil)
	p.manager.SetWorker(p.handle)
	go func() {
		_ = p.manager.Start()
	}()
	return p
}

// Publish enqueues one event. It never fails; a full queue blocks
// briefly, a Redis error is only logged.
func (p *Publisher) Publish(ev Event) {
	p.manager.Enqueue(ev)
}

// Pending reports how many events are queued but not yet written.
func (p *Publisher) Pending() int64 {
	return p.manager.GetUnreadCount()
}

func (p *Publisher) Close() {
	p.manager.Exit()
}

func (p *Publisher) handle(workerIndex int, job interface{}) {
	ev, ok := job.(Event)
	if !ok {
		return
	}

	_, err := p.redis.XAdd(p.stream, map[string]interface{}{
		"collection": ev.Collection,
		"operation":  ev.Operation,
		"entity_id":  ev.EntityID,
		"at":         ev.At.UTC().Format(time.RFC3339),
	})
	if err != nil {
		logger.Warn("failed to append audit event",
			"stream", p.stream, "collection", ev.Collection, "operation", ev.Operation, "error", err)
		return
	}

	if p.maxLen > 0 {
		if err := p.redis.XTrimApprox(p.stream, p.maxLen); err != nil {
			logger.Warn("failed to trim audit stream", "stream", p.stream, "error", err)
		}
	}
}
