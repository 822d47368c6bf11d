package feed

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Snapshot is the whole tree found at the subscribed path after a change.
// Data is nil or JSON null when the path holds nothing.
type Snapshot struct {
	Path       string
	Data       json.RawMessage
	ReceivedAt time.Time
}

// Subscriber registers for the changes of a path of a realtime data store
type Subscriber interface {
	Subscribe(ctx context.Context, path string) (*Subscription, error)
}

// Subscription delivers snapshots until it is cancelled. Cancel must be called when
// the consumer goes away.
type Subscription struct {
	ID        uuid.UUID
	Path      string
	Connector string

	snapshots chan Snapshot
	cancel    context.CancelFunc
	done      chan struct{}
	once      sync.Once
}

// emitFunc sends a snapshot to the consumer, it returns false once the
// subscription is cancelled.
type emitFunc func(data []byte) bool

type producer func(ctx context.Context, emit emitFunc)

func startSubscription(ctx context.Context, path, connector string, produce producer) *Subscription {
	ctx, cancel := context.WithCancel(ctx)
	s := &Subscription{
		ID:        uuid.New(),
		Path:      path,
		Connector: connector,
		snapshots: make(chan Snapshot, 1),
		cancel:    cancel,
		done:      make(chan struct{}),
	}

	go func() {
		defer close(s.done)
		defer close(s.snapshots)
		produce(ctx, func(data []byte) bool {
			snapshot := Snapshot{Path: path, Data: data, ReceivedAt: time.Now()}
			select {
			case s.snapshots <- snapshot:
				FeedSnapshots.WithLabelValues(connector).Inc()
				return true
			case <-ctx.Done():
				return false
			}
		})
	}()
	return s
}

// Snapshots is closed once the subscription is cancelled
func (s *Subscription) Snapshots() <-chan Snapshot {
	return s.snapshots
}

// Cancel stops the delivery and waits for the producer to return.
// It can be called more than once.
func (s *Subscription) Cancel() {
	s.once.Do(s.cancel)
	<-s.done
}

// Done is closed when no more snapshots will be produced
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// subtree walks a slash separated path in a JSON document. A missing node gives null.
func subtree(data []byte, path string) json.RawMessage {
	node := json.RawMessage(data)
	for _, key := range strings.Split(strings.Trim(path, "/"), "/") {
		if key == "" {
			continue
		}
		var children map[string]json.RawMessage
		if err := json.Unmarshal(node, &children); err != nil {
			return json.RawMessage("null")
		}
		child, ok := children[key]
		if !ok {
			return json.RawMessage("null")
		}
		node = child
	}
	return node
}
