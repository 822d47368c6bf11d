package feed

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/beypark/beypark/internal/connectors"
)

// RedisSubscriber reads the current tree from the key named after the path, then
// receives every new tree published on the channel of the same name.
type RedisSubscriber struct {
	client *redis.Client
}

func NewRedisSubscriber(connector *connectors.Connector) (*RedisSubscriber, error) {
	redisURL := connector.GetUrl()
	opt, err := redis.ParseURL(redisURL.String())
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse redis url")
	}
	if timeout := connector.GetConnectionTimeout(); timeout > 0 {
		opt.DialTimeout = timeout
	}
	return &RedisSubscriber{client: redis.NewClient(opt)}, nil
}

func (r *RedisSubscriber) Subscribe(ctx context.Context, path string) (*Subscription, error) {
	connector := string(connectors.Connector_REDIS)

	// Subscribe before reading the key so no publication is lost in between
	pubsub := r.client.Subscribe(ctx, path)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, errors.Wrapf(err, "unable to subscribe to %s", path)
	}

	return startSubscription(ctx, path, connector, func(ctx context.Context, emit emitFunc) {
		defer pubsub.Close()

		data, err := r.client.Get(ctx, path).Bytes()
		switch {
		case err == nil:
			if !emit(data) {
				return
			}
		case err != redis.Nil:
			FeedErrors.WithLabelValues(connector).Inc()
			logrus.Errorf("Error while reading redis key %s: %s", path, err)
		}

		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				if !emit([]byte(msg.Payload)) {
					return
				}
			}
		}
	}), nil
}

func (r *RedisSubscriber) Close() error {
	return r.client.Close()
}
