package feed

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"time"

	firebase "firebase.google.com/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"github.com/beypark/beypark/internal/connectors"
)

const defaultPollInterval = 2 * time.Second

// etagRef is the part of a realtime database reference used to detect changes
type etagRef interface {
	GetWithETag(ctx context.Context, v interface{}) (string, error)
	GetIfChanged(ctx context.Context, etag string, v interface{}) (bool, string, error)
}

// FirebaseSubscriber follows a path of a Firebase Realtime Database. The admin SDK
// does not stream, so the path is read with its ETag and only changed trees are
// delivered.
type FirebaseSubscriber struct {
	newRef       func(path string) etagRef
	pollInterval time.Duration
}

// NewFirebaseSubscriber connects to the database at the connector url.
// The token holds the service account JSON, base64 encoded. Without token the
// application default credentials are used.
func NewFirebaseSubscriber(ctx context.Context, connector *connectors.Connector) (*FirebaseSubscriber, error) {
	var opts []option.ClientOption
	if token := connector.GetToken(); token != "" {
		creds, err := base64.StdEncoding.DecodeString(token)
		if err != nil {
			return nil, errors.Wrap(err, "unable to decode firebase credentials")
		}
		opts = append(opts, option.WithCredentialsJSON(creds))
	}

	databaseURL := connector.GetUrl()
	app, err := firebase.NewApp(ctx, &firebase.Config{DatabaseURL: databaseURL.String()}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "unable to initialize firebase app")
	}
	client, err := app.Database(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to get realtime database client")
	}

	return newFirebaseSubscriber(func(path string) etagRef {
		return client.NewRef(path)
	}, connector.GetRefreshTime()), nil
}

func newFirebaseSubscriber(newRef func(path string) etagRef, pollInterval time.Duration) *FirebaseSubscriber {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	return &FirebaseSubscriber{newRef: newRef, pollInterval: pollInterval}
}

func (f *FirebaseSubscriber) Subscribe(ctx context.Context, path string) (*Subscription, error) {
	ref := f.newRef(path)
	connector := string(connectors.Connector_FIREBASE)

	return startSubscription(ctx, path, connector, func(ctx context.Context, emit emitFunc) {
		var etag string
		for {
			var (
				data    json.RawMessage
				changed bool
				err     error
			)
			if etag == "" {
				etag, err = ref.GetWithETag(ctx, &data)
				changed = err == nil
			} else {
				var newEtag string
				changed, newEtag, err = ref.GetIfChanged(ctx, etag, &data)
				if err == nil {
					etag = newEtag
				}
			}

			if err != nil {
				if ctx.Err() != nil {
					return
				}
				FeedErrors.WithLabelValues(connector).Inc()
				logrus.Errorf("Error while reading firebase path %s: %s", path, err)
			} else if changed {
				logrus.Debugf("Firebase path %s changed (etag %s)", path, etag)
				if !emit(data) {
					return
				}
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(f.pollInterval):
			}
		}
	}), nil
}
