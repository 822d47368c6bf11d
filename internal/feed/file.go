package feed

import (
	"context"
	"crypto/sha256"
	"io"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/beypark/beypark/internal/connectors"
	"github.com/beypark/beypark/internal/utils"
)

const defaultFileRefresh = 30 * time.Second

// FileSubscriber re-reads a JSON document (file, sftp or http uri) and delivers the
// tree at the subscribed path each time the document changes.
type FileSubscriber struct {
	uri               url.URL
	refresh           time.Duration
	connectionTimeout time.Duration
}

func NewFileSubscriber(connector *connectors.Connector) *FileSubscriber {
	refresh := connector.GetRefreshTime()
	if refresh <= 0 {
		refresh = defaultFileRefresh
	}
	return &FileSubscriber{
		uri:               connector.GetUrl(),
		refresh:           refresh,
		connectionTimeout: connector.GetConnectionTimeout(),
	}
}

func (f *FileSubscriber) Subscribe(ctx context.Context, path string) (*Subscription, error) {
	connector := string(connectors.Connector_FILE)

	return startSubscription(ctx, path, connector, func(ctx context.Context, emit emitFunc) {
		var last [sha256.Size]byte
		first := true
		for {
			data, err := f.read()
			if err != nil {
				FeedErrors.WithLabelValues(connector).Inc()
				logrus.Error("Error while reading parking feed file: ", err)
			} else if sum := sha256.Sum256(data); first || sum != last {
				first = false
				last = sum
				if !emit(subtree(data, path)) {
					return
				}
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(f.refresh):
			}
		}
	}), nil
}

func (f *FileSubscriber) read() ([]byte, error) {
	reader, err := utils.GetFile(f.uri, f.connectionTimeout)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(reader)
}
