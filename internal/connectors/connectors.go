package connectors

import (
	"net/url"
	"sync"
	"time"
)

type ConnectorType string

const (
	Connector_FIREBASE ConnectorType = "firebase"
	Connector_REDIS    ConnectorType = "redis"
	Connector_FILE     ConnectorType = "file"
)

// Connector holds what is needed to reach a realtime data store
type Connector struct {
	url               url.URL
	token             string
	refreshTime       time.Duration
	connectionTimeout time.Duration
	mutex             sync.Mutex
}

func (d *Connector) GetUrl() url.URL {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.url
}

func (d *Connector) GetToken() string {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.token
}

func (d *Connector) SetToken(token string) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.token = token
}

func (d *Connector) GetConnectionTimeout() time.Duration {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.connectionTimeout
}

// GetRefreshTime is the delay between two reads of stores that cannot push changes
func (d *Connector) GetRefreshTime() time.Duration {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.refreshTime
}

func NewConnector(
	url url.URL,
	token string,
	refresh time.Duration,
	connectionTimeout time.Duration,
) *Connector {
	return &Connector{
		url:               url,
		token:             token,
		refreshTime:       refresh,
		connectionTimeout: connectionTimeout,
	}
}
