package feed

import (
	"context"
	"fmt"

	"github.com/beypark/beypark/internal/connectors"
)

// Pattern factory of the realtime feed subscribers
func SubscriberFactory(ctx context.Context, connectorType string, connector *connectors.Connector) (Subscriber, error) {
	switch connectors.ConnectorType(connectorType) {
	case connectors.Connector_FIREBASE:
		subscriber, err := NewFirebaseSubscriber(ctx, connector)
		if err != nil {
			return nil, err
		}
		return subscriber, nil
	case connectors.Connector_REDIS:
		subscriber, err := NewRedisSubscriber(connector)
		if err != nil {
			return nil, err
		}
		return subscriber, nil
	case connectors.Connector_FILE:
		return NewFileSubscriber(connector), nil
	default:
		return nil, fmt.Errorf("Wrong connector type passed")
	}
}
