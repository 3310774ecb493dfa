package mq

import (
	"context"
	"encoding/json"

	"github.com/schoolist/schoolist/internal/auth/usecase"
	"github.com/schoolist/schoolist/internal/pkg/instrument"
	"github.com/schoolist/schoolist/internal/pkg/messaging"
	"github.com/schoolist/schoolist/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Messaging
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishAuthEvent(ctx context.Context, msg usecase.AuthEvent) error {
	ctx, span := m.ins.Tracer("auth.outbound.mq").Start(ctx, "PublishAuthEvent")
	defer span.End()

	body, err := json.Marshal(event.AuthActivityMessage{
		Email:      msg.Email,
		Action:     msg.Action,
		OccurredAt: msg.OccurredAt,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.AuthActivityDestination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
