package mq

import (
	"context"
	"encoding/json"

	"github.com/schoolist/schoolist/internal/pkg/instrument"
	"github.com/schoolist/schoolist/internal/pkg/messaging"
	"github.com/schoolist/schoolist/internal/school/usecase"
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

func (m *Messaging) PublishSchoolEvent(ctx context.Context, msg usecase.SchoolEvent) error {
	ctx, span := m.ins.Tracer("school.outbound.mq").Start(ctx, "PublishSchoolEvent")
	defer span.End()

	body, err := json.Marshal(event.SchoolChangedMessage{
		SchoolID: msg.SchoolID,
		Name:     msg.Name,
		Action:   msg.Action,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.SchoolChangedDestination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
