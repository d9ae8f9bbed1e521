package catalog

import (
	"context"

	"github.com/nazeru/contractforge-go/pkg/contracts"
	"github.com/nazeru/contractforge-go/pkg/logging"
	"github.com/nazeru/contractforge-go/pkg/requestid"
)

// Notify publishes a change event for a mutation that already succeeded.
// A publish failure is logged; the caller's result stands.
func Notify(ctx context.Context, pub contracts.Publisher, service, typ, entityID string, payload any) {
	if pub == nil {
		return
	}
	evt := contracts.NewEvent(service, typ, entityID, payload)
	evt.RequestID = requestid.From(ctx)
	if err := pub.Publish(ctx, evt); err != nil {
		logging.Log(logging.Fields{
			Service:   service,
			RequestID: evt.RequestID,
			Step:      typ,
			EntityID:  entityID,
			Status:    "publish_error",
			Message:   err.Error(),
		})
	}
}
