package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/lead-ingest/internal/model"
)

// LeadSink receives a copy of every upserted lead; implemented by the
// Salesforce client wrapper.
type LeadSink interface {
	UpsertLeadByEmail(ctx context.Context, lead model.LeadRecord) (string, error)
}

// leadSinkStore decorates a Store so lead upserts also reach an external CRM.
// The sink is best effort: its failures are logged and never change the
// primary outcome.
type leadSinkStore struct {
	Store
	sink LeadSink
}

// WithLeadSink wraps the store; a nil sink returns the store unchanged.
func WithLeadSink(s Store, sink LeadSink) Store {
	if sink == nil {
		return s
	}
	return &leadSinkStore{Store: s, sink: sink}
}

func (s *leadSinkStore) CreateOrUpdateLeadByEmail(ctx context.Context, lead model.LeadRecord) (string, error) {
	id, err := s.Store.CreateOrUpdateLeadByEmail(ctx, lead)
	if err != nil {
		return "", err
	}
	if sfID, sinkErr := s.sink.UpsertLeadByEmail(ctx, lead); sinkErr != nil {
		zap.L().Warn("store: lead sink push failed",
			zap.String("email", lead.Email),
			zap.Error(sinkErr),
		)
	} else {
		zap.L().Debug("store: lead pushed to sink",
			zap.String("email", lead.Email),
			zap.String("sink_id", sfID),
		)
	}
	return id, nil
}
