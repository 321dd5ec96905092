package sales

import "time"

// Ingestion outcomes reported to the recorder
const (
	OutcomeCreated  = "created"
	OutcomeReplayed = "replayed"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// IngestionRecorder observes ingestion outcomes
type IngestionRecorder interface {
	ObserveIngestion(outcome, code string, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveIngestion(string, string, time.Duration) {}
