package reporting

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"

	"github.com/profitcycles/seasonal-scanner/internal/pattern"
	"github.com/profitcycles/seasonal-scanner/pkg/types"
)

// FirestoreSink publishes pattern sets to a Firestore collection so the
// web frontend can read them. Document IDs are ticker_startdate, which
// makes a re-scan of the same horizon an upsert.
type FirestoreSink struct {
	client     *firestore.Client
	collection string
}

// NewFirestoreSink connects to Firestore. Credentials come from the
// environment (GOOGLE_APPLICATION_CREDENTIALS or metadata server).
func NewFirestoreSink(ctx context.Context, projectID, collection string) (*FirestoreSink, error) {
	if projectID == "" {
		return nil, fmt.Errorf("firestore project ID is required")
	}
	if collection == "" {
		collection = "stock_patterns"
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	return &FirestoreSink{client: client, collection: collection}, nil
}

// Publish upserts every pattern as one document. A single failed write
// aborts the batch and reports which document failed.
func (s *FirestoreSink) Publish(ctx context.Context, patterns []pattern.Pattern) error {
	coll := s.client.Collection(s.collection)

	for _, p := range SortPatterns(patterns) {
		docID := fmt.Sprintf("%s_%s", safeDocID(p.Ticker), types.DateKey(p.StartDate))
		rec := NewPatternRecord(p)

		if _, err := coll.Doc(docID).Set(ctx, rec); err != nil {
			return fmt.Errorf("failed to write pattern %s: %w", docID, err)
		}
	}

	log.Printf("💾 Published %d patterns to firestore collection %s", len(patterns), s.collection)
	return nil
}

// Close releases the underlying client.
func (s *FirestoreSink) Close() error {
	return s.client.Close()
}

// safeDocID strips characters Firestore forbids in document IDs.
func safeDocID(ticker string) string {
	out := make([]rune, 0, len(ticker))
	for _, r := range ticker {
		if r == '/' {
			r = '_'
		}
		out = append(out, r)
	}
	return string(out)
}
