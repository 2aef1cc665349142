package service

import (
	"context"
)

// MediaCleanupEvent asks the worker to reclaim CDN assets that are no longer
// referenced by any listing: assets of a deleted listing, images dropped
// during an edit, or uploads stranded by an aborted multi-image batch.
type MediaCleanupEvent struct {
	RequestID string   `json:"request_id,omitempty"` // For distributed tracing
	ListingID string   `json:"listing_id,omitempty"` // Originating listing, empty for stranded uploads
	AssetIDs  []string `json:"asset_ids"`            // CDN asset identifiers to destroy
	Reason    string   `json:"reason"`               // "deleted", "replaced", or "aborted-upload"
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishMediaCleanup publishes a media cleanup event for async processing
	PublishMediaCleanup(ctx context.Context, event *MediaCleanupEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
