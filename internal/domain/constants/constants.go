// Package constants holds shared domain-level constant values.
package constants

// Deployment environment names as they appear in configuration.
const (
	EnvDevelop    = "develop"
	EnvProduction = "production"
)

const (
	// PubSubProviderLocal selects the local HTTP publisher for development.
	PubSubProviderLocal = "local"
	// PubSubProviderGoogle selects Google Cloud Pub/Sub.
	PubSubProviderGoogle = "google"
)

const (
	// MediaFolderProducts is the CDN folder for product listing images.
	MediaFolderProducts = "products"
	// MediaFolderServices is the CDN folder for service listing images.
	MediaFolderServices = "services"
)

// CleanupReason values carried on media cleanup events.
const (
	CleanupReasonDeleted       = "deleted"
	CleanupReasonReplaced      = "replaced"
	CleanupReasonAbortedUpload = "aborted-upload"
)
