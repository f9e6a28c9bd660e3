package constants

// Event publisher providers
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
	PubSubProviderKafka  = "kafka"
)

// Deployment environments
const (
	EnvDevelop    = "develop"
	EnvTest       = "test"
	EnvProduction = "production"
)
