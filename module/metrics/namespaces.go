package metrics

// Prometheus metric namespaces
const (
	namespaceSHA2 = "sha2"
)

// Prometheus metric subsystems
const (
	subsystemHasher  = "hasher"
	subsystemVectors = "vectors"
)
