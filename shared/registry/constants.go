// shared/registry/constants.go
package registry

const (
	// RedisRegistryHashPrefix is the prefix used for Redis hash keys that store
	// service registration data. The full key format will be:
	// "services:<serviceType>"
	// Example: "services:scout-service"
	RedisRegistryHashPrefix = "services:"

	// ScoutServiceType is the registry name of the player scouting API.
	ScoutServiceType = "scout-service"
)

func hashKey(serviceType string) string {
	return RedisRegistryHashPrefix + serviceType
}
