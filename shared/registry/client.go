package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stathat/consistent"
	"go.uber.org/zap"
)

// ErrNoActiveService means no instance of the requested type has heartbeated recently.
var ErrNoActiveService = errors.New("no active service instance")

// RegistryClient reads the registry. Registration lives in ServiceRegistrar.
type RegistryClient struct {
	redisClient    redis.UniversalClient
	serviceTimeout time.Duration
	logger         *zap.Logger
}

// NewRegistryClient takes an already initialized redis client.
func NewRegistryClient(redisClient redis.UniversalClient, serviceTimeout time.Duration, logger *zap.Logger) *RegistryClient {
	return &RegistryClient{
		redisClient:    redisClient,
		serviceTimeout: serviceTimeout,
		logger:         logger,
	}
}

// GetActiveServices returns the instances of serviceType keyed by instance id,
// skipping entries whose heartbeat is older than the service timeout.
func (rc *RegistryClient) GetActiveServices(ctx context.Context, serviceType string) (map[string]ServiceInfo, error) {
	results, err := rc.redisClient.HGetAll(ctx, hashKey(serviceType)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get all services of type %s from Redis: %w", serviceType, err)
	}
	return activeServices(results, time.Now(), rc.serviceTimeout, rc.logger), nil
}

// Discover picks one live instance of serviceType. Callers passing the same
// affinity key land on the same instance for as long as the set of live
// instances is stable.
func (rc *RegistryClient) Discover(ctx context.Context, serviceType, affinityKey string) (ServiceInfo, error) {
	active, err := rc.GetActiveServices(ctx, serviceType)
	if err != nil {
		return ServiceInfo{}, err
	}
	info, ok := pick(active, affinityKey)
	if !ok {
		return ServiceInfo{}, fmt.Errorf("%w: %s", ErrNoActiveService, serviceType)
	}
	return info, nil
}

func activeServices(raw map[string]string, now time.Time, ttl time.Duration, logger *zap.Logger) map[string]ServiceInfo {
	active := make(map[string]ServiceInfo, len(raw))
	for instanceID, infoJSON := range raw {
		var info ServiceInfo
		if err := json.Unmarshal([]byte(infoJSON), &info); err != nil {
			logger.Warn("Skipping malformed registry entry", zap.String("instanceId", instanceID), zap.Error(err))
			continue
		}
		if info.aliveAt(now, ttl) {
			active[instanceID] = info
		}
	}
	return active
}

// pick places the instances on a consistent hash ring and returns the owner
// of key. An empty key selects the lowest instance id.
func pick(services map[string]ServiceInfo, key string) (ServiceInfo, bool) {
	if len(services) == 0 {
		return ServiceInfo{}, false
	}
	ids := make([]string, 0, len(services))
	for id := range services {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	if key == "" || len(ids) == 1 {
		return services[ids[0]], true
	}

	ring := consistent.New()
	ring.Set(ids)
	owner, err := ring.Get(key)
	if err != nil {
		return services[ids[0]], true
	}
	return services[owner], true
}
