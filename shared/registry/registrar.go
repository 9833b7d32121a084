package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/naijascout/scout-services/shared/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ServiceRegistrar handles the self-registration and heartbeating of a service instance.
type ServiceRegistrar struct {
	redisClient redis.UniversalClient
	serviceType string
	cfg         *config.CommonConfig
	serviceID   string
	metadata    map[string]string
	logger      *zap.Logger
	stopChan    chan struct{}
	doneChan    chan struct{}
}

// NewServiceRegistrar creates a new ServiceRegistrar.
func NewServiceRegistrar(redisClient redis.UniversalClient, serviceType string, cfg *config.CommonConfig, metadata map[string]string, logger *zap.Logger) *ServiceRegistrar {
	serviceID := fmt.Sprintf("%s-%s", serviceType, uuid.New().String())

	return &ServiceRegistrar{
		redisClient: redisClient,
		serviceType: serviceType,
		cfg:         cfg,
		serviceID:   serviceID,
		metadata:    metadata,
		logger:      logger.With(zap.String("serviceType", serviceType), zap.String("serviceId", serviceID)),
		stopChan:    make(chan struct{}),
		doneChan:    make(chan struct{}),
	}
}

// Start begins the service registration and heartbeating process in a goroutine.
func (sr *ServiceRegistrar) Start() {
	sr.logger.Info("Starting service registrar",
		zap.String("ip", sr.cfg.ServiceIP), zap.Int("port", sr.cfg.ServicePort))
	go sr.run()
}

// Stop signals the registrar to stop, waits for it and deregisters the instance.
func (sr *ServiceRegistrar) Stop() {
	close(sr.stopChan)
	<-sr.doneChan

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sr.redisClient.HDel(ctx, hashKey(sr.serviceType), sr.serviceID).Err(); err != nil {
		sr.logger.Error("Failed to remove service from registry on shutdown", zap.Error(err))
		return
	}
	sr.logger.Info("Service removed from registry")
}

// run is the main loop for the registrar's background goroutine.
func (sr *ServiceRegistrar) run() {
	defer close(sr.doneChan)

	ticker := time.NewTicker(sr.cfg.HeartbeatInterval)
	defer ticker.Stop()

	var cleanup <-chan time.Time
	if sr.cfg.RegistryCleanupInterval > 0 {
		cleanupTicker := time.NewTicker(sr.cfg.RegistryCleanupInterval)
		defer cleanupTicker.Stop()
		cleanup = cleanupTicker.C
	}

	sr.registerService()

	for {
		select {
		case <-ticker.C:
			sr.registerService()
		case <-cleanup:
			sr.performCleanup()
		case <-sr.stopChan:
			return
		}
	}
}

func (sr *ServiceRegistrar) info(now time.Time) ServiceInfo {
	return ServiceInfo{
		ServiceID:   sr.serviceID,
		ServiceType: sr.serviceType,
		IP:          sr.cfg.ServiceIP,
		Port:        sr.cfg.ServicePort,
		LastSeen:    now.UnixMilli(),
		Metadata:    sr.metadata,
	}
}

// registerService performs the actual registration/heartbeat in Redis.
func (sr *ServiceRegistrar) registerService() {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	infoJSON, err := json.Marshal(sr.info(time.Now()))
	if err != nil {
		sr.logger.Error("Failed to marshal ServiceInfo", zap.Error(err))
		return
	}

	if err := sr.redisClient.HSet(ctx, hashKey(sr.serviceType), sr.serviceID, infoJSON).Err(); err != nil {
		sr.logger.Error("Failed to heartbeat service to Redis", zap.Error(err))
		return
	}
	sr.logger.Debug("Service heartbeated")
}

// performCleanup removes stale and corrupt entries of this service type.
func (sr *ServiceRegistrar) performCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	key := hashKey(sr.serviceType)
	results, err := sr.redisClient.HGetAll(ctx, key).Result()
	if err != nil {
		sr.logger.Error("Registry cleanup failed to list services", zap.Error(err))
		return
	}

	for _, instanceID := range staleEntries(results, time.Now(), sr.cfg.HeartbeatTTL) {
		if err := sr.redisClient.HDel(ctx, key, instanceID).Err(); err != nil {
			sr.logger.Error("Registry cleanup failed to delete entry", zap.String("instanceId", instanceID), zap.Error(err))
			continue
		}
		sr.logger.Info("Registry cleanup removed stale entry", zap.String("instanceId", instanceID))
	}
}

// staleEntries lists ids whose payload is unreadable or whose heartbeat is older than ttl.
func staleEntries(raw map[string]string, now time.Time, ttl time.Duration) []string {
	var stale []string
	for instanceID, infoJSON := range raw {
		var info ServiceInfo
		if err := json.Unmarshal([]byte(infoJSON), &info); err != nil || !info.aliveAt(now, ttl) {
			stale = append(stale, instanceID)
		}
	}
	return stale
}

// GetServiceID returns the unique ID assigned to this service instance.
func (sr *ServiceRegistrar) GetServiceID() string {
	return sr.serviceID
}
