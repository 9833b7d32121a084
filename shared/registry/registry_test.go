package registry

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/naijascout/scout-services/shared/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func entry(t *testing.T, id string, lastSeen time.Time) string {
	t.Helper()
	b, err := json.Marshal(ServiceInfo{
		ServiceID:   id,
		ServiceType: ScoutServiceType,
		IP:          "10.0.0.1",
		Port:        5000,
		LastSeen:    lastSeen.UnixMilli(),
		Metadata:    map[string]string{"apiPrefix": "/api"},
	})
	require.NoError(t, err)
	return string(b)
}

func TestServiceInfoBaseURL(t *testing.T) {
	assert.Equal(t, "http://10.0.0.1:5000", ServiceInfo{IP: "10.0.0.1", Port: 5000}.BaseURL())
	assert.Equal(t, "http://[::1]:8080", ServiceInfo{IP: "::1", Port: 8080}.BaseURL())
}

func TestServiceInfoAliveAt(t *testing.T) {
	now := time.Now()
	ttl := 15 * time.Second

	assert.True(t, ServiceInfo{LastSeen: now.UnixMilli()}.aliveAt(now, ttl))
	assert.True(t, ServiceInfo{LastSeen: now.Add(-ttl).UnixMilli()}.aliveAt(now, ttl))
	assert.False(t, ServiceInfo{LastSeen: now.Add(-ttl - time.Second).UnixMilli()}.aliveAt(now, ttl))
}

func TestActiveServices(t *testing.T) {
	now := time.Now()
	raw := map[string]string{
		"fresh":   entry(t, "fresh", now.Add(-time.Second)),
		"stale":   entry(t, "stale", now.Add(-time.Minute)),
		"garbage": "{not json",
	}

	active := activeServices(raw, now, 15*time.Second, zap.NewNop())
	require.Len(t, active, 1)
	assert.Equal(t, "fresh", active["fresh"].ServiceID)
	assert.Equal(t, "/api", active["fresh"].Metadata["apiPrefix"])
}

func TestStaleEntries(t *testing.T) {
	now := time.Now()
	raw := map[string]string{
		"fresh":   entry(t, "fresh", now),
		"stale":   entry(t, "stale", now.Add(-time.Hour)),
		"garbage": "",
	}

	assert.ElementsMatch(t, []string{"stale", "garbage"}, staleEntries(raw, now, 15*time.Second))
	assert.Empty(t, staleEntries(map[string]string{}, now, 15*time.Second))
}

func TestPick(t *testing.T) {
	_, ok := pick(nil, "seeder")
	assert.False(t, ok)

	services := map[string]ServiceInfo{
		"scout-service-c": {ServiceID: "scout-service-c"},
		"scout-service-a": {ServiceID: "scout-service-a"},
		"scout-service-b": {ServiceID: "scout-service-b"},
	}

	info, ok := pick(services, "")
	require.True(t, ok)
	assert.Equal(t, "scout-service-a", info.ServiceID, "an empty key picks the lowest id")

	first, ok := pick(services, "seeder-host")
	require.True(t, ok)
	assert.Contains(t, services, first.ServiceID)
	for i := 0; i < 5; i++ {
		again, _ := pick(services, "seeder-host")
		assert.Equal(t, first.ServiceID, again.ServiceID, "the same key keeps its instance")
	}

	single := map[string]ServiceInfo{"only": {ServiceID: "only"}}
	info, ok = pick(single, "anything")
	require.True(t, ok)
	assert.Equal(t, "only", info.ServiceID)
}

func testCommonConfig() *config.CommonConfig {
	return &config.CommonConfig{
		ServiceIP:         "10.1.2.3",
		ServicePort:       5000,
		HeartbeatInterval: 5 * time.Second,
		HeartbeatTTL:      15 * time.Second,
	}
}

func TestRegistrarInfo(t *testing.T) {
	cfg := testCommonConfig()
	sr := NewServiceRegistrar(nil, ScoutServiceType, cfg, map[string]string{"apiPrefix": "/api"}, zap.NewNop())

	assert.Contains(t, sr.GetServiceID(), ScoutServiceType+"-")

	now := time.UnixMilli(1_700_000_000_000)
	info := sr.info(now)
	assert.Equal(t, sr.GetServiceID(), info.ServiceID)
	assert.Equal(t, "10.1.2.3", info.IP)
	assert.Equal(t, 5000, info.Port)
	assert.Equal(t, now.UnixMilli(), info.LastSeen)
	assert.Equal(t, "services:scout-service", hashKey(info.ServiceType))
}
