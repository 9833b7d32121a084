// shared/registry/types.go
package registry

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// ServiceInfo represents the details of a registered service instance.
// This information is stored in Redis and used for service discovery.
type ServiceInfo struct {
	ServiceID   string            `json:"serviceId"`
	ServiceType string            `json:"serviceType"`
	IP          string            `json:"ip"`
	Port        int               `json:"port"`
	LastSeen    int64             `json:"last_seen"` // unix milliseconds
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// BaseURL is the http address of the instance.
func (s ServiceInfo) BaseURL() string {
	return fmt.Sprintf("http://%s", net.JoinHostPort(s.IP, strconv.Itoa(s.Port)))
}

// aliveAt reports whether the last heartbeat is within ttl of now.
func (s ServiceInfo) aliveAt(now time.Time, ttl time.Duration) bool {
	return now.Sub(time.UnixMilli(s.LastSeen)) <= ttl
}
