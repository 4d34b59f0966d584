package resource

import (
	"context"
	"fmt"
	"sync"
	"time"

	"SellerPulse/internal/logger"
	"SellerPulse/internal/serviceiface"
)

// ResourceManager tracks the process's shared handles (database pools, the
// keyval store) and probes their liveness on a heartbeat so a dead connection
// shows up in the audit log instead of as a burst of handler errors.
type ResourceManager struct {
	resources         map[string]interface{}
	mu                sync.RWMutex
	stopChan          chan struct{}
	heartbeatInterval time.Duration
}

func NewResourceManagerService(cfg map[string]interface{}, resources map[string]interface{}) serviceiface.Service {
	interval := 30 * time.Second
	if val, ok := cfg["heartbeat_interval"]; ok {
		switch v := val.(type) {
		case string:
			if d, err := time.ParseDuration(v); err == nil {
				interval = d
			}
		case float64:
			interval = time.Duration(v) * time.Second
		}
	}
	rm := &ResourceManager{
		resources:         make(map[string]interface{}),
		stopChan:          make(chan struct{}),
		heartbeatInterval: interval,
	}
	for key, r := range resources {
		if r != nil {
			rm.resources[key] = r
		}
	}
	return rm
}

func (rm *ResourceManager) Name() string { return "resourcemanager" }

func (rm *ResourceManager) Start() error {
	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit("ResourceManager started")
	}
	go rm.heartbeatLoop()
	return nil
}

func (rm *ResourceManager) Stop() error {
	close(rm.stopChan)
	return nil
}

func (rm *ResourceManager) heartbeatLoop() {
	ticker := time.NewTicker(rm.heartbeatInterval)
	defer ticker.Stop()
	for {
		select {
		case <-rm.stopChan:
			return
		case <-ticker.C:
			rm.checkResources()
		}
	}
}

// checkResources pings every registered resource that exposes a liveness
// probe. Both database handles do; anything else is tracked but not probed.
func (rm *ResourceManager) checkResources() {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for key, r := range rm.resources {
		var err error
		switch p := r.(type) {
		case interface{ Ping(context.Context) error }:
			err = p.Ping(ctx)
		case interface{ PingContext(context.Context) error }:
			err = p.PingContext(ctx)
		default:
			continue
		}
		if err != nil && logger.GlobalLogger != nil {
			logger.GlobalLogger.LogAudit(fmt.Sprintf("resource %s unhealthy: %v", key, err))
		}
	}
}

func (rm *ResourceManager) AddResource(key string, resource interface{}) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.resources[key] = resource
}

func (rm *ResourceManager) GetResource(key string) (interface{}, bool) {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	resource, exists := rm.resources[key]
	return resource, exists
}

func (rm *ResourceManager) RemoveResource(key string) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	delete(rm.resources, key)
}

func (rm *ResourceManager) ListResources() []string {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	keys := make([]string, 0, len(rm.resources))
	for key := range rm.resources {
		keys = append(keys, key)
	}
	return keys
}
