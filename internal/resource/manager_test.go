package resource

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	calls atomic.Int64
}

func (f *fakePinger) Ping(ctx context.Context) error {
	f.calls.Add(1)
	return nil
}

func TestResourceRegistration(t *testing.T) {
	rm := NewResourceManagerService(nil, map[string]interface{}{
		"db": &fakePinger{},
	}).(*ResourceManager)

	assert.Equal(t, []string{"db"}, rm.ListResources())

	rm.AddResource("cache", "not a pinger")
	_, ok := rm.GetResource("cache")
	assert.True(t, ok)

	rm.RemoveResource("cache")
	_, ok = rm.GetResource("cache")
	assert.False(t, ok)
}

func TestHeartbeatProbesResources(t *testing.T) {
	pinger := &fakePinger{}
	rm := NewResourceManagerService(map[string]interface{}{
		"heartbeat_interval": "10ms",
	}, map[string]interface{}{
		"db": pinger,
	}).(*ResourceManager)

	require.NoError(t, rm.Start())
	defer rm.Stop()

	for i := 0; i < 200; i++ {
		if pinger.calls.Load() > 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("heartbeat never probed the registered resource")
}
