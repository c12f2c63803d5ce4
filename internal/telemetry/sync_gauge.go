package telemetry

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	api "go.opentelemetry.io/otel/metric"
)

type int64WithAttributes struct {
	value int64
	attrs attribute.Set
}

// Int64SyncGauge is an observable gauge whose last value per attribute set is pushed with Set
type Int64SyncGauge struct {
	gauge  api.Int64ObservableGauge
	mu     sync.RWMutex
	values map[attribute.Distinct]int64WithAttributes
}

func NewInt64SyncGauge(meter api.Meter, name string, options ...api.Int64ObservableGaugeOption) (*Int64SyncGauge, error) {
	g := &Int64SyncGauge{values: make(map[attribute.Distinct]int64WithAttributes)}
	options = append(options, api.WithInt64Callback(g.observe))
	gauge, err := meter.Int64ObservableGauge(name, options...)
	if err != nil {
		return nil, err
	}
	g.gauge = gauge
	return g, nil
}

func (g *Int64SyncGauge) observe(_ context.Context, observer api.Int64Observer) error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, entry := range g.values {
		observer.Observe(entry.value, api.WithAttributeSet(entry.attrs))
	}
	return nil
}

func (g *Int64SyncGauge) Set(value int64, attrs ...attribute.KeyValue) {
	set := attribute.NewSet(attrs...)
	g.mu.Lock()
	defer g.mu.Unlock()
	g.values[set.Equivalent()] = int64WithAttributes{value, set}
}
