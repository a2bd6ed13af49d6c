package metrics

import (
	"sync"
	"time"
)

// Registry acumula contadores de requests para el endpoint /metrics.
type Registry struct {
	mu sync.Mutex

	total         int64
	totalDuration time.Duration
	byStatusClass map[string]int64
	byRoute       map[string]*routeStats
	startedAt     time.Time
}

type routeStats struct {
	Count         int64
	TotalDuration time.Duration
}

func NewRegistry() *Registry {
	return &Registry{
		byStatusClass: make(map[string]int64),
		byRoute:       make(map[string]*routeStats),
		startedAt:     time.Now(),
	}
}

// Observe registra un request terminado.
func (r *Registry) Observe(method, route string, status int, dur time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.total++
	r.totalDuration += dur
	r.byStatusClass[statusClass(status)]++

	key := method + " " + route
	rs, ok := r.byRoute[key]
	if !ok {
		rs = &routeStats{}
		r.byRoute[key] = rs
	}
	rs.Count++
	rs.TotalDuration += dur
}

// Snapshot es la vista serializable del registro.
type Snapshot struct {
	UptimeSeconds  float64            `json:"uptime_seconds"`
	RequestsTotal  int64              `json:"requests_total"`
	AvgLatencyMs   float64            `json:"avg_latency_ms"`
	ByStatusClass  map[string]int64   `json:"by_status_class"`
	RequestsPerSec float64            `json:"requests_per_second"`
	Routes         map[string]RouteMs `json:"routes"`
}

type RouteMs struct {
	Count        int64   `json:"count"`
	AvgLatencyMs float64 `json:"avg_latency_ms"`
}

func (r *Registry) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	uptime := time.Since(r.startedAt).Seconds()
	snap := Snapshot{
		UptimeSeconds: uptime,
		RequestsTotal: r.total,
		ByStatusClass: make(map[string]int64, len(r.byStatusClass)),
		Routes:        make(map[string]RouteMs, len(r.byRoute)),
	}
	if r.total > 0 {
		snap.AvgLatencyMs = float64(r.totalDuration.Milliseconds()) / float64(r.total)
	}
	if uptime > 0 {
		snap.RequestsPerSec = float64(r.total) / uptime
	}
	for k, v := range r.byStatusClass {
		snap.ByStatusClass[k] = v
	}
	for k, v := range r.byRoute {
		rm := RouteMs{Count: v.Count}
		if v.Count > 0 {
			rm.AvgLatencyMs = float64(v.TotalDuration.Milliseconds()) / float64(v.Count)
		}
		snap.Routes[k] = rm
	}
	return snap
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
