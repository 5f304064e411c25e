package rest

import (
	"context"
	"net/http"
	"time"
)

const pingTimeout = 3 * time.Second

type storePinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports process and record store health.
type HealthHandler struct {
	store   storePinger
	driver  string
	version string
	started time.Time
}

// NewHealthHandler reports on store, which was opened with the named driver.
func NewHealthHandler(store storePinger, driver, version string) *HealthHandler {
	return &HealthHandler{
		store:   store,
		driver:  driver,
		version: version,
		started: time.Now(),
	}
}

// HealthResponse is the body of /live, /ready and /health.
type HealthResponse struct {
	Status    string       `json:"status"`
	Version   string       `json:"version,omitempty"`
	Uptime    string       `json:"uptime,omitempty"`
	Store     *StoreStatus `json:"store,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// StoreStatus describes the record store backend.
type StoreStatus struct {
	Driver  string `json:"driver"`
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

// Live answers 200 while the process serves HTTP. The store is not consulted.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now()})
}

// Ready answers 503 until the store responds to a ping.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	st := h.pingStore(r.Context())
	st.Latency = ""
	writeJSON(w, statusCode(st), HealthResponse{
		Status:    st.Status,
		Store:     &st,
		Timestamp: time.Now(),
	})
}

// Health is Ready plus ping latency, uptime and the build version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	st := h.pingStore(r.Context())
	now := time.Now()
	writeJSON(w, statusCode(st), HealthResponse{
		Status:    st.Status,
		Version:   h.version,
		Uptime:    now.Sub(h.started).Truncate(time.Second).String(),
		Store:     &st,
		Timestamp: now,
	})
}

func (h *HealthHandler) pingStore(ctx context.Context) StoreStatus {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	start := time.Now()
	if err := h.store.Ping(ctx); err != nil {
		return StoreStatus{Driver: h.driver, Status: "down"}
	}
	return StoreStatus{Driver: h.driver, Status: "ok", Latency: time.Since(start).String()}
}

func statusCode(st StoreStatus) int {
	if st.Status != "ok" {
		return http.StatusServiceUnavailable
	}
	return http.StatusOK
}
