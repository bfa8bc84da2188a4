package monitoring

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"
)

// ScanStatus tracks the progress of a running scan for the health
// endpoint. Safe for concurrent use.
type ScanStatus struct {
	mu             sync.RWMutex
	startedAt      time.Time
	currentTicker  string
	processedCount int
	skippedCount   int
}

// NewScanStatus creates a status tracker anchored at now.
func NewScanStatus() *ScanStatus {
	return &ScanStatus{startedAt: time.Now()}
}

// SetCurrent records the instrument currently being scanned.
func (s *ScanStatus) SetCurrent(ticker string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentTicker = ticker
}

// MarkProcessed increments the processed counter.
func (s *ScanStatus) MarkProcessed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.processedCount++
}

// MarkSkipped increments the skipped counter.
func (s *ScanStatus) MarkSkipped() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.skippedCount++
}

// ServeHTTP reports scan progress as JSON.
func (s *ScanStatus) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := map[string]interface{}{
		"status":          "running",
		"started_at":      s.startedAt.Format(time.RFC3339),
		"uptime_seconds":  int(time.Since(s.startedAt).Seconds()),
		"current_ticker":  s.currentTicker,
		"processed_count": s.processedCount,
		"skipped_count":   s.skippedCount,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}

// Serve exposes /metrics and /healthz on the given port in a background
// goroutine. Intended for long scans; errors are logged, not fatal.
func Serve(port int, status *ScanStatus) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", NewMetricsHandler())
	if status != nil {
		mux.Handle("/healthz", status)
	}

	go func() {
		addr := fmt.Sprintf(":%d", port)
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Printf("⚠️  Metrics server stopped: %v", err)
		}
	}()
}
