package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	summarydomain "github.com/tinkertanker/discord-summariser/internal/summary/domain"

	"github.com/adhocore/gronx"
)

// StaleScanner is the scan entry point the scheduler drives
type StaleScanner interface {
	ScanStaleServers(ctx context.Context) (*summarydomain.ScanReport, error)
}

// ScanScheduler runs the stale-server scan on a cron expression
type ScanScheduler struct {
	scanner  StaleScanner
	expr     string
	timeout  time.Duration
	now      func() time.Time
	stopChan chan struct{}
	done     chan struct{}

	mu      sync.Mutex
	started bool
	stopped bool
}

// NewScanScheduler validates expr. An empty expr gives a scheduler whose
// Start is a no-op.
func NewScanScheduler(scanner StaleScanner, expr string) (*ScanScheduler, error) {
	if expr != "" && !gronx.IsValid(expr) {
		return nil, fmt.Errorf("invalid SCAN_CRON expression %q", expr)
	}
	return &ScanScheduler{
		scanner:  scanner,
		expr:     expr,
		timeout:  30 * time.Minute,
		now:      time.Now,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

// Start begins the scheduler loop. It does nothing after Stop or when
// already started.
func (s *ScanScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started || s.stopped {
		return
	}
	s.started = true

	if s.expr == "" {
		log.Println("[Scheduler] SCAN_CRON is empty, scheduled scans disabled")
		close(s.done)
		return
	}

	log.Printf("[Scheduler] Starting scan scheduler (cron: %s)", s.expr)
	go s.loop()
}

// Stop gracefully stops the scheduler and waits for a running scan
func (s *ScanScheduler) Stop() {
	s.mu.Lock()
	if !s.stopped {
		s.stopped = true
		close(s.stopChan)
		if !s.started {
			close(s.done)
		}
	}
	s.mu.Unlock()
	<-s.done
}

func (s *ScanScheduler) loop() {
	defer close(s.done)

	for {
		next, err := gronx.NextTickAfter(s.expr, s.now(), false)
		if err != nil {
			log.Printf("[Scheduler] Failed to compute next tick: %v", err)
			return
		}

		timer := time.NewTimer(time.Until(next))
		select {
		case <-timer.C:
			s.RunOnce()
		case <-s.stopChan:
			timer.Stop()
			log.Println("[Scheduler] Scheduler stopped")
			return
		}
	}
}

// RunOnce performs a single stale-server scan
func (s *ScanScheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	report, err := s.scanner.ScanStaleServers(ctx)
	if err != nil {
		log.Printf("[Scheduler] Stale scan failed: %v", err)
		return
	}
	log.Printf("[Scheduler] Stale scan done: %d servers, %d summaries", len(report.Servers), report.SummariesCreated)
}
