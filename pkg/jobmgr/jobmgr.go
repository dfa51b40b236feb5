// Package jobmgr tracks named background goroutines so the same logical
// task is never started twice and running tasks can be cancelled by name.
//
// Typical usage:
//
//	jm := jobmgr.New()
//	jm.OnDone = func(name string, err error) {
//	    log.Printf("[Jobs] %s finished: %v", name, err)
//	}
//
//	_ = jm.Start("shard-reconnect:3", func(ctx context.Context) error {
//	    // do work until ctx is cancelled
//	    return nil
//	})
//
// The package is intentionally minimal: no retry logic, no worker pools, no
// persistence. Jobs are removed automatically when their function returns.
package jobmgr

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Manager starts, stops and tracks named jobs. It is safe for concurrent use.
type Manager struct {
	mu   sync.Mutex
	jobs map[string]context.CancelFunc

	// OnDone, if set, is called after a job's function returns. It runs on
	// the job's goroutine.
	OnDone func(name string, err error)
}

// New creates an empty Manager.
func New() *Manager {
	return &Manager{jobs: make(map[string]context.CancelFunc)}
}

// Start launches run on its own goroutine under the given name. If a job
// with the same name is still running, Start returns an error and nothing
// is launched.
func (m *Manager) Start(name string, run func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(context.Background())

	m.mu.Lock()
	if _, exists := m.jobs[name]; exists {
		m.mu.Unlock()
		cancel()
		return fmt.Errorf("job %q is already running", name)
	}
	m.jobs[name] = cancel
	m.mu.Unlock()

	go func() {
		err := run(ctx)

		m.mu.Lock()
		delete(m.jobs, name)
		m.mu.Unlock()
		cancel()

		if m.OnDone != nil {
			m.OnDone(name, err)
		}
	}()

	return nil
}

// Stop cancels the named job. It reports whether a job with that name was
// running. Stop does not wait for the job to exit.
func (m *Manager) Stop(name string) bool {
	m.mu.Lock()
	cancel, ok := m.jobs[name]
	m.mu.Unlock()
	if ok {
		cancel()
	}
	return ok
}

// StopAll cancels every running job.
func (m *Manager) StopAll() {
	m.mu.Lock()
	cancels := make([]context.CancelFunc, 0, len(m.jobs))
	for _, c := range m.jobs {
		cancels = append(cancels, c)
	}
	m.mu.Unlock()
	for _, c := range cancels {
		c()
	}
}

// Running returns the names of all running jobs, sorted.
func (m *Manager) Running() []string {
	m.mu.Lock()
	names := make([]string, 0, len(m.jobs))
	for name := range m.jobs {
		names = append(names, name)
	}
	m.mu.Unlock()
	sort.Strings(names)
	return names
}
