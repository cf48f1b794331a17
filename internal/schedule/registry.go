// Package schedule implements the admin-triggered maintenance task runner:
// a static registry of named tasks, a runner that records last-run outcomes
// in a short-lived cache entry, and the background scheduler loop's task set.
package schedule

import (
	"context"
	"sync"
)

// TaskFunc executes one maintenance pass and returns a human-readable detail.
type TaskFunc func(ctx context.Context) (string, error)

// Task is a named maintenance command exposed on the admin schedule page.
type Task struct {
	Name        string
	Description string
	Run         TaskFunc
}

// Registry holds the static task set in registration order.
type Registry struct {
	mu    sync.RWMutex
	order []string
	tasks map[string]Task
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tasks: make(map[string]Task)}
}

// Register adds a task. Re-registering a name replaces the task in place.
func (r *Registry) Register(task Task) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tasks[task.Name]; !exists {
		r.order = append(r.order, task.Name)
	}
	r.tasks[task.Name] = task
}

// Get returns the named task.
func (r *Registry) Get(name string) (Task, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	task, ok := r.tasks[name]
	return task, ok
}

// List returns tasks in registration order.
func (r *Registry) List() []Task {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]Task, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.tasks[name])
	}
	return result
}
