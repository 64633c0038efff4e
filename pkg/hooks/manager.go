package hooks

import (
	"sync"

	"github.com/glorpus-work/mlcat/pkg/errors"
)

// DefaultManager is the default Manager implementation, backed by a
// TengoExecutor.
type DefaultManager struct {
	executor *TengoExecutor
	mutex    sync.RWMutex
}

// NewManager creates an empty hook manager.
func NewManager() *DefaultManager {
	return &DefaultManager{
		executor: NewTengoExecutor(),
	}
}

// Execute runs the script registered for the event, if any.
func (m *DefaultManager) Execute(event Event, ctx Context) error {
	if !m.HasHook(event) {
		return nil
	}

	ctxCopy := ctx
	if ctxCopy.Vars == nil {
		ctxCopy.Vars = make(map[string]interface{})
	}
	if err := m.executor.Execute(event, ctxCopy); err != nil {
		return errors.Wrapf(err, "hook %s", event)
	}
	return nil
}

// AddHook registers or replaces the script for a hook's event.
func (m *DefaultManager) AddHook(hook Hook) error {
	if hook.Event == "" {
		return ErrEventEmpty
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.executor.AddScript(hook.Event, hook.Content)
	return nil
}

// RemoveHook unregisters the script for the event.
func (m *DefaultManager) RemoveHook(event Event) error {
	if event == "" {
		return ErrEventEmpty
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.executor.RemoveScript(event)
	return nil
}

// HasHook reports whether a script is registered for the event.
func (m *DefaultManager) HasHook(event Event) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return m.executor.HasScript(event)
}
