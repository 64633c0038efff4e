package hooks

import (
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/glorpus-work/mlcat/pkg/errors"
)

// TengoExecutor compiles and runs Tengo hook scripts.
type TengoExecutor struct {
	scripts map[Event]string
	mutex   sync.RWMutex
}

// NewTengoExecutor creates an executor with no scripts registered.
func NewTengoExecutor() *TengoExecutor {
	return &TengoExecutor{
		scripts: make(map[Event]string),
	}
}

// Execute runs the script registered for the event. A missing script is not an
// error. A script signals failure by assigning a non-empty string or error to
// the `err` variable.
func (e *TengoExecutor) Execute(event Event, ctx Context) error {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	script, exists := e.scripts[event]
	if !exists {
		return nil
	}

	instance := tengo.NewScript([]byte(script))
	instance.SetImports(stdlib.GetModuleMap("fmt", "os", "text", "times"))

	_ = instance.Add("datasetID", ctx.DatasetID)
	_ = instance.Add("collectionID", ctx.CollectionID)
	_ = instance.Add("archivePath", ctx.ArchivePath)
	_ = instance.Add("destDir", ctx.DestDir)
	for k, v := range ctx.Vars {
		_ = instance.Add(k, v)
	}

	compiled, err := instance.Run()
	if err != nil {
		return errors.Wrapf(errors.ErrHookExecution, "%s: %v", event, err)
	}

	errVar := compiled.Get("err")
	if errVar != nil {
		switch v := errVar.Value().(type) {
		case error:
			return errors.Wrap(errors.ErrHookScript, v.Error())
		case string:
			if v != "" {
				return errors.Wrap(errors.ErrHookScript, v)
			}
		}
	}
	return nil
}

// AddScript registers or replaces the script for the event.
func (e *TengoExecutor) AddScript(event Event, script string) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.scripts[event] = script
}

// RemoveScript unregisters the script for the event.
func (e *TengoExecutor) RemoveScript(event Event) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	delete(e.scripts, event)
}

// HasScript reports whether a script is registered for the event.
func (e *TengoExecutor) HasScript(event Event) bool {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	_, exists := e.scripts[event]
	return exists
}
