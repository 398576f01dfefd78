package hooks

import (
	"fmt"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/glorpus-work/revctl/pkg/errors"
)

// TengoExecutor handles the execution of Tengo scripts.
type TengoExecutor struct {
	scripts map[HookType]string
	mutex   sync.RWMutex
}

// NewTengoExecutor creates a new Tengo script executor.
func NewTengoExecutor() *TengoExecutor {
	return &TengoExecutor{
		scripts: make(map[HookType]string),
	}
}

// Execute runs the script registered for hookType. A missing script is not an error.
//
// Scripts see manifest, revision, baseUrl, hookType and any custom Vars.
// Assigning a non-empty string or an error value to the predeclared err
// variable fails the hook.
func (e *TengoExecutor) Execute(hookType HookType, ctx HookContext) error {
	e.mutex.RLock()
	script, exists := e.scripts[hookType]
	e.mutex.RUnlock()
	if !exists {
		return nil
	}

	scriptInstance := tengo.NewScript([]byte(script))
	scriptInstance.SetImports(stdlib.GetModuleMap("fmt", "os", "text", "times", "json"))

	vars := map[string]interface{}{
		"manifest": ctx.Manifest,
		"revision": ctx.Revision,
		"baseUrl":  ctx.BaseURL,
		"hookType": string(hookType),
		"err":      "",
	}
	for k, v := range ctx.Vars {
		vars[k] = v
	}
	for k, v := range vars {
		if err := scriptInstance.Add(k, v); err != nil {
			return fmt.Errorf("failed to add variable '%s' to script: %w", k, err)
		}
	}

	compiled, err := scriptInstance.Run()
	if err != nil {
		return fmt.Errorf("%s: %w: %w", hookType, errors.ErrHookExecution, err)
	}

	switch v := compiled.Get("err").Value().(type) {
	case error:
		return fmt.Errorf("%s: %w: %w", hookType, errors.ErrHookScript, v)
	case *tengo.Error:
		return fmt.Errorf("%s: %w: %v", hookType, errors.ErrHookScript, tengo.ToInterface(v.Value))
	case string:
		if v != "" {
			return fmt.Errorf("%s: %w: %s", hookType, errors.ErrHookScript, v)
		}
	}

	return nil
}

// AddScript adds or updates a script for the specified hook type.
func (e *TengoExecutor) AddScript(hookType HookType, script string) error {
	if hookType == "" {
		return errors.ErrHookTypeEmpty
	}
	if !hookType.IsValid() {
		return fmt.Errorf("%w: unsupported hook type %q", errors.ErrHookLoad, hookType)
	}
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.scripts[hookType] = script
	return nil
}

// RemoveScript removes the script for the specified hook type.
func (e *TengoExecutor) RemoveScript(hookType HookType) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	delete(e.scripts, hookType)
}

// HasScript checks if a script exists for the specified hook type.
func (e *TengoExecutor) HasScript(hookType HookType) bool {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	_, exists := e.scripts[hookType]
	return exists
}
