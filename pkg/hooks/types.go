// Package hooks runs user-supplied Tengo scripts around revision uploads and activations.
package hooks

// HookType represents the type of hook.
type HookType string

// Supported hook types.
const (
	// PreUpload runs before a tag is created; a failing script aborts the upload.
	PreUpload HookType = "pre-upload"
	// PostUpload runs after a revision was stored and activated.
	PostUpload HookType = "post-upload"
	// PostActivate runs after every successful activation.
	PostActivate HookType = "post-activate"
)

// Types returns all supported hook types.
func Types() []HookType {
	return []HookType{PreUpload, PostUpload, PostActivate}
}

// IsValid reports whether t is a supported hook type.
func (t HookType) IsValid() bool {
	switch t {
	case PreUpload, PostUpload, PostActivate:
		return true
	default:
		return false
	}
}

// HookContext contains information passed to hooks.
type HookContext struct {
	Manifest string
	Revision string
	BaseURL  string
	Vars     map[string]interface{}
}
