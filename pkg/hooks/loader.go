package hooks

import (
	"fmt"
	"os"

	"github.com/glorpus-work/revctl/pkg/errors"
)

// LoadScripts reads the script file configured for each hook type into the
// executor. Empty paths are skipped.
func LoadScripts(executor *TengoExecutor, paths map[HookType]string) error {
	for hookType, path := range paths {
		if path == "" {
			continue
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", errors.ErrHookLoad, hookType, err)
		}
		if err := executor.AddScript(hookType, string(content)); err != nil {
			return errors.Wrapf(err, "error adding hook %s", hookType)
		}
	}
	return nil
}

// HookTemplate generates a starter script for a hook type.
func HookTemplate(hookType HookType) string {
	switch hookType {
	case PreUpload:
		return `// Pre-upload hook
// Runs before a revision key is created. Set err to abort the upload.
// Available variables: manifest, revision (empty here), baseUrl, hookType

/*
if manifest == "production" {
    err = "uploads to production are frozen"
}
*/`

	case PostUpload:
		return `// Post-upload hook
// Runs after a revision was stored and activated.
// Available variables: manifest, revision, baseUrl, hookType

/*
fmt := import("fmt")
fmt.println("uploaded ", revision)
*/`

	case PostActivate:
		return `// Post-activate hook
// Runs after a revision became current.
// Available variables: manifest, revision, baseUrl, hookType`

	default:
		return "// Unknown hook type: " + string(hookType)
	}
}
