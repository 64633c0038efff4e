package hooks

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/glorpus-work/mlcat/pkg/errors"
)

// scriptExtension is the only hook file extension the loader accepts.
const scriptExtension = ".tengo"

// LoadFromDir registers every recognized hook script found in dir. Files are
// matched by name: <event>.tengo, e.g. post-download.tengo. A missing
// directory is not an error. Files with other names or extensions are skipped.
func LoadFromDir(manager Manager, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(errors.ErrHookLoad, "read hooks directory %s: %v", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(entry.Name()) != scriptExtension {
			continue
		}

		event := Event(strings.TrimSuffix(entry.Name(), scriptExtension))
		switch event {
		case PreDownload, PostDownload, PostExtract:
		default:
			continue
		}

		content, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return errors.Wrapf(errors.ErrHookLoad, "read hook file %s: %v", entry.Name(), err)
		}

		if err := manager.AddHook(Hook{Event: event, Content: string(content)}); err != nil {
			return errors.Wrapf(err, "register hook %s", event)
		}
	}
	return nil
}
