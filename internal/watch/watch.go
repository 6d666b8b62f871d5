// Package watch re-runs an analysis whenever a source or grammar file under
// the watched directories is written.
package watch

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"

	"chomsky/internal/config"
)

var log = commonlog.GetLogger("chomsky.watch")

// Watch observes dirs and their subdirectories until ctx is done. onChange
// is called with the path of every written or created file that files
// classifies as source or grammar. Directories created later are watched
// too. ready, when not nil, is closed once the initial watches are in place.
func Watch(ctx context.Context, dirs []string, files config.FilesConfig, onChange func(path string), ready chan<- struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create watcher")
	}
	defer watcher.Close()

	for _, dir := range dirs {
		if err := addTree(watcher, dir); err != nil {
			return err
		}
	}
	if ready != nil {
		close(ready)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addTree(watcher, event.Name); err != nil {
						log.Warningf("%v", err)
					}
					continue
				}
			}
			if files.KindOf(event.Name) == config.UnknownFile {
				continue
			}
			log.Debugf("changed: %s (%s)", event.Name, event.Op)
			onChange(event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Errorf("watcher error: %v", err)
		}
	}
}

func addTree(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, "watch %s", path)
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && SkipDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			return errors.Wrapf(err, "watch %s", path)
		}
		log.Debugf("watching %s", path)
		return nil
	})
}

// SkipDir reports whether a directory is never searched for inputs.
func SkipDir(name string) bool {
	return name == ".git" || name == "node_modules"
}
