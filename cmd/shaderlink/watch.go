package main

import (
	"context"
	"io"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watch re-resolves a file each time it is written or re-created, until
// ctx is done. Directories are watched rather than files so that editors
// replacing a file on save keep being followed.
func (r *resolver) watch(ctx context.Context, w io.Writer, paths []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	watched := make(map[string]string, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		watched[abs] = p
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return err
		}
		dirs[dir] = true
	}

	r.log.Info("watching", "files", len(paths))

	for {
		select {
		case e, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			abs, err := filepath.Abs(e.Name)
			if err != nil {
				continue
			}
			path, ok := watched[abs]
			if !ok {
				continue
			}
			r.log.Debug("changed", "file", path)
			r.printAll(w, r.resolveAll([]string{path}))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.log.Error("watch failed", "err", err)

		case <-ctx.Done():
			return nil
		}
	}
}
