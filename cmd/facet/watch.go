package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/taigrr/facet/pkg/render"
	"github.com/taigrr/facet/pkg/scene"
)

// reload is the outcome of reparsing a watched scene file.
type reload struct {
	scene *scene.Scene
	err   error
}

// watchScene reloads path whenever it is written or replaced and sends the
// result on out. Each successfully loaded scene is passed through prepare
// first, if set. The directory is watched so editors that save by rename
// are still seen. Watching stops when ctx is done.
func watchScene(ctx context.Context, path string, prepare func(*scene.Scene), out chan<- reload) error {
	path = filepath.Clean(path)
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != path || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				s, err := scene.Load(path)
				if err == nil && prepare != nil {
					prepare(s)
				}
				select {
				case out <- reload{scene: s, err: err}:
				case <-ctx.Done():
					return
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				render.Logger().Warn("scene watcher", "err", err)
			}
		}
	}()
	return nil
}
