package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/you-not-fish/gum/internal/driver"
)

// settle is how long the watcher waits for a burst of events to end
// before translating.
const settle = 50 * time.Millisecond

// runWatch translates filename now and again on every change until
// interrupted.
func runWatch(filename string) int {
	p := printer()
	tc, err := driver.Load(config())
	if err != nil {
		p.Print(err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	build := func() {
		if err := compileOnce(tc, filename); err != nil {
			p.Print(err)
			return
		}
		if *output != "" {
			fmt.Fprintf(os.Stderr, "gumc: wrote %s\n", *output)
		}
	}
	if err := watchFile(ctx, filename, build); err != nil {
		p.Print(err)
		return 1
	}
	return 0
}

// watchFile calls build once, then after each change to filename, until
// ctx is done. The directory is watched rather than the file so that
// editors replacing the file are noticed.
func watchFile(ctx context.Context, filename string, build func()) error {
	abs, err := filepath.Abs(filename)
	if err != nil {
		return errors.Wrap(err, "watch")
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "watch")
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return errors.Wrapf(err, "watching %s", filepath.Dir(abs))
	}

	build()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(settle)
			} else {
				timer.Reset(settle)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			build()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return errors.Wrap(err, "watch")
		}
	}
}
