// ABOUTME: Polls the content filesystem for changes and triggers a live reload when its fingerprint moves.
// ABOUTME: Each change clears the rendered-markdown cache and is announced with a fresh ULID revision.
package web

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"time"

	"github.com/2389-research/coursesite/content"
	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
)

// Broadcaster receives reload revisions. *Hub implements it.
type Broadcaster interface {
	Broadcast(revision string) int
}

// Watcher polls a content library for changes.
type Watcher struct {
	lib         *content.Library
	broadcaster Broadcaster
	interval    time.Duration
	logger      logrus.FieldLogger
}

// NewWatcher creates a watcher. interval must be positive.
func NewWatcher(lib *content.Library, b Broadcaster, interval time.Duration, logger logrus.FieldLogger) *Watcher {
	return &Watcher{lib: lib, broadcaster: b, interval: interval, logger: logger}
}

// Run polls until ctx is done. It returns ctx.Err() on cancellation or the
// error from the initial fingerprint.
func (w *Watcher) Run(ctx context.Context) error {
	last, err := Fingerprint(w.lib.FS())
	if err != nil {
		return fmt.Errorf("fingerprinting content: %w", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		current, err := Fingerprint(w.lib.FS())
		if err != nil {
			w.logger.WithError(err).Warn("content fingerprint failed")
			continue
		}
		if current == last {
			continue
		}
		last = current

		w.lib.Invalidate()
		revision := ulid.Make().String()
		w.logger.WithField("revision", revision).Info("content changed")
		w.broadcaster.Broadcast(revision)
	}
}

// Fingerprint hashes the name, size, and modification time of every file
// under fsys.
func Fingerprint(fsys fs.FS) (string, error) {
	h := sha256.New()
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		fmt.Fprintf(h, "%s\x00%d\x00%d\n", p, info.Size(), info.ModTime().UnixNano())
		return nil
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
