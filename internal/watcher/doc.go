// Package watcher turns file system notifications for the manuscript
// directory into debounced batches.
//
// Only direct children of the directory are watched, matching what the
// loader reads. A batch carries the coalesced change per file name; the
// consumer is expected to rebuild from the directory rather than apply the
// events one by one.
//
// Usage:
//
//	w := watcher.New(dir, watcher.Options{Filter: loader.IsRecognized})
//	err := w.Run(ctx, func(ctx context.Context, batch []watcher.FileEvent) {
//	    // rebuild
//	})
package watcher
