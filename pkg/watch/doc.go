// Package watch re-runs conversions when SLD files change.
//
// A Watcher observes either a single file, through its parent directory
// so that atomic saves are seen, or a directory tree filtered by file
// extension. Bursts of events are coalesced by a Debouncer and delivered
// as one sorted batch of paths; batches are delivered one at a time.
//
//	w, err := watch.New(watch.ConfigFromSettings(&cfg.Watch, "roads.sld"), logger)
//	if err != nil {
//		return err
//	}
//	defer w.Stop()
//	return w.Watch(ctx, func(ctx context.Context, paths []string) error {
//		_, err := converter.ConvertFileTo(ctx, paths[0], "roads.xml")
//		return err
//	})
package watch
