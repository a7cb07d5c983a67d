// Package dev provides live reload for the page server.
//
// A Watcher reports page document changes using fsnotify, and a
// ReloadServer tells connected browsers to refresh.
//
// # Usage
//
//	reload := dev.NewReloadServer(logger)
//	watcher, err := dev.NewWatcher(dev.WatcherConfig{Paths: []string{"pages"}})
//	if err != nil {
//	    return err
//	}
//	watcher.OnChange(func(changes []dev.Change) {
//	    reload.NotifyReload()
//	})
//	go watcher.Start(ctx)
//
// # Reload Protocol
//
// The browser connects to /_markup/reload via WebSocket.
// Messages are JSON-encoded:
//
//	{"type": "reload"}                // Triggers full page reload
//	{"type": "error", "error": "..."} // Shows error overlay
//	{"type": "clear"}                 // Clears error overlay
package dev
