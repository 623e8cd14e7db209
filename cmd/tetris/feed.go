package main

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/platform/feed"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	engine "github.com/vovakirdan/tui-tetris/internal/tetris"
)

var flagEvents string

// observable is implemented by games that publish engine events.
type observable interface {
	Observe(l engine.Listener)
}

// startFeed serves the WebSocket event feed when --events is set. observe
// attaches a game to the feed under a session name; stop shuts it down.
func startFeed(logger *log.Logger) (observe func(session string, g registry.Game), stop func()) {
	if flagEvents == "" {
		return func(string, registry.Game) {}, func() {}
	}

	hub := feed.NewHub(logger)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := feed.ListenAndServe(ctx, flagEvents, hub); err != nil {
			logger.Error("event feed stopped", "error", err)
		}
	}()

	observe = func(session string, g registry.Game) {
		if o, ok := g.(observable); ok {
			o.Observe(hub.Listener(session))
		}
	}
	stop = func() {
		cancel()
		<-done
	}
	return observe, stop
}
