package events

import "github.com/atomicstack/mux-launcher/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Exit(dispatched bool) {
	logging.Trace("app.exit", map[string]interface{}{"dispatched": dispatched})
}
