package events

import "github.com/atomicstack/mux-launcher/internal/logging"

type CatalogTracer struct{}

type DispatchTracer struct{}

var (
	Catalog  = CatalogTracer{}
	Dispatch = DispatchTracer{}
)

func (CatalogTracer) Built(domains, tabs, workspaces, commands, shortcuts, free int) {
	logging.Trace("catalog.built", map[string]interface{}{
		"domains":    domains,
		"tabs":       tabs,
		"workspaces": workspaces,
		"commands":   commands,
		"shortcuts":  shortcuts,
		"free":       free,
	})
}

func (CatalogTracer) HookFailed(label string, err error) {
	if err == nil {
		return
	}
	logging.Trace("catalog.hook-failed", map[string]interface{}{
		"label": label,
		"error": err.Error(),
	})
}

func (DispatchTracer) Notify(paneID, action string) {
	logging.Trace("dispatch.notify", map[string]interface{}{"pane": paneID, "action": action})
}

func (DispatchTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("dispatch.error", map[string]interface{}{"error": err.Error()})
}
