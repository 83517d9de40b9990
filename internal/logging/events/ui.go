package events

import "github.com/atomicstack/mux-launcher/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

var (
	UI     = UITracer{}
	Filter = FilterTracer{}
)

func (UITracer) Cursor(index, topRow int) {
	logging.Trace("launcher.cursor", map[string]interface{}{"index": index, "topRow": topRow})
}

func (UITracer) Launch(index int, label, action string) {
	logging.Trace("launcher.launch", map[string]interface{}{
		"index":  index,
		"label":  label,
		"action": action,
	})
}

func (UITracer) Cancel(reason string) {
	logging.Trace("launcher.cancel", map[string]interface{}{"reason": reason})
}

func (UITracer) Resize(width, height, visibleRows int) {
	logging.Trace("launcher.resize", map[string]interface{}{
		"width":       width,
		"height":      height,
		"visibleRows": visibleRows,
	})
}

func (FilterTracer) Enter() {
	logging.Trace("filter.enter", nil)
}

func (FilterTracer) Leave() {
	logging.Trace("filter.leave", nil)
}

func (FilterTracer) Append(filter string, matches int) {
	logging.Trace("filter.append", map[string]interface{}{"filter": filter, "matches": matches})
}

func (FilterTracer) Backspace(filter string, matches int) {
	logging.Trace("filter.backspace", map[string]interface{}{"filter": filter, "matches": matches})
}
