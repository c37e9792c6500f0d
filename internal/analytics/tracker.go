package analytics

import (
	applog "tenpak/internal/log"
)

// Event is one named tracking call with the category/action/label/value
// shape the tag manager expects.
type Event struct {
	Name     string
	Category string
	Action   string
	Label    string
	Value    int
	Params   map[string]any
}

// Sink forwards events to the external tag-manager collector.
type Sink interface {
	Push(Event) error
}

// Tracker emits events through a Sink when one is configured and the
// visitor's consent allows analytics storage. A missing sink or a
// denied consent downgrades Track to a warning/no-op; it never fails
// the caller.
type Tracker struct {
	Sink Sink
}

// Track emits one event under the given consent.
func (t *Tracker) Track(c Consent, ev Event) {
	if c.AnalyticsStorage != Granted {
		return
	}
	if t == nil || t.Sink == nil {
		applog.Warn("analytics.sink.absent", map[string]any{"event": ev.Name})
		return
	}
	if err := t.Sink.Push(ev); err != nil {
		applog.Warn("analytics.push.fail", map[string]any{"event": ev.Name, "err": err.Error()})
	}
}

// LogSink records events in the structured log. The tag manager does
// the real forwarding client-side; this keeps a server-side trace of
// the same events.
type LogSink struct{}

func (LogSink) Push(ev Event) error {
	applog.Info(nil, "analytics.event", map[string]any{
		"event": ev.Name, "category": ev.Category, "action": ev.Action, "label": ev.Label,
	})
	return nil
}

// Canned events mirroring the site's interaction points.

func ProductView(id, name string) Event {
	return Event{
		Name: "view_item", Category: "product", Action: "view", Label: name,
		Params: map[string]any{"item_id": id, "item_name": name},
	}
}

func FormSubmit(form string) Event {
	return Event{Name: "form_submit", Category: "engagement", Action: "submit", Label: form}
}

func FileDownload(fileName, ext string) Event {
	return Event{
		Name: "file_download", Category: "engagement", Action: "download", Label: fileName,
		Params: map[string]any{"file_extension": ext},
	}
}

func Search(term string, results int) Event {
	return Event{
		Name: "search", Category: "engagement", Action: "search", Label: term,
		Value:  results,
		Params: map[string]any{"search_term": term, "results_count": results},
	}
}

func OutboundLink(url string) Event {
	return Event{
		Name: "click", Category: "navigation", Action: "outbound_link", Label: url,
		Params: map[string]any{"outbound_url": url},
	}
}
