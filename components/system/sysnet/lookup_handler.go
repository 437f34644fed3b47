package sysnet

import "time"

// LookupReport describes a single completed lookup.
type LookupReport struct {
	Type     RecordType
	Name     string
	Records  int
	Duration time.Duration
	Err      error
}

// LookupHandler to handle the result of DNS-SD record lookups.
type LookupHandler interface {
	// HandleLookup handles the report of a completed lookup.
	HandleLookup(report LookupReport)
}

// FanoutLookupHandler notifies the underlying handlers about completed lookups.
type FanoutLookupHandler struct {
	handlers []LookupHandler
}

// HandleLookup passes the report to all registered handlers.
func (h *FanoutLookupHandler) HandleLookup(report LookupReport) {
	for _, handler := range h.handlers {
		handler.HandleLookup(report)
	}
}

// Add adds handler to be notified about completed lookups.
func (h *FanoutLookupHandler) Add(handler LookupHandler) {
	h.handlers = append(h.handlers, handler)
}
