package sysnet

import "github.com/open-control-systems/wasd/components/core"

// LogLookupHandler logs completed lookups.
type LogLookupHandler struct{}

// HandleLookup logs failed lookups as errors and the rest as informational events.
func (LogLookupHandler) HandleLookup(report LookupReport) {
	if report.Err != nil {
		core.LogErr.Printf("lookup: failed: type=%s name=%s duration=%s err=%v\n",
			report.Type, report.Name, report.Duration, report.Err)

		return
	}

	core.LogInf.Printf("lookup: done: type=%s name=%s records=%d duration=%s\n",
		report.Type, report.Name, report.Records, report.Duration)
}
