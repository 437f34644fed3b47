package stinfluxdb

import (
	"context"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/open-control-systems/wasd/components/core"
	"github.com/open-control-systems/wasd/components/system/sysnet"
)

// LookupHandler stores DNS-SD lookup reports in influxDB.
//
// References:
//   - https://docs.influxdata.com/influxdb/cloud/get-started
//   - https://docs.influxdata.com/influxdb/cloud/api-guide/client-libraries/go/
type LookupHandler struct {
	ctx         context.Context
	dbClient    influxdb2.Client
	writeClient api.WriteAPIBlocking
}

// NewLookupHandler initializes influxDB handler.
//
// Parameters:
//   - ctx - parent context.
//   - closer - to register the handler for the underlying resource deallocation.
//   - params - various influxDB configuration parameters.
func NewLookupHandler(
	ctx context.Context,
	closer *core.FanoutCloser,
	params DBParams,
) *LookupHandler {
	dbClient := influxdb2.NewClient(params.URL, params.Token)
	writeClient := dbClient.WriteAPIBlocking(params.Org, params.Bucket)

	handler := &LookupHandler{
		ctx:         ctx,
		dbClient:    dbClient,
		writeClient: writeClient,
	}

	closer.Add("influxdb-lookup-handler", handler)

	return handler
}

// HandleLookup stores the lookup report as a single point.
//
// Remarks:
//   - Write failures are logged, lookups are never failed because of the DB.
func (h *LookupHandler) HandleLookup(report sysnet.LookupReport) {
	fields := map[string]interface{}{
		"records":     report.Records,
		"duration_ms": float64(report.Duration) / float64(time.Millisecond),
	}
	if report.Err != nil {
		fields["error"] = report.Err.Error()
	}

	point := influxdb2.NewPoint("dnssd_lookup",
		map[string]string{
			"type": report.Type.String(),
			"name": report.Name,
		},
		fields,
		time.Now())

	if err := h.writeClient.WritePoint(h.ctx, point); err != nil {
		core.LogErr.Printf("influxdb-lookup-handler: failed to write to DB: name=%s err=%v\n",
			report.Name, err)
	}
}

// Close stops writing data to the DB.
func (h *LookupHandler) Close() error {
	h.dbClient.Close()

	return nil
}
