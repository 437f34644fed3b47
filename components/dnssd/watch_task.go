package dnssd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/open-control-systems/wasd/components/core"
	"github.com/open-control-systems/wasd/components/status"
)

// InstanceHandler handles the resolved service instances.
type InstanceHandler interface {
	// HandleInstance handles the resolved instance.
	HandleInstance(instance ResolvedInstance)
}

// WatchTaskParams represents various options for WatchTask.
type WatchTaskParams struct {
	// Service to watch.
	Service ServiceParams

	// Timeout limits a single Run() call.
	Timeout time.Duration
}

// WatchTask enumerates and resolves all instances of the service on each run.
type WatchTask struct {
	ctx     context.Context
	client  *Client
	handler InstanceHandler
	params  WatchTaskParams
}

// NewWatchTask is an initialization of WatchTask.
//
// Parameters:
//   - ctx - parent context.
//   - client to enumerate and resolve instances.
//   - handler to handle resolved instances.
//   - params - various watching options.
func NewWatchTask(
	ctx context.Context,
	client *Client,
	handler InstanceHandler,
	params WatchTaskParams,
) *WatchTask {
	return &WatchTask{
		ctx:     ctx,
		client:  client,
		handler: handler,
		params:  params,
	}
}

// Run resolves the service instances and passes them to the handler.
//
// Remarks:
//   - A failed instance doesn't stop the run, the failures are joined and returned.
//   - status.StatusNoData is returned if no instance was resolved.
func (t *WatchTask) Run() error {
	ctx := t.ctx
	if t.params.Timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, t.params.Timeout)
		defer cancel()
	}

	instances, err := t.client.ServiceInstances(ctx, t.params.Service)
	if err != nil {
		return err
	}

	var (
		errs     []error
		resolved int
	)

	for _, instance := range instances {
		result, err := instance.Resolve(ctx, nil)
		if err != nil {
			errs = append(errs, err)

			continue
		}

		t.handler.HandleInstance(result)
		resolved++
	}

	if resolved == 0 {
		errs = append(errs, fmt.Errorf("no instances resolved: found=%d: %w",
			len(instances), status.StatusNoData))
	}

	return errors.Join(errs...)
}

// HandleError logs errors from the Run() call.
func (t *WatchTask) HandleError(err error) {
	core.LogErr.Printf("dnssd-watch-task: watching failed: name=%s err=%v\n",
		t.params.Service.Name, err)
}
