package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/open-control-systems/wasd/components/core"
	"github.com/open-control-systems/wasd/components/dnssd"
	"github.com/open-control-systems/wasd/components/status"
	"github.com/open-control-systems/wasd/components/system/syssched"
)

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:          "wasd",
		Short:        "DNS-based service discovery client",
		SilenceUsage: true,
	}
	opts.register(cmd)

	cmd.AddCommand(
		newInstancesCommand(opts),
		newServiceCommand(opts),
		newInstanceCommand(opts),
		newWatchCommand(opts),
		newRecordsCommand(opts),
	)

	return cmd
}

func newInstancesCommand(opts *globalOptions) *cobra.Command {
	svc := &serviceOptions{}

	cmd := &cobra.Command{
		Use:   "instances",
		Short: "Enumerate instances of the service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			closer := &core.FanoutCloser{}
			defer closer.Close()

			client, err := newClient(cmd.Context(), closer, opts)
			if err != nil {
				return err
			}

			instances, err := client.ServiceInstances(cmd.Context(), svc.params)
			if err != nil {
				return err
			}

			printer := newJSONPrinter(cmd.OutOrStdout())
			for _, instance := range instances {
				if err := printer.print(instance); err != nil {
					return err
				}
			}

			return nil
		},
	}
	svc.register(cmd)

	return cmd
}

func newServiceCommand(opts *globalOptions) *cobra.Command {
	svc := &serviceOptions{}

	cmd := &cobra.Command{
		Use:   "service",
		Short: "Resolve endpoints of the service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			closer := &core.FanoutCloser{}
			defer closer.Close()

			client, err := newClient(cmd.Context(), closer, opts)
			if err != nil {
				return err
			}

			service, err := client.Service(svc.params)
			if err != nil {
				return err
			}

			resolved, err := service.Resolve(cmd.Context(), nil)
			if err != nil {
				return err
			}

			return newJSONPrinter(cmd.OutOrStdout()).print(resolved)
		},
	}
	svc.register(cmd)

	return cmd
}

func newInstanceCommand(opts *globalOptions) *cobra.Command {
	svc := &serviceOptions{}

	var description string

	cmd := &cobra.Command{
		Use:   "instance",
		Short: "Resolve endpoints and properties of the service instance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			closer := &core.FanoutCloser{}
			defer closer.Close()

			client, err := newClient(cmd.Context(), closer, opts)
			if err != nil {
				return err
			}

			instance, err := client.ServiceInstance(description, svc.params)
			if err != nil {
				return err
			}

			resolved, err := instance.Resolve(cmd.Context(), nil)
			if err != nil {
				return err
			}

			return newJSONPrinter(cmd.OutOrStdout()).print(resolved)
		},
	}
	svc.register(cmd)

	cmd.Flags().StringVar(&description, "description", "", "instance description, e.g. \"Living Room\"")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

func newWatchCommand(opts *globalOptions) *cobra.Command {
	svc := &serviceOptions{}

	var (
		interval   time.Duration
		timeout    time.Duration
		untilFound bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Periodically resolve all instances of the service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if interval <= 0 {
				return fmt.Errorf("invalid interval: %s: %w", interval, status.StatusInvalidArg)
			}

			closer := &core.FanoutCloser{}
			defer closer.Close()

			client, err := newClient(cmd.Context(), closer, opts)
			if err != nil {
				return err
			}

			task := dnssd.NewWatchTask(cmd.Context(), client, newJSONPrinter(cmd.OutOrStdout()),
				dnssd.WatchTaskParams{
					Service: svc.params,
					Timeout: timeout,
				})

			runner := syssched.NewAsyncTaskRunner(cmd.Context(), task, task,
				syssched.AsyncTaskRunnerParams{
					UpdateInterval: interval,
					ExitOnSuccess:  untilFound,
				})
			if err := runner.Start(); err != nil {
				return err
			}
			closer.Add("watch-task-runner", core.FuncCloser(runner.Stop))

			<-runner.Done()

			return nil
		},
	}
	svc.register(cmd)

	flags := cmd.Flags()
	flags.DurationVar(&interval, "interval", time.Second*10, "how often to resolve the instances")
	flags.DurationVar(&timeout, "timeout", time.Second*30, "single resolving round timeout")
	flags.BoolVar(&untilFound, "until-found", false, "exit after the first successful round")

	return cmd
}

// jsonPrinter writes values as JSON lines.
type jsonPrinter struct {
	mu  sync.Mutex
	enc *json.Encoder
}

func newJSONPrinter(w io.Writer) *jsonPrinter {
	return &jsonPrinter{enc: json.NewEncoder(w)}
}

func (p *jsonPrinter) print(v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.enc.Encode(v)
}

// HandleInstance prints the resolved instance.
func (p *jsonPrinter) HandleInstance(instance dnssd.ResolvedInstance) {
	if err := p.print(instance); err != nil {
		core.LogErr.Printf("json-printer: failed to print instance: instance=%s err=%v\n",
			instance.Instance, err)
	}
}
