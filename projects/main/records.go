package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/open-control-systems/wasd/components/core"
	"github.com/open-control-systems/wasd/components/status"
	"github.com/open-control-systems/wasd/components/system/sysnet"
)

func newRecordsCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "Manage the static records database",
	}

	cmd.AddCommand(
		newAddPTRCommand(opts),
		newAddSRVCommand(opts),
		newAddTXTCommand(opts),
	)

	return cmd
}

func withRecordStore(opts *globalOptions, fn func(store *sysnet.RecordStore) error) error {
	if opts.recordsDB == "" {
		return fmt.Errorf("--records-db is required: %w", status.StatusInvalidArg)
	}

	closer := &core.FanoutCloser{}
	defer closer.Close()

	store, err := openRecordStore(closer, opts.recordsDB)
	if err != nil {
		return err
	}

	return fn(store)
}

func newAddPTRCommand(opts *globalOptions) *cobra.Command {
	var (
		name   string
		record sysnet.PTRRecord
	)

	cmd := &cobra.Command{
		Use:   "add-ptr",
		Short: "Add a pointer record, service name to instance name",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return withRecordStore(opts, func(store *sysnet.RecordStore) error {
				return store.AddPTR(name, record)
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&name, "name", "", "record owner, e.g. _http._tcp.example.com")
	flags.StringVar(&record.Target, "target", "", "instance name, e.g. Woop._http._tcp.example.com")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func newAddSRVCommand(opts *globalOptions) *cobra.Command {
	var (
		name   string
		record sysnet.SRVRecord
	)

	cmd := &cobra.Command{
		Use:   "add-srv",
		Short: "Add a service record",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return withRecordStore(opts, func(store *sysnet.RecordStore) error {
				return store.AddSRV(name, record)
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&name, "name", "", "record owner, e.g. Woop._http._tcp.example.com")
	flags.StringVar(&record.Target, "target", "", "endpoint host")
	flags.IntVar(&record.Port, "port", 0, "endpoint port")
	flags.IntVar(&record.Priority, "priority", 0, "endpoint priority")
	flags.IntVar(&record.Weight, "weight", 0, "endpoint weight")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("target")
	_ = cmd.MarkFlagRequired("port")

	return cmd
}

func newAddTXTCommand(opts *globalOptions) *cobra.Command {
	var (
		name   string
		record sysnet.TXTRecord
	)

	cmd := &cobra.Command{
		Use:   "add-txt",
		Short: "Add a text record, entries keep the given order",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return withRecordStore(opts, func(store *sysnet.RecordStore) error {
				return store.AddTXT(name, record)
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&name, "name", "", "record owner, e.g. Woop._http._tcp.example.com")
	flags.StringArrayVar(&record.Entries, "entry", nil, "key=value entry, can be repeated")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
