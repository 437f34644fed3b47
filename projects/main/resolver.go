package main

import (
	"context"
	"time"

	"go.etcd.io/bbolt"

	"github.com/open-control-systems/wasd/components/core"
	"github.com/open-control-systems/wasd/components/dnssd"
	"github.com/open-control-systems/wasd/components/storage/stcore"
	"github.com/open-control-systems/wasd/components/storage/stinfluxdb"
	"github.com/open-control-systems/wasd/components/system/sysnet"
)

const recordsBucket = "records"

func openRecordStore(closer *core.FanoutCloser, path string) (*sysnet.RecordStore, error) {
	db, err := stcore.NewBboltDB(path, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	closer.Add("records-db", db)

	return sysnet.NewRecordStore(stcore.NewBboltDBBucket(db, recordsBucket)), nil
}

func newResolver(
	ctx context.Context,
	closer *core.FanoutCloser,
	opts *globalOptions,
) (sysnet.Resolver, error) {
	var resolver sysnet.Resolver

	if opts.recordsDB != "" {
		store, err := openRecordStore(closer, opts.recordsDB)
		if err != nil {
			return nil, err
		}

		resolver = store
	} else {
		dnsResolver, err := sysnet.NewDNSResolver(sysnet.DNSResolverParams{
			Servers: opts.nameservers,
			Timeout: opts.dnsTimeout,
		})
		if err != nil {
			return nil, err
		}

		resolver = sysnet.NewRouteResolver(dnsResolver, sysnet.NewMdnsResolver(
			sysnet.MdnsResolverParams{
				Timeout: opts.mdnsTimeout,
			}))
	}

	handler := &sysnet.FanoutLookupHandler{}
	handler.Add(sysnet.LogLookupHandler{})

	if opts.influxDB.URL != "" {
		handler.Add(stinfluxdb.NewLookupHandler(ctx, closer, opts.influxDB))
	}

	return sysnet.NewObservedResolver(resolver, handler), nil
}

func newClient(
	ctx context.Context,
	closer *core.FanoutCloser,
	opts *globalOptions,
) (*dnssd.Client, error) {
	resolver, err := newResolver(ctx, closer, opts)
	if err != nil {
		return nil, err
	}

	return dnssd.NewClient(dnssd.ClientParams{
		Domain:   opts.domain,
		Resolver: resolver,
	})
}
