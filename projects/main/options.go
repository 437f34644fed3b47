package main

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/open-control-systems/wasd/components/dnssd"
	"github.com/open-control-systems/wasd/components/storage/stinfluxdb"
)

type globalOptions struct {
	domain      string
	nameservers []string
	dnsTimeout  time.Duration
	mdnsTimeout time.Duration
	recordsDB   string
	influxDB    stinfluxdb.DBParams
}

type serviceOptions struct {
	params dnssd.ServiceParams
}

func (o *globalOptions) register(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringVar(&o.domain, "domain", os.Getenv("WASD_DOMAIN"),
		"service domain")
	flags.StringSliceVar(&o.nameservers, "nameserver", splitEnv("WASD_NAMESERVERS"),
		"DNS server address, host[:port], can be repeated (default: /etc/resolv.conf)")
	flags.DurationVar(&o.dnsTimeout, "dns-timeout", time.Second*5,
		"single DNS exchange timeout")
	flags.DurationVar(&o.mdnsTimeout, "mdns-timeout", time.Second*2,
		"how long to browse for mDNS instances")
	flags.StringVar(&o.recordsDB, "records-db", "",
		"resolve from the static records database instead of DNS")

	flags.StringVar(&o.influxDB.URL, "influxdb-url", os.Getenv("INFLUXDB_URL"),
		"influxDB URL to store lookup reports, disabled if empty")
	flags.StringVar(&o.influxDB.Org, "influxdb-org", os.Getenv("INFLUXDB_ORG"),
		"influxDB organization")
	flags.StringVar(&o.influxDB.Bucket, "influxdb-bucket", os.Getenv("INFLUXDB_BUCKET"),
		"influxDB bucket")
	flags.StringVar(&o.influxDB.Token, "influxdb-token", os.Getenv("INFLUXDB_API_TOKEN"),
		"influxDB API token")
}

func (o *serviceOptions) register(cmd *cobra.Command) {
	flags := cmd.Flags()

	flags.StringVar(&o.params.Name, "name", "", "service name, e.g. http")
	flags.StringVar(&o.params.Protocol, "protocol", dnssd.DefaultProtocol, "service protocol")
	flags.StringVar(&o.params.Subtype, "subtype", "", "service subtype")

	_ = cmd.MarkFlagRequired("name")
}

func splitEnv(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}

	var items []string

	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}

	return items
}
