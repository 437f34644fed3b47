package stinfluxdb

// DBParams configures the influxDB connection used to store lookup reports.
type DBParams struct {
	// URL of the influxDB server, e.g. "http://localhost:8086".
	URL string

	// Org is the organization the bucket belongs to.
	Org string

	// Token is the API token with the write permission for the bucket.
	Token string

	// Bucket to write "dnssd_lookup" points to.
	Bucket string
}
