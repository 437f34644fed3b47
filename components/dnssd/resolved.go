package dnssd

import "encoding/json"

// ResolvedService is a service with its endpoints, the highest priority value first.
type ResolvedService struct {
	Service   Service
	Endpoints []Endpoint
}

// MarshalJSON encodes the resolved service as its service object with "endpoints".
func (r ResolvedService) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		serviceView
		Endpoints []Endpoint `json:"endpoints"`
	}{
		serviceView: r.Service.view(),
		Endpoints:   r.Endpoints,
	})
}

// ResolvedInstance is an instance with its endpoints and properties.
type ResolvedInstance struct {
	Instance   Instance
	Endpoints  []Endpoint
	Properties Properties
}

// Service returns the service of the instance.
func (r ResolvedInstance) Service() Service {
	return r.Instance.Service()
}

// MarshalJSON encodes the resolved instance as its instance object with "endpoints"
// and "properties".
func (r ResolvedInstance) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		instanceView
		Endpoints  []Endpoint `json:"endpoints"`
		Properties Properties `json:"properties"`
	}{
		instanceView: r.Instance.view(),
		Endpoints:    r.Endpoints,
		Properties:   r.Properties,
	})
}
