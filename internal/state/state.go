// Package state defines the deployment state record and its durable stores.
//
// The state document is the single artifact produced by a successful
// deployment and the sole input required for teardown.
package state

import (
	"sort"
	"time"
)

// SubnetRecord captures one created subnet.
type SubnetRecord struct {
	ID   string `json:"id"`
	CIDR string `json:"cidr"`
	AZ   string `json:"az"`
	Type string `json:"type"`
}

// NATGatewayRecord captures a NAT gateway and its allocated elastic IP.
type NATGatewayRecord struct {
	ID        string `json:"id"`
	ElasticIP string `json:"elastic_ip"`
}

// Gateways holds at most one internet gateway and one NAT gateway.
type Gateways struct {
	InternetGateway string            `json:"internet_gateway,omitempty"`
	NATGateway      *NATGatewayRecord `json:"nat_gateway,omitempty"`
}

// DeploymentState is the single source of truth for one deployment. It is
// owned exclusively by the orchestrator during a run: identifiers are added
// only after the corresponding create call succeeded.
type DeploymentState struct {
	VPCID          string                  `json:"vpc_id"`
	Subnets        map[string]SubnetRecord `json:"subnets"`
	SecurityGroups map[string]string       `json:"security_groups"`
	RouteTables    map[string]string       `json:"route_tables"`
	Gateways       Gateways                `json:"gateways"`
	Timestamp      string                  `json:"timestamp"`

	// subnetOrder preserves creation order within a run. It is not
	// persisted; a reloaded state falls back to sorted name order.
	subnetOrder []string
}

// New creates an empty deployment state stamped with the current UTC time.
func New() *DeploymentState {
	return &DeploymentState{
		Subnets:        make(map[string]SubnetRecord),
		SecurityGroups: make(map[string]string),
		RouteTables:    make(map[string]string),
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
	}
}

// AddSubnet records a created subnet, preserving creation order.
func (s *DeploymentState) AddSubnet(name string, rec SubnetRecord) {
	if _, exists := s.Subnets[name]; !exists {
		s.subnetOrder = append(s.subnetOrder, name)
	}
	s.Subnets[name] = rec
}

// SubnetNames returns subnet names in creation order. For a state reloaded
// from disk the original order is unknown and names are sorted instead.
func (s *DeploymentState) SubnetNames() []string {
	if len(s.subnetOrder) == len(s.Subnets) {
		return append([]string(nil), s.subnetOrder...)
	}
	names := make([]string, 0, len(s.Subnets))
	for name := range s.Subnets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FirstPublicSubnet returns the ID of the first public-tier subnet in
// creation order, or false if none exists.
func (s *DeploymentState) FirstPublicSubnet() (string, bool) {
	for _, name := range s.SubnetNames() {
		if rec := s.Subnets[name]; rec.Type == "public" {
			return rec.ID, true
		}
	}
	return "", false
}
