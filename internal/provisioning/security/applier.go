// Package security creates security groups and applies declarative rule
// lists to them.
package security

import (
	"context"
	"fmt"

	"github.com/vpcforge/vpcforge/internal/config"
	"github.com/vpcforge/vpcforge/internal/platform/aws"
	"github.com/vpcforge/vpcforge/internal/provisioning"
)

const phase = "security"

// Applier provisions security groups and their rules.
type Applier struct {
	cloud    aws.ResourceManager
	observer provisioning.Observer
}

// NewApplier creates a security policy applier.
func NewApplier(cloud aws.ResourceManager, observer provisioning.Observer) *Applier {
	return &Applier{cloud: cloud, observer: observer}
}

// CreateSecurityGroup creates a security group and tags it with its name.
func (a *Applier) CreateSecurityGroup(ctx context.Context, vpcID, name, description string) (string, error) {
	groupID, err := a.cloud.CreateSecurityGroup(ctx, vpcID, name, description)
	if err != nil {
		return "", fmt.Errorf("failed to create security group %s: %w", name, err)
	}

	if err := a.cloud.CreateTags(ctx, groupID, map[string]string{aws.TagName: name}); err != nil {
		return "", err
	}

	provisioning.LogResourceCreated(a.observer, phase, "security group", name, groupID)
	return groupID, nil
}

// ApplyRule authorizes one rule against a group, honoring the rule's
// direction. A duplicate-rule response from the provider is recorded as a
// warning and treated as success.
func (a *Applier) ApplyRule(ctx context.Context, groupID string, rule config.SecurityRule) (provisioning.Result, error) {
	if rule.EffectiveDirection() == config.DirectionEgress {
		return a.AddEgressRule(ctx, groupID, rule.Protocol, rule.FromPort, rule.ToPort, rule.CIDR)
	}
	return a.AddIngressRule(ctx, groupID, rule.Protocol, rule.FromPort, rule.ToPort, rule.CIDR)
}

// AddIngressRule authorizes one ingress rule.
func (a *Applier) AddIngressRule(ctx context.Context, groupID, protocol string, fromPort, toPort int32, cidr string) (provisioning.Result, error) {
	var res provisioning.Result

	err := a.cloud.AuthorizeIngress(ctx, groupID, aws.RulePermission{
		Protocol: protocol,
		FromPort: fromPort,
		ToPort:   toPort,
		CIDR:     cidr,
	})
	if err != nil {
		if aws.IsDuplicateRule(err) {
			res.Warnf(nil, "ingress rule %s %d-%d from %s already exists, skipping", protocol, fromPort, toPort, cidr)
			return res, nil
		}
		return res, err
	}

	a.observer.Debugf("Added ingress rule: %s %d-%d from %s", protocol, fromPort, toPort, cidr)
	return res, nil
}

// AddEgressRule authorizes one egress rule.
func (a *Applier) AddEgressRule(ctx context.Context, groupID, protocol string, fromPort, toPort int32, cidr string) (provisioning.Result, error) {
	var res provisioning.Result

	err := a.cloud.AuthorizeEgress(ctx, groupID, aws.RulePermission{
		Protocol: protocol,
		FromPort: fromPort,
		ToPort:   toPort,
		CIDR:     cidr,
	})
	if err != nil {
		if aws.IsDuplicateRule(err) {
			res.Warnf(nil, "egress rule %s %d-%d to %s already exists, skipping", protocol, fromPort, toPort, cidr)
			return res, nil
		}
		return res, err
	}

	a.observer.Debugf("Added egress rule: %s %d-%d to %s", protocol, fromPort, toPort, cidr)
	return res, nil
}

// DeleteSecurityGroup deletes a group. The provider rejects the delete
// while rules in other groups still reference it; that failure propagates.
func (a *Applier) DeleteSecurityGroup(ctx context.Context, groupID string) error {
	if err := a.cloud.DeleteSecurityGroup(ctx, groupID); err != nil {
		return err
	}
	provisioning.LogResourceDeleted(a.observer, phase, "security group", groupID)
	return nil
}
