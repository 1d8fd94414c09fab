package config

import (
	"encoding/binary"
	"fmt"
	"net"
)

// ValidateIPv4CIDR checks that s is a syntactically valid IPv4 network
// block. The address must be the network address itself: host bits set
// (e.g. 10.0.1.5/24) are rejected, matching strict network parsing.
func ValidateIPv4CIDR(s string) error {
	ip, ipNet, err := net.ParseCIDR(s)
	if err != nil {
		return fmt.Errorf("invalid CIDR %q: %w", s, err)
	}
	if ip.To4() == nil {
		return fmt.Errorf("invalid CIDR %q: only IPv4 networks are supported", s)
	}
	if !ip.Equal(ipNet.IP) {
		return fmt.Errorf("invalid CIDR %q: host bits set", s)
	}
	return nil
}

// CIDRSubnet calculates a subnet address given a network address, a netmask
// size increase, and a subnet number. Used by the init wizard to derive
// subnet CIDRs from the VPC CIDR.
//
// Only IPv4 networks are supported.
func CIDRSubnet(prefix string, newbits, netnum int) (string, error) {
	_, network, err := net.ParseCIDR(prefix)
	if err != nil {
		return "", fmt.Errorf("invalid CIDR prefix: %w", err)
	}
	if network.IP.To4() == nil {
		return "", fmt.Errorf("only IPv4 networks are supported, got %s", prefix)
	}

	maskSize, totalBits := network.Mask.Size()
	newMaskSize := maskSize + newbits
	if newMaskSize > totalBits {
		return "", fmt.Errorf("prefix extension of %d bits is too large for %s", newbits, prefix)
	}
	if netnum >= 1<<newbits {
		return "", fmt.Errorf("subnet number %d exceeds max subnets %d", netnum, 1<<newbits)
	}

	ipInt := uint32FromIP(network.IP.To4())
	subnetSize := 1 << (totalBits - newMaskSize)
	// #nosec G115
	ipInt += uint32(netnum * subnetSize)

	return fmt.Sprintf("%s/%d", ipFromUint32(ipInt).String(), newMaskSize), nil
}

func uint32FromIP(ip net.IP) uint32 {
	return binary.BigEndian.Uint32(ip)
}

func ipFromUint32(val uint32) net.IP {
	ip := make(net.IP, 4)
	binary.BigEndian.PutUint32(ip, val)
	return ip
}
