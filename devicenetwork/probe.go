// Copyright (c) 2026 The ofonoctl authors.
// SPDX-License-Identifier: Apache-2.0

package devicenetwork

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"
	"github.com/sirupsen/logrus"
	"github.com/tatsushid/go-fastping"
)

const (
	dnsProbeTimeout      = 5 * time.Second
	icmpProbeMaxRTT      = time.Second
	icmpProbeMaxAttempts = 3
)

// ProbeConfig describes a post-connect reachability check. The source IP is
// the address just assigned to the wan interface, so probe traffic is pinned
// to the modem connection rather than whatever default route wins.
type ProbeConfig struct {
	SourceIP   net.IP
	DNSServers []net.IP
	ICMPTarget net.IP
}

// Probe checks that traffic flows through the new connection using minimal
// traffic: a DNS query for the root domain against each learned nameserver,
// falling back to an ICMP ping of the configured target. The first success
// wins; all failures are reported together.
func Probe(log *logrus.Logger, cfg ProbeConfig) error {
	if cfg.SourceIP == nil {
		return errors.New("no source IP address for connectivity probe")
	}
	var allErrors []string
	dialer := net.Dialer{
		LocalAddr: &net.UDPAddr{IP: cfg.SourceIP},
		Timeout:   dnsProbeTimeout,
	}
	client := dns.Client{
		Dialer:  &dialer,
		Timeout: dnsProbeTimeout,
	}
	for _, server := range cfg.DNSServers {
		// Query for the root domain to keep the response small.
		msg := dns.Msg{}
		msg.SetQuestion(".", dns.TypeA)
		serverAddr := net.JoinHostPort(server.String(), "53")
		if _, _, err := client.Exchange(&msg, serverAddr); err == nil {
			log.Debugf("DNS probe of %s succeeded", serverAddr)
			return nil
		} else {
			allErrors = append(allErrors, err.Error())
		}
	}
	if cfg.ICMPTarget != nil {
		if err := icmpProbe(cfg.SourceIP, cfg.ICMPTarget); err == nil {
			log.Debugf("ICMP probe of %s succeeded", cfg.ICMPTarget)
			return nil
		} else {
			allErrors = append(allErrors, err.Error())
		}
	}
	if len(allErrors) == 0 {
		return errors.New("no DNS server or ICMP target to probe")
	}
	return errors.New(strings.Join(allErrors, "; "))
}

func icmpProbe(srcIP, dstIP net.IP) error {
	pinger := fastping.NewPinger()
	pinger.MaxRTT = icmpProbeMaxRTT
	dstAddr := net.IPAddr{IP: dstIP}
	pinger.AddIPAddr(&dstAddr)
	if _, err := pinger.Source(srcIP.String()); err != nil {
		return fmt.Errorf("failed to set source IP %s for ICMP probe: %w", srcIP, err)
	}
	var received bool
	pinger.OnRecv = func(addr *net.IPAddr, _ time.Duration) {
		if addr != nil && addr.IP.Equal(dstIP) {
			received = true
		}
	}
	for attempt := 0; attempt < icmpProbeMaxAttempts; attempt++ {
		if err := pinger.Run(); err != nil {
			return fmt.Errorf("ICMP probe of %s failed: %w", dstIP, err)
		}
		if received {
			return nil
		}
	}
	return fmt.Errorf("no ping response received from %s", dstIP)
}
