package config

import (
	"fmt"
	"math"
	"net/netip"
	"strconv"
	"strings"
	"time"
)

// parseBool converts a boolean directive argument. Accepted forms follow
// the original vocabulary: true/on/yes and false/off/no.
func parseBool(token string) (bool, error) {
	switch token {
	case "true", "on", "yes":
		return true, nil
	case "false", "off", "no":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean value: %q", token)
}

// parseInt parses a signed decimal integer, rejecting trailing garbage.
func parseInt(token string) (int64, error) {
	return strconv.ParseInt(token, 10, 64)
}

// parseBoundedUint parses an unsigned decimal integer in [lo, hi]. Trailing
// non-numeric characters and out-of-range values are both rejected; the
// caller leaves its field untouched in that case.
func parseBoundedUint(token string, lo, hi uint64) (uint64, error) {
	val, err := strconv.ParseUint(token, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", token)
	}
	if val < lo || val > hi {
		return 0, fmt.Errorf("value %d out of range [%d, %d]", val, lo, hi)
	}
	return val, nil
}

// parseBoundedInt is parseBoundedUint for signed ranges.
func parseBoundedInt(token string, lo, hi int64) (int64, error) {
	val, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", token)
	}
	if val < lo || val > hi {
		return 0, fmt.Errorf("value %d out of range [%d, %d]", val, lo, hi)
	}
	return val, nil
}

// parseSeconds parses a whole-second duration bounded by [lo, hi] seconds.
func parseSeconds(token string, lo, hi int64) (time.Duration, error) {
	secs, err := parseBoundedInt(token, lo, hi)
	if err != nil {
		return 0, err
	}
	return time.Duration(secs) * time.Second, nil
}

// maxFractionalSeconds is the largest second count that still fits a
// time.Duration; anything at or above it would overflow the conversion.
const maxFractionalSeconds = float64(math.MaxInt64 / time.Second)

// parseFractionalSeconds parses a duration given as a decimal number of
// seconds (e.g. "0.5").
func parseFractionalSeconds(token string) (time.Duration, error) {
	secs, err := strconv.ParseFloat(token, 64)
	if err != nil || math.IsNaN(secs) || math.IsInf(secs, 0) || secs < 0 || secs >= maxFractionalSeconds {
		return 0, fmt.Errorf("invalid interval %q", token)
	}
	return time.Duration(secs * float64(time.Second)), nil
}

// clamp forces val into [lo, hi], reporting whether it was adjusted.
func clamp(val, lo, hi int) (int, bool) {
	if val < lo {
		return lo, true
	}
	if val > hi {
		return hi, true
	}
	return val, false
}

// isResolveOnly reports whether a token must not be passed to numeric
// address parsing. A host name containing '-' or '/' can never be a
// numeric literal, and handing it to the literal parser first would
// misclassify the failure.
func isResolveOnly(token string) bool {
	return strings.ContainsAny(token, "-/")
}

// parsePort converts a port token, accepting 1..65535.
func parsePort(token string) (uint16, error) {
	port, err := parseBoundedUint(token, 1, 65535)
	if err != nil {
		return 0, err
	}
	return uint16(port), nil
}

// AddressResolver resolves a host name to addresses. It abstracts the
// DNS-backed resolver so handler tests run without the network.
type AddressResolver interface {
	LookupHost(host string) ([]netip.Addr, error)
}

// resolveSockAddr converts a host token and port into a socket address.
// Numeric literal parsing is attempted first unless the token contains
// characters that rule it out, then name resolution through resolver.
// The first resolved address wins.
func resolveSockAddr(resolver AddressResolver, host string, port uint16) (netip.AddrPort, error) {
	if !isResolveOnly(host) {
		if addr, err := netip.ParseAddr(host); err == nil {
			return netip.AddrPortFrom(addr, port), nil
		}
	}

	if resolver == nil {
		return netip.AddrPort{}, fmt.Errorf("cannot resolve %q: no resolver available", host)
	}
	addrs, err := resolver.LookupHost(host)
	if err != nil {
		return netip.AddrPort{}, fmt.Errorf("cannot resolve %q: %w", host, err)
	}
	if len(addrs) == 0 {
		return netip.AddrPort{}, fmt.Errorf("cannot resolve %q: no addresses", host)
	}
	return netip.AddrPortFrom(addrs[0], port), nil
}
