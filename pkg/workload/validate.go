package workload

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	// MaxPort is the highest port accepted in a port spec
	MaxPort = 65535

	// MaxMask is the widest network mask, also the default
	MaxMask = 32

	portRangeSeparator = "-"
)

// Octet values are not range-checked: 999.999.999.999 is accepted.
var ipLiteralPattern = regexp.MustCompile(`^([0-9]{1,3})\.([0-9]{1,3})\.([0-9]{1,3})\.([0-9]{1,3})$`)

// ValidateIPLiteral checks that key is four dot-separated groups of 1-3 digits.
func ValidateIPLiteral(key string) error {
	if !ipLiteralPattern.MatchString(key) {
		return invalidIPAddress(key)
	}
	return nil
}

// ValidatePortSpec checks a single port ("8080") or a range ("8000-8010").
// Tokens are checked left to right and the first violation is returned.
func ValidatePortSpec(spec string) error {
	tokens := strings.Split(spec, portRangeSeparator)
	if len(tokens) > 2 {
		return invalidPortFormat(spec, nil)
	}

	for _, token := range tokens {
		port, err := strconv.ParseUint(token, 10, 64)
		if err != nil {
			return invalidPortFormat(spec, err)
		}
		if port > MaxPort {
			return outsidePortRange(port)
		}
	}

	return nil
}

// ValidateMask checks 0 <= mask <= MaxMask.
func ValidateMask(mask int64) error {
	if mask < 0 || mask > MaxMask {
		return fmt.Errorf("mask %d is outside of the range [0, %d]", mask, MaxMask)
	}
	return nil
}

// ValidateRules walks the entries in order. For every address the literal
// is checked before its ports.
func ValidateRules(entries []RuleEntry) error {
	for _, entry := range entries {
		for _, rule := range entry {
			if err := ValidateIPLiteral(rule.Address); err != nil {
				return err
			}
			for _, port := range rule.Rule.Ports {
				if err := ValidatePortSpec(port); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
