package workload

import (
	"fmt"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"
)

// CoerceNumericToString returns the decimal form of n.
func CoerceNumericToString(n uint32) string {
	return strconv.FormatUint(uint64(n), 10)
}

// DeduplicateOrdered returns a sorted copy of values without duplicates.
// Input order is not preserved. The result is never nil.
func DeduplicateOrdered(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	slices.Sort(out)
	return slices.Compact(out)
}

// PortNumber is a container port. It is written as an unsigned 32-bit
// integer in the document and kept as its decimal string.
type PortNumber string

// UnmarshalYAML accepts only integer scalars that fit in a uint32.
func (p *PortNumber) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode || value.ShortTag() != "!!int" {
		return fmt.Errorf("line %d: invalid type for port: expected an unsigned 32-bit integer, got `%s`",
			value.Line, value.Value)
	}

	var n uint32
	if err := value.Decode(&n); err != nil {
		return err
	}

	*p = PortNumber(CoerceNumericToString(n))
	return nil
}

// StringSet is a list of strings kept sorted and free of duplicates.
type StringSet []string

// UnmarshalYAML decodes a sequence of strings and deduplicates it.
func (s *StringSet) UnmarshalYAML(value *yaml.Node) error {
	var values []string
	if err := value.Decode(&values); err != nil {
		return err
	}

	*s = DeduplicateOrdered(values)
	return nil
}
