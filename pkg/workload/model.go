package workload

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Kind is the workload discriminator as written in documents
type Kind string

const (
	KindContainer Kind = "container"
	KindNetwork   Kind = "network"
)

// CanonicalName is the spelling used in the canonical tree
func (k Kind) CanonicalName() string {
	switch k {
	case KindContainer:
		return "Container"
	case KindNetwork:
		return "Network"
	default:
		return string(k)
	}
}

// Registry is the image registry of a container
type Registry string

const (
	RegistryDocker Registry = "Docker"
	RegistryGhcr   Registry = "Ghcr"
)

// UnmarshalYAML accepts the lowercase document spelling.
func (r *Registry) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}

	switch s {
	case "docker":
		*r = RegistryDocker
	case "ghcr":
		*r = RegistryGhcr
	default:
		return fmt.Errorf("line %d: unknown registry `%s`, expected `docker` or `ghcr`", value.Line, s)
	}
	return nil
}

// Document is a parsed workload file
type Document struct {
	Version  string
	Workload Variant
}

// Variant is implemented by *Container and *Network only.
type Variant interface {
	// Kind returns the discriminator of the variant
	Kind() Kind

	// Validate runs the semantic checks that structural decoding cannot express
	Validate() error

	canonical() *Tree
}

// Container is a single container workload
type Container struct {
	Port        PortNumber `yaml:"port"`
	Name        string     `yaml:"name"`
	Environment StringSet  `yaml:"environment"`
	Network     StringSet  `yaml:"network"`
	Registry    Registry   `yaml:"registry"`
	Image       string     `yaml:"image"`
}

// Network is a network workload with its firewall rules
type Network struct {
	Name         string      `yaml:"name"`
	AllowService StringSet   `yaml:"allowService"`
	Egress       []RuleEntry `yaml:"egress"`
	Ingress      []RuleEntry `yaml:"ingress"`
}

// RuleEntry is one element of an egress or ingress list, a mapping from
// IP literal to rule. Addresses keep their document order.
type RuleEntry []AddressRule

// AddressRule binds an IP literal to its rule
type AddressRule struct {
	Address string
	Rule    IPRule
}

// IPRule restricts traffic for one address
type IPRule struct {
	Mask  uint32
	Ports []string
}

// DefaultIPRule returns the rule used when a field is omitted
func DefaultIPRule() IPRule {
	return IPRule{Mask: MaxMask, Ports: []string{}}
}

func (c *Container) Kind() Kind { return KindContainer }

// Validate is a no-op: every container rule is enforced while decoding.
func (c *Container) Validate() error { return nil }

func (n *Network) Kind() Kind { return KindNetwork }

// Validate checks egress then ingress and stops at the first violation.
func (n *Network) Validate() error {
	if err := ValidateRules(n.Egress); err != nil {
		return err
	}
	return ValidateRules(n.Ingress)
}

// UnmarshalYAML reads the envelope and dispatches on the workload kind.
func (d *Document) UnmarshalYAML(value *yaml.Node) error {
	if err := requireFields(value, "version", "workload"); err != nil {
		return err
	}

	var raw struct {
		Version  string    `yaml:"version"`
		Workload yaml.Node `yaml:"workload"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	variant, err := decodeVariant(&raw.Workload)
	if err != nil {
		return err
	}

	d.Version = raw.Version
	d.Workload = variant
	return nil
}

func decodeVariant(value *yaml.Node) (Variant, error) {
	if err := requireFields(value, "kind"); err != nil {
		return nil, err
	}

	kindNode := lookupField(value, "kind")
	var kind string
	if err := kindNode.Decode(&kind); err != nil {
		return nil, err
	}

	var variant Variant
	switch Kind(kind) {
	case KindContainer:
		variant = &Container{}
	case KindNetwork:
		variant = &Network{}
	default:
		return nil, fmt.Errorf("line %d: unknown workload kind `%s`, expected `%s` or `%s`",
			kindNode.Line, kind, KindContainer, KindNetwork)
	}

	if err := value.Decode(variant); err != nil {
		return nil, err
	}
	return variant, nil
}

// UnmarshalYAML applies defaults and the length rules on name and image.
func (c *Container) UnmarshalYAML(value *yaml.Node) error {
	if err := requireFields(value, "port", "name", "image"); err != nil {
		return err
	}

	type plain Container
	raw := plain{
		Environment: StringSet{},
		Network:     StringSet{},
		Registry:    RegistryDocker,
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	if raw.Name == "" {
		return fmt.Errorf("line %d: field `name` must not be empty", value.Line)
	}
	if raw.Image == "" {
		return fmt.Errorf("line %d: field `image` must not be empty", value.Line)
	}

	*c = Container(raw)
	return nil
}

func (n *Network) UnmarshalYAML(value *yaml.Node) error {
	if err := requireFields(value, "name", "allowService"); err != nil {
		return err
	}

	type plain Network
	raw := plain{
		Egress:  []RuleEntry{},
		Ingress: []RuleEntry{},
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	*n = Network(raw)
	return nil
}

// UnmarshalYAML keeps the addresses of the mapping in document order.
func (e *RuleEntry) UnmarshalYAML(value *yaml.Node) error {
	value = resolveAlias(value)
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping of ip address to rule", value.Line)
	}

	entry := make(RuleEntry, 0, len(value.Content)/2)
	seen := make(map[string]bool, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode, ruleNode := value.Content[i], value.Content[i+1]

		var address string
		if err := keyNode.Decode(&address); err != nil {
			return err
		}
		if seen[address] {
			return fmt.Errorf("line %d: duplicate ip address `%s`", keyNode.Line, address)
		}
		seen[address] = true

		rule := DefaultIPRule()
		if !isNull(ruleNode) {
			if err := ruleNode.Decode(&rule); err != nil {
				return err
			}
		}
		entry = append(entry, AddressRule{Address: address, Rule: rule})
	}

	*e = entry
	return nil
}

// UnmarshalYAML applies the default mask and enforces its range.
func (r *IPRule) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Mask  *int64   `yaml:"mask"`
		Ports []string `yaml:"ports"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	rule := DefaultIPRule()
	if raw.Mask != nil {
		if err := ValidateMask(*raw.Mask); err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		rule.Mask = uint32(*raw.Mask)
	}
	if raw.Ports != nil {
		rule.Ports = raw.Ports
	}

	*r = rule
	return nil
}

// requireFields fails when value is not a mapping or when one of the
// fields is absent or null.
func requireFields(value *yaml.Node, fields ...string) error {
	value = resolveAlias(value)
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping, got `%s`", value.Line, value.Value)
	}

	for _, field := range fields {
		node := lookupField(value, field)
		if node == nil || isNull(node) {
			return fmt.Errorf("line %d: missing field `%s`", value.Line, field)
		}
	}
	return nil
}

func lookupField(mapping *yaml.Node, field string) *yaml.Node {
	mapping = resolveAlias(mapping)
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == field {
			return resolveAlias(mapping.Content[i+1])
		}
	}
	return nil
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null"
}
