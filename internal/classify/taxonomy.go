package classify

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Domain is one syllabus area of the exam taxonomy.
type Domain struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

// Taxonomy is the keyword configuration the classifier scores against.
type Taxonomy struct {
	Domains       []Domain `json:"domains"`
	DefaultDomain string   `json:"default_domain"`
}

const defaultDomainID = "identity-governance"

// LoadTaxonomy reads and validates a taxonomy file. A missing file yields
// the built-in default taxonomy; a file that exists but fails schema
// validation is a configuration error.
func LoadTaxonomy(path string) (*Taxonomy, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultTaxonomy(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read taxonomy: %w", err)
	}
	t, err := ParseTaxonomy(raw)
	if err != nil {
		return nil, fmt.Errorf("taxonomy %s: %w", path, err)
	}
	return t, nil
}

// ParseTaxonomy validates raw JSON against the taxonomy schema and decodes
// it. An absent default_domain falls back to identity-governance.
func ParseTaxonomy(raw []byte) (*Taxonomy, error) {
	if err := validateTaxonomyJSON(raw); err != nil {
		return nil, err
	}
	var t Taxonomy
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("decode taxonomy: %w", err)
	}
	if t.DefaultDomain == "" {
		t.DefaultDomain = defaultDomainID
	}
	return &t, nil
}

func validateTaxonomyJSON(raw []byte) error {
	b, err := json.Marshal(taxonomySchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("unmarshal taxonomy: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("taxonomy does not match schema: %w", err)
	}
	return nil
}

// taxonomySchema returns the JSON-Schema for the taxonomy file as a generic
// map, compiled at load time.
func taxonomySchema() map[string]any {
	domain := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"id":       map[string]any{"type": "string", "minLength": 1, "pattern": `^[a-z0-9-]+$`},
			"name":     map[string]any{"type": "string", "minLength": 1},
			"keywords": map[string]any{"type": "array", "items": map[string]any{"type": "string", "minLength": 1}},
		},
		"required": []string{"id", "name", "keywords"},
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"domains":        map[string]any{"type": "array", "items": domain},
			"default_domain": map[string]any{"type": "string", "minLength": 1},
		},
		"required": []string{"domains"},
	}
}

// DefaultTaxonomy returns the built-in AZ-104 domain set used when no
// taxonomy file is present. Keywords are lowercase; matching is plain
// substring containment.
func DefaultTaxonomy() *Taxonomy {
	return &Taxonomy{
		Domains: []Domain{
			{
				ID:   "identity-governance",
				Name: "Manage Azure identities and governance",
				Keywords: []string{
					"azure ad", "entra", "rbac", "role assignment", "role-based access",
					"administrative unit", "management group", "subscription", "tenant",
					"conditional access", "azure policy", "policy assignment",
					"policy definition", "resource lock", "guest user", "license",
					"multi-factor", "self-service password",
				},
			},
			{
				ID:   "storage",
				Name: "Implement and manage storage",
				Keywords: []string{
					"storage account", "storage", "blob", "blob container", "file share",
					"azure files", "redundancy", "replication", "lrs", "zrs", "grs",
					"shared access signature", "sas token", "access tier",
					"lifecycle management", "azcopy", "import/export job",
				},
			},
			{
				ID:   "compute",
				Name: "Deploy and manage Azure compute resources",
				Keywords: []string{
					"virtual machine", "vm size", "vm extension", "availability set",
					"availability zone", "scale set", "proximity placement",
					"app service", "container instance", "kubernetes", "aks cluster",
					"dedicated host", "custom image",
				},
			},
			{
				ID:   "networking",
				Name: "Implement and manage virtual networking",
				Keywords: []string{
					"virtual network", "vnet", "subnet", "network security group",
					"nsg", "network", "load balancer", "application gateway",
					"vpn gateway", "expressroute", "peering", "dns",
					"private endpoint", "public ip", "network interface",
					"route table", "azure firewall", "bastion", "traffic manager",
				},
			},
			{
				ID:   "monitoring",
				Name: "Monitor and maintain Azure resources",
				Keywords: []string{
					"monitor", "alert", "log analytics", "metric", "backup",
					"recovery services", "site recovery", "diagnostic",
					"application insights", "activity log", "action group",
				},
			},
		},
		DefaultDomain: defaultDomainID,
	}
}
