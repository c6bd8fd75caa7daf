// Package taxonomy defines the products under validation and their
// reference field taxonomies. A taxonomy is the ordered set of field
// names a parser is expected to extract, each tagged with an OCSF
// category and a mandatory flag. Products are static configuration:
// loaded, never computed.
package taxonomy

import (
	"fmt"
	"sort"
	"strings"
)

// Format identifies the wire format a product's events are emitted in.
type Format string

const (
	FormatJSON     Format = "json"
	FormatKeyValue Format = "keyvalue"
	FormatSyslog   Format = "syslog"
	FormatCSV      Format = "csv"
)

// Valid reports whether f is one of the supported input formats.
func (f Format) Valid() bool {
	switch f {
	case FormatJSON, FormatKeyValue, FormatSyslog, FormatCSV:
		return true
	}
	return false
}

// Field is one entry of a product's reference taxonomy.
type Field struct {
	Name         string `yaml:"name"`
	OCSFCategory string `yaml:"ocsf_category,omitempty"`
	Mandatory    bool   `yaml:"mandatory,omitempty"`
}

// Taxonomy is the ordered reference field set for a product.
type Taxonomy []Field

// Names returns the field names in taxonomy order.
func (t Taxonomy) Names() []string {
	names := make([]string, len(t))
	for i, f := range t {
		names[i] = f.Name
	}
	return names
}

// MandatoryNames returns the names of the OCSF-mandatory fields.
func (t Taxonomy) MandatoryNames() []string {
	var names []string
	for _, f := range t {
		if f.Mandatory {
			names = append(names, f.Name)
		}
	}
	return names
}

// MandatoryCount returns the number of OCSF-mandatory fields.
func (t Taxonomy) MandatoryCount() int {
	n := 0
	for _, f := range t {
		if f.Mandatory {
			n++
		}
	}
	return n
}

// Contains reports whether the taxonomy includes the named field,
// using case-normalized matching.
func (t Taxonomy) Contains(name string) bool {
	name = Normalize(name)
	for _, f := range t {
		if Normalize(f.Name) == name {
			return true
		}
	}
	return false
}

// Normalize lowercases a field name for comparison. Parsed output and
// taxonomy data disagree on casing often enough that exact matching
// under-counts extraction.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Product identifies a vendor/log-type under test. Immutable once
// loaded.
type Product struct {
	Name     string   `yaml:"name"`
	Format   Format   `yaml:"format"`
	Parser   string   `yaml:"parser"`
	Taxonomy Taxonomy `yaml:"fields"`
}

// Validate checks that a product definition is usable.
func (p *Product) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("product name is required")
	}
	if !p.Format.Valid() {
		return fmt.Errorf("product %s: unknown format %q", p.Name, p.Format)
	}
	if p.Parser == "" {
		return fmt.Errorf("product %s: parser is required", p.Name)
	}
	if len(p.Taxonomy) == 0 {
		return fmt.Errorf("product %s: empty field taxonomy", p.Name)
	}
	return nil
}

// Registry holds the loaded product set, keyed by product name.
type Registry struct {
	products map[string]*Product
}

// NewRegistry builds a registry from the given products.
func NewRegistry(products []*Product) (*Registry, error) {
	r := &Registry{products: make(map[string]*Product, len(products))}
	for _, p := range products {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, exists := r.products[p.Name]; exists {
			return nil, fmt.Errorf("duplicate product definition: %s", p.Name)
		}
		r.products[p.Name] = p
	}
	return r, nil
}

// Get returns the named product, or false if not defined.
func (r *Registry) Get(name string) (*Product, bool) {
	p, ok := r.products[name]
	return p, ok
}

// List returns all products sorted by name.
func (r *Registry) List() []*Product {
	out := make([]*Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Select returns the products matching the given names, or every
// product when names is empty. Unknown names are an error.
func (r *Registry) Select(names []string) ([]*Product, error) {
	if len(names) == 0 {
		return r.List(), nil
	}
	out := make([]*Product, 0, len(names))
	for _, name := range names {
		p, ok := r.Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown product: %s", name)
		}
		out = append(out, p)
	}
	return out, nil
}

// Len returns the number of defined products.
func (r *Registry) Len() int {
	return len(r.products)
}
