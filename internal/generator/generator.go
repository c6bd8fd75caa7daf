// Package generator produces synthetic vendor events for the products
// under validation. Each generator is a single-contract collaborator:
// given a product it returns one event record, either a structured map
// (json) or a raw line (keyvalue, syslog, csv). Field values are
// faked; the shapes mirror what each vendor's parser expects.
package generator

import (
	"fmt"

	"github.com/jmorascalyr/jarvis-coding/internal/taxonomy"
)

// registry maps product names to their event constructors. Products
// without a dedicated generator fall back to a generic one for their
// declared format.
var registry = map[string]func() any{
	"aws_cloudtrail":      func() any { return awsCloudTrailEvent() },
	"crowdstrike_falcon":  func() any { return crowdstrikeFalconEvent() },
	"okta_authentication": func() any { return oktaAuthenticationEvent() },
	"fortinet_fortigate":  func() any { return fortigateLine() },
	"cisco_asa":           func() any { return ciscoASALine() },
	"paloalto_firewall":   func() any { return paloaltoTrafficLine() },
	"cisco_umbrella":      func() any { return umbrellaDNSLine() },
}

// Generate returns one synthetic event for the product. JSON products
// yield map[string]any; the textual formats yield a raw line.
func Generate(p *taxonomy.Product) (any, error) {
	if gen, ok := registry[p.Name]; ok {
		return gen(), nil
	}

	switch p.Format {
	case taxonomy.FormatJSON:
		return genericJSONEvent(p.Name), nil
	case taxonomy.FormatKeyValue:
		return genericKeyValueLine(p.Name), nil
	case taxonomy.FormatSyslog:
		return genericSyslogLine(p.Name), nil
	case taxonomy.FormatCSV:
		return genericCSVLine(p.Name), nil
	default:
		return nil, fmt.Errorf("no generator for product %s (format %q)", p.Name, p.Format)
	}
}

// Known reports whether a dedicated generator exists for the product.
func Known(name string) bool {
	_, ok := registry[name]
	return ok
}
