// Package tagger injects tracking tokens into synthetic events at a
// format-appropriate location. The injection point must survive the
// target parser's extraction logic: a JSON field for JSON payloads, a
// key=value pair for key-value payloads, a trailing structured field
// for syslog, and an appended column for CSV. Injection never breaks
// the payload's grammar.
package tagger

import (
	"fmt"
	"strings"

	"github.com/jmorascalyr/jarvis-coding/internal/taxonomy"
)

// TokenField is the field name under which the tracking token is
// recoverable from parsed output, regardless of input format.
const TokenField = "jarvisTrackingId"

// Tagger injects a tracking token into an event payload. JSON events
// are map[string]any; keyvalue, syslog and CSV events are raw lines.
type Tagger interface {
	Inject(payload any, token string) (any, error)
}

// ForFormat returns the tagger for the given input format.
func ForFormat(f taxonomy.Format) (Tagger, error) {
	switch f {
	case taxonomy.FormatJSON:
		return jsonTagger{}, nil
	case taxonomy.FormatKeyValue:
		return keyValueTagger{}, nil
	case taxonomy.FormatSyslog:
		return syslogTagger{}, nil
	case taxonomy.FormatCSV:
		return csvTagger{}, nil
	default:
		return nil, fmt.Errorf("no tagger for format %q", f)
	}
}

type jsonTagger struct{}

func (jsonTagger) Inject(payload any, token string) (any, error) {
	event, ok := payload.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("json tagger: expected map payload, got %T", payload)
	}
	tagged := make(map[string]any, len(event)+1)
	for k, v := range event {
		tagged[k] = v
	}
	tagged[TokenField] = token
	return tagged, nil
}

type keyValueTagger struct{}

func (keyValueTagger) Inject(payload any, token string) (any, error) {
	line, ok := payload.(string)
	if !ok {
		return nil, fmt.Errorf("keyvalue tagger: expected string payload, got %T", payload)
	}
	return line + " " + TokenField + "=" + token, nil
}

type syslogTagger struct{}

func (syslogTagger) Inject(payload any, token string) (any, error) {
	line, ok := payload.(string)
	if !ok {
		return nil, fmt.Errorf("syslog tagger: expected string payload, got %T", payload)
	}
	// Quoted trailing field keeps RFC3164-style message grammars
	// intact while remaining greppable by the query boundary.
	return line + ` ` + TokenField + `="` + token + `"`, nil
}

type csvTagger struct{}

func (csvTagger) Inject(payload any, token string) (any, error) {
	line, ok := payload.(string)
	if !ok {
		return nil, fmt.Errorf("csv tagger: expected string payload, got %T", payload)
	}
	if strings.ContainsAny(token, ",\"\n") {
		return nil, fmt.Errorf("csv tagger: token contains CSV delimiters: %q", token)
	}
	return line + "," + token, nil
}
