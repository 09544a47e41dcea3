package mailer

import (
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"
)

// ErrUnresolvedPlaceholder is returned by Render when a {{token}} in the
// template has no value in the data map.
var ErrUnresolvedPlaceholder = errors.New("unresolved template placeholder")

var placeholder = regexp.MustCompile(`\{\{[A-Za-z0-9_]+\}\}`)

// Rendered is a template with every placeholder substituted.
type Rendered struct {
	Subject string
	HTML    string
}

// Render replaces every {{key}} in the subject and body with data[key].
// Only tokens in the template itself are substituted; inserted values are
// never scanned again, so user text containing braces comes through as-is.
// Values are HTML-escaped in the body and inserted verbatim in the subject.
// A template token with no value is an error, so a half-rendered email is
// never sent.
func Render(tmpl Template, data map[string]string) (Rendered, error) {
	var missing []string
	fill := func(escape func(string) string) func(string) string {
		return func(token string) string {
			value, ok := data[token[2:len(token)-2]]
			if !ok {
				missing = append(missing, token)
				return token
			}
			return escape(value)
		}
	}

	out := Rendered{
		Subject: placeholder.ReplaceAllStringFunc(tmpl.Subject, fill(func(v string) string { return v })),
		HTML:    placeholder.ReplaceAllStringFunc(tmpl.HTML, fill(html.EscapeString)),
	}
	if len(missing) > 0 {
		return Rendered{}, fmt.Errorf("mailer.Render %s: %w: %s",
			tmpl.Name, ErrUnresolvedPlaceholder, strings.Join(dedupe(missing), ", "))
	}
	return out, nil
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := items[:0]
	for _, s := range items {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
