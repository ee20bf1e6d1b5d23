package mcp

import (
	"fmt"
	"regexp"
	"strings"
)

// URITemplate is a compiled URI pattern containing literal text interleaved
// with {variable} placeholders, e.g. "unreal+t3d://{filepath}". A template
// matches a concrete URI only when the literal segments align and the whole
// URI is accounted for; the text between literals is captured into the named
// variables.
type URITemplate struct {
	raw      string
	varNames []string
	re       *regexp.Regexp
}

// Match holds the result of a successful template match: the concrete URI and
// the captured variable values. Values are stored as an ordered list per name
// so a variable that appears more than once in a template keeps every capture.
type Match struct {
	URI       string
	Variables map[string][]string
}

// Variable returns the first captured value for name.
func (m *Match) Variable(name string) (string, bool) {
	values, ok := m.Variables[name]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// CompileURITemplate parses a template string into a matcher. It fails on
// unbalanced braces, nested braces, or empty variable names.
func CompileURITemplate(template string) (*URITemplate, error) {
	var (
		pattern  strings.Builder
		varNames []string
	)
	pattern.WriteString("^")

	rest := template
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			if strings.IndexByte(rest, '}') >= 0 {
				return nil, fmt.Errorf("compile uri template %q: unbalanced '}'", template)
			}
			pattern.WriteString(regexp.QuoteMeta(rest))
			break
		}

		literal := rest[:open]
		if strings.IndexByte(literal, '}') >= 0 {
			return nil, fmt.Errorf("compile uri template %q: unbalanced '}'", template)
		}
		pattern.WriteString(regexp.QuoteMeta(literal))

		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			return nil, fmt.Errorf("compile uri template %q: unbalanced '{'", template)
		}
		name := rest[open+1 : open+end]
		if name == "" {
			return nil, fmt.Errorf("compile uri template %q: empty variable name", template)
		}
		if strings.IndexByte(name, '{') >= 0 {
			return nil, fmt.Errorf("compile uri template %q: nested '{'", template)
		}
		varNames = append(varNames, name)
		pattern.WriteString("(.+)")

		rest = rest[open+end+1:]
	}
	pattern.WriteString("$")

	re, err := regexp.Compile(pattern.String())
	if err != nil {
		return nil, fmt.Errorf("compile uri template %q: %w", template, err)
	}

	return &URITemplate{
		raw:      template,
		varNames: varNames,
		re:       re,
	}, nil
}

// Raw returns the original template string.
func (t *URITemplate) Raw() string { return t.raw }

// VariableNames returns the placeholder names in template order.
func (t *URITemplate) VariableNames() []string { return t.varNames }

// FindMatch tests uri against the template. On success it returns the
// variable bindings; captures are greedy and the match must cover the entire
// URI, not a prefix.
func (t *URITemplate) FindMatch(uri string) (*Match, bool) {
	groups := t.re.FindStringSubmatch(uri)
	if groups == nil {
		return nil, false
	}

	match := &Match{
		URI:       uri,
		Variables: make(map[string][]string, len(t.varNames)),
	}
	for i, name := range t.varNames {
		match.Variables[name] = append(match.Variables[name], groups[i+1])
	}
	return match, true
}
