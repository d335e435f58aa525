package assemble

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kayz/slidesmith/internal/template"
)

// MissingPlaceholderError is fatal: the template references placeholders the
// content map does not provide, so assembly would leave dangling tokens.
type MissingPlaceholderError struct {
	TemplateRef  string
	Placeholders []string // sorted
}

func (e *MissingPlaceholderError) Error() string {
	return fmt.Sprintf("template %s has no content for placeholders: %s",
		e.TemplateRef, strings.Join(e.Placeholders, ", "))
}

var tokenPattern = regexp.MustCompile(`\{[A-Za-z_][A-Za-z0-9_]*\}`)

// Render substitutes every placeholder token in the template with its mapped
// value. Tokens are replaced as whole brace-bounded units, so replacement
// order cannot cause partial-token collisions. Extra keys in the content map
// are ignored. Rendering the same inputs twice yields byte-identical output.
func Render(t *template.Template, content map[string]string) (string, error) {
	normalized := make(map[string]string, len(content))
	for name, value := range content {
		normalized[strings.ToLower(name)] = value
	}

	missing, _ := template.ValidateContentMap(t, normalized)
	if len(missing) > 0 {
		return "", &MissingPlaceholderError{TemplateRef: t.Ref, Placeholders: missing}
	}

	out := tokenPattern.ReplaceAllStringFunc(t.Text, func(tok string) string {
		name := strings.ToLower(tok[1 : len(tok)-1])
		if value, ok := normalized[name]; ok {
			return value
		}
		return tok
	})
	return out, nil
}
