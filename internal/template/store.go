package template

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/kayz/slidesmith/internal/debug"
)

// ErrNotFound means the referenced template file does not exist.
var ErrNotFound = errors.New("template not found")

// placeholderPattern matches brace-delimited identifiers: a letter or
// underscore head followed by letters, digits or underscores. Templates are
// pure text; surrounding markup is never interpreted.
var placeholderPattern = regexp.MustCompile(`\{[A-Za-z_][A-Za-z0-9_]*\}`)

// Template is the raw text of one variant's layout plus its placeholder set.
type Template struct {
	Ref          string
	Text         string
	placeholders map[string]struct{}
}

// Placeholders returns the sorted, lower-cased placeholder names appearing in
// the template text.
func (t *Template) Placeholders() []string {
	names := make([]string, 0, len(t.placeholders))
	for n := range t.placeholders {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Has reports whether the template contains the named placeholder.
// Placeholder names are case-insensitive.
func (t *Template) Has(name string) bool {
	_, ok := t.placeholders[strings.ToLower(name)]
	return ok
}

// Store loads and caches raw template files by normalized reference.
type Store struct {
	dir   string
	mu    sync.RWMutex
	cache map[string]*Template
}

// NewStore creates a template store reading from the given directory.
func NewStore(dir string) *Store {
	return &Store{
		dir:   dir,
		cache: make(map[string]*Template),
	}
}

// Load returns the template for a reference, reading and caching it on first
// access. References are normalized (trimmed, slash-cleaned) before lookup.
func (s *Store) Load(ref string) (*Template, error) {
	key := normalizeRef(ref)
	if key == "" {
		return nil, fmt.Errorf("%w: empty template ref", ErrNotFound)
	}

	s.mu.RLock()
	cached, ok := s.cache[key]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if cached, ok := s.cache[key]; ok {
		return cached, nil
	}

	path := key
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.dir, key)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, ref)
		}
		return nil, fmt.Errorf("read template %s: %w", path, err)
	}

	t := New(key, string(data))
	s.cache[key] = t
	debug.Log("cached template %s (%d placeholders)", key, len(t.placeholders))
	return t, nil
}

// Reset drops every cached template.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]*Template)
}

// New builds a Template from raw text, scanning its placeholder tokens once.
func New(ref, text string) *Template {
	return &Template{
		Ref:          ref,
		Text:         text,
		placeholders: extract(text),
	}
}

func normalizeRef(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	return filepath.Clean(ref)
}

func extract(text string) map[string]struct{} {
	found := make(map[string]struct{})
	for _, tok := range placeholderPattern.FindAllString(text, -1) {
		name := strings.ToLower(tok[1 : len(tok)-1])
		found[name] = struct{}{}
	}
	return found
}

// ValidateContentMap is a pre-flight diagnostic: it returns placeholders
// present in the template but missing from the map, and keys present in the
// map but absent from the template. Both slices are sorted.
func ValidateContentMap(t *Template, content map[string]string) (missing, unused []string) {
	for name := range t.placeholders {
		if _, ok := content[name]; !ok {
			missing = append(missing, name)
		}
	}
	for name := range content {
		if _, ok := t.placeholders[strings.ToLower(name)]; !ok {
			unused = append(unused, name)
		}
	}
	sort.Strings(missing)
	sort.Strings(unused)
	return missing, unused
}
