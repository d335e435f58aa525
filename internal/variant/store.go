package variant

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/kayz/slidesmith/internal/debug"
	"github.com/kayz/slidesmith/internal/logger"
)

var (
	// ErrNotFound means no specification document exists for the variant id.
	ErrNotFound = errors.New("variant spec not found")
	// ErrMalformed means the document exists but violates structural invariants.
	ErrMalformed = errors.New("variant spec malformed")
)

// maxSaneBaseline bounds baseline lengths; anything above this is a typo in
// the spec document, not a real content target.
const maxSaneBaseline = 10000

// Store loads and caches variant specifications from a directory of JSON
// documents, one per variant (<variant_id>.json). Cached specs are never
// mutated after insertion.
type Store struct {
	dir   string
	mu    sync.RWMutex
	cache map[string]*Spec
}

// NewStore creates a spec store reading from the given directory.
func NewStore(dir string) *Store {
	return &Store{
		dir:   dir,
		cache: make(map[string]*Spec),
	}
}

// Load returns the parsed spec for a variant id, parsing and caching it on
// first access. Concurrent first accesses converge to the same cached value.
func (s *Store) Load(variantID string) (*Spec, error) {
	variantID = strings.TrimSpace(variantID)
	if variantID == "" {
		return nil, fmt.Errorf("%w: empty variant id", ErrNotFound)
	}

	s.mu.RLock()
	cached, ok := s.cache[variantID]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if cached, ok := s.cache[variantID]; ok {
		return cached, nil
	}

	spec, err := s.parseFile(variantID)
	if err != nil {
		return nil, err
	}
	s.cache[variantID] = spec
	debug.Log("cached variant spec %s (%d elements)", variantID, len(spec.Elements))
	return spec, nil
}

// List returns the variant ids available in the store directory.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read specs dir %s: %w", s.dir, err)
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), ".json"))
	}
	return ids, nil
}

// Reset drops every cached spec. Edited documents are picked up on the next
// Load; there is no fine-grained invalidation.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]*Spec)
}

func (s *Store) parseFile(variantID string) (*Spec, error) {
	path := filepath.Join(s.dir, variantID+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, variantID)
		}
		return nil, fmt.Errorf("read spec file %s: %w", path, err)
	}

	var raw rawSpec
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, variantID, err)
	}
	if raw.VariantID != "" && raw.VariantID != variantID {
		logger.Warn("spec file %s declares variant_id %q, using file name", path, raw.VariantID)
	}

	spec, err := buildSpec(variantID, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, variantID, err)
	}
	return spec, nil
}

// buildSpec validates structural invariants and derives character windows.
func buildSpec(variantID string, raw rawSpec) (*Spec, error) {
	if len(raw.Elements) == 0 {
		return nil, fmt.Errorf("no elements declared")
	}

	spec := &Spec{
		ID:           variantID,
		SlideType:    raw.SlideType,
		TemplatePath: raw.TemplatePath,
		Description:  raw.Description,
		Elements:     make([]ElementSpec, 0, len(raw.Elements)),
	}

	seen := make(map[string]struct{}, len(raw.Elements))
	for _, re := range raw.Elements {
		id := strings.TrimSpace(re.ElementID)
		if id == "" {
			return nil, fmt.Errorf("element id is required")
		}
		if _, exists := seen[id]; exists {
			return nil, fmt.Errorf("duplicate element id: %s", id)
		}
		seen[id] = struct{}{}

		el := ElementSpec{
			ID:             id,
			Type:           strings.TrimSpace(re.ElementType),
			RequiredFields: re.RequiredFields,
			Placeholders:   make(map[string]string, len(re.Placeholders)),
			CharReqs:       make(map[string]CharRange, len(re.CharReqs)),
		}

		for field, name := range re.Placeholders {
			el.Placeholders[field] = strings.ToLower(strings.TrimSpace(name))
		}

		for _, field := range re.RequiredFields {
			if _, ok := el.Placeholders[field]; !ok {
				return nil, fmt.Errorf("element %s: required field %s has no placeholder", id, field)
			}
		}

		for field, rc := range re.CharReqs {
			if rc.Baseline <= 0 || rc.Baseline > maxSaneBaseline {
				return nil, fmt.Errorf("element %s: field %s baseline %d out of range", id, field, rc.Baseline)
			}
			el.CharReqs[field] = deriveWindow(rc)
		}

		spec.Elements = append(spec.Elements, el)
	}

	return spec, nil
}
