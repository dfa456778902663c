package detection

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/NeuralTrust/TrustMask/patterns"
	"github.com/NeuralTrust/TrustMask/pkg/pii_entities"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Gazetteer maps a category (mahalle, sokak, city) to literal place names.
type Gazetteer struct {
	Categories []GazetteerCategory `yaml:"categories"`
}

type GazetteerCategory struct {
	Name  string   `yaml:"name"`
	Names []string `yaml:"names"`
}

// ParseGazetteer decodes a YAML gazetteer definition.
func ParseGazetteer(data []byte) (*Gazetteer, error) {
	var g Gazetteer
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("parsing gazetteer: %w", err)
	}
	for _, c := range g.Categories {
		if strings.TrimSpace(c.Name) == "" {
			return nil, fmt.Errorf("parsing gazetteer: category without name")
		}
	}
	return &g, nil
}

// DefaultGazetteer returns the embedded Turkish gazetteer.
func DefaultGazetteer() (*Gazetteer, error) {
	return ParseGazetteer(patterns.GazetteerTRYAML())
}

// LoadGazetteer reads a gazetteer from disk, falling back to the embedded
// default when path is empty.
func LoadGazetteer(path string) (*Gazetteer, error) {
	if path == "" {
		return DefaultGazetteer()
	}
	data, err := os.ReadFile(path) // #nosec G304 -- operator supplied path
	if err != nil {
		return nil, fmt.Errorf("reading gazetteer %s: %w", path, err)
	}
	return ParseGazetteer(data)
}

// Size is the number of distinct names across categories.
func (g *Gazetteer) Size() int {
	return len(g.uniqueNames())
}

// uniqueNames flattens the categories in declaration order, dropping names
// that are equal under Turkish lower-casing.
func (g *Gazetteer) uniqueNames() []string {
	lower := cases.Lower(language.Turkish)
	seen := make(map[string]struct{})
	var names []string
	for _, c := range g.Categories {
		for _, name := range c.Names {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			key := lower.String(name)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}

// GazetteerMatcher emits ADDRESS_COMPONENT spans for address vocabulary and
// LOCATION_NAME spans for every gazetteer name occurrence.
type GazetteerMatcher struct {
	marker pii_entities.Pattern
	names  []pii_entities.Pattern
}

// NewGazetteerMatcher compiles one whole-word pattern per gazetteer name.
func NewGazetteerMatcher(g *Gazetteer) *GazetteerMatcher {
	m := &GazetteerMatcher{marker: pii_entities.AddressMarkerPattern()}
	if g == nil {
		return m
	}
	for _, name := range g.uniqueNames() {
		m.names = append(m.names, pii_entities.Pattern{
			Entity:     pii_entities.LocationName,
			Regexp:     regexp.MustCompile(`(?i)` + pii_entities.TurkishInsensitive(name)),
			Confidence: pii_entities.ConfidenceLocation,
		})
	}
	return m
}

func (m *GazetteerMatcher) Source() Source { return SourceLocation }

func (m *GazetteerMatcher) Detect(_ context.Context, text string) (Spans, error) {
	var spans Spans
	var idx *runeIndex
	spans = appendMatches(spans, text, &idx, m.marker)
	for _, name := range m.names {
		spans = appendMatches(spans, text, &idx, name)
	}
	return spans, nil
}
