package normalize

import (
	_ "embed"
	"regexp"
	"strings"
	"unicode"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// LocationKind selects which alias table a lookup goes through.
type LocationKind string

// Location kinds.
const (
	KindCountry LocationKind = "country"
	KindState   LocationKind = "state"
	KindCity    LocationKind = "city"
)

// Gazetteer maps cleaned location spellings to canonical display labels,
// one table per kind. Immutable after construction; tests inject smaller ones.
type Gazetteer struct {
	Country map[string]string `yaml:"country"`
	State   map[string]string `yaml:"state"`
	City    map[string]string `yaml:"city"`
}

//go:embed gazetteer.yaml
var gazetteerYAML []byte

var defaultGazetteer = mustLoadGazetteer()

func mustLoadGazetteer() *Gazetteer {
	g, err := LoadGazetteer(gazetteerYAML)
	if err != nil {
		panic(err)
	}
	return g
}

// LoadGazetteer parses alias tables from YAML.
func LoadGazetteer(data []byte) (*Gazetteer, error) {
	var g Gazetteer
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, eris.Wrap(err, "normalize: parse gazetteer")
	}
	return &g, nil
}

func (g *Gazetteer) table(kind LocationKind) map[string]string {
	switch kind {
	case KindCountry:
		return g.Country
	case KindState:
		return g.State
	case KindCity:
		return g.City
	}
	return nil
}

// leadingArticles are dropped from the front of a location string before
// lookup ("The Netherlands" and "Netherlands" hit the same alias).
var leadingArticles = []string{"the ", "de ", "het ", "la ", "le ", "el "}

// cityConnectives stay lower-case when title-casing a city name on a table
// miss, e.g. "Alphen aan den Rijn".
var cityConnectives = map[string]bool{
	"aan": true, "op": true, "bij": true, "de": true, "den": true,
	"van": true, "ter": true, "te": true, "in": true, "het": true,
}

var locationSpaceRe = regexp.MustCompile(`\s+`)

// Location canonicalizes a free-text country, state, or city into its display
// form using the default alias tables.
func Location(v string, kind LocationKind) string {
	return defaultGazetteer.Normalize(v, kind)
}

// Normalize cleans the input, looks it up in the kind's alias table, and falls
// back to title-casing on a miss.
func (g *Gazetteer) Normalize(v string, kind LocationKind) string {
	cleaned := cleanLocation(v)
	if cleaned == "" {
		return ""
	}

	if table := g.table(kind); table != nil {
		if label, ok := table[cleaned]; ok {
			return label
		}
	}

	return titleCaseLocation(cleaned, kind)
}

// cleanLocation lower-cases, strips leading articles, keeps only Latin
// letters (including diacritics) and spaces, and collapses whitespace.
func cleanLocation(v string) string {
	s := strings.ToLower(strings.TrimSpace(v))
	for _, art := range leadingArticles {
		if strings.HasPrefix(s, art) {
			s = s[len(art):]
			break
		}
	}

	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) && (r <= unicode.MaxLatin1 || unicode.In(r, unicode.Latin)) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	return strings.TrimSpace(locationSpaceRe.ReplaceAllString(b.String(), " "))
}

func titleCaseLocation(cleaned string, kind LocationKind) string {
	words := strings.Fields(cleaned)
	for i, w := range words {
		if i > 0 && kind == KindCity && cityConnectives[w] {
			continue
		}
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
