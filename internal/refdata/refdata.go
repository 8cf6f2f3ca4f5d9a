// Package refdata loads the read-only reference tables the pipeline depends
// on: the gazetteer, the officer directory, and the normalization and scoring
// tables. Everything is loaded once at process start and never mutated;
// a missing file is fatal (callers abort rather than score with defaults).
package refdata

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/petro-intel/leadgen-cli/internal/model"
)

// Place is a gazetteer entry: a known district/city with coordinates.
type Place struct {
	Name string  `yaml:"name"`
	Lat  float64 `yaml:"lat"`
	Lon  float64 `yaml:"lon"`
}

// Depot is a fixed supply point used as a proximity target.
type Depot struct {
	Name string  `yaml:"name"`
	Lat  float64 `yaml:"lat"`
	Lon  float64 `yaml:"lon"`
}

// StateCapital maps a state to its capital's coordinates, the resolver's
// last fallback.
type StateCapital struct {
	State string  `yaml:"state"`
	Lat   float64 `yaml:"lat"`
	Lon   float64 `yaml:"lon"`
}

// Gazetteer is the static place-name-to-coordinate table. Places keep their
// file order: the substring fallback match is defined to win in table
// iteration order.
type Gazetteer struct {
	Places   []Place        `yaml:"places"`
	Depots   []Depot        `yaml:"depots"`
	Capitals []StateCapital `yaml:"state_capitals"`

	byName map[string]model.Coord
}

// NewGazetteer builds a Gazetteer from literal tables and indexes the places.
// Duplicate names keep the first entry.
func NewGazetteer(places []Place, depots []Depot, capitals []StateCapital) *Gazetteer {
	g := &Gazetteer{
		Places:   places,
		Depots:   depots,
		Capitals: capitals,
		byName:   make(map[string]model.Coord, len(places)),
	}
	for _, p := range places {
		key := normKey(p.Name)
		if _, dup := g.byName[key]; dup {
			continue
		}
		g.byName[key] = model.Coord{Lat: p.Lat, Lon: p.Lon}
	}
	return g
}

// Lookup returns the coordinates for an exact (case/whitespace-insensitive)
// place name match.
func (g *Gazetteer) Lookup(name string) (model.Coord, bool) {
	c, ok := g.byName[normKey(name)]
	return c, ok
}

// Capital returns the capital coordinates for a state.
func (g *Gazetteer) Capital(state string) (model.Coord, bool) {
	for _, c := range g.Capitals {
		if strings.EqualFold(strings.TrimSpace(state), c.State) {
			return model.Coord{Lat: c.Lat, Lon: c.Lon}, true
		}
	}
	return model.Coord{}, false
}

// DepotCoords returns the depot reference points in file order.
func (g *Gazetteer) DepotCoords() []model.Coord {
	coords := make([]model.Coord, len(g.Depots))
	for i, d := range g.Depots {
		coords[i] = model.Coord{Lat: d.Lat, Lon: d.Lon}
	}
	return coords
}

func normKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// Alias maps a raw company name to its canonical form.
type Alias struct {
	Alias     string `yaml:"alias"`
	Canonical string `yaml:"canonical"`
}

// WeightedPattern is an intent keyword pattern with its fixed weight.
type WeightedPattern struct {
	Pattern string  `yaml:"pattern"`
	Weight  float64 `yaml:"weight"`

	re *regexp.Regexp
}

// Match reports whether the pattern matches the (already lowercased) text.
func (w *WeightedPattern) Match(text string) bool {
	return w.re.MatchString(text)
}

// SignalRule classifies free text into one signal type. Rules are evaluated
// in file order; the first category with any matching pattern wins.
type SignalRule struct {
	Signal   string   `yaml:"signal"`
	Patterns []string `yaml:"patterns"`

	res []*regexp.Regexp
}

// KeywordCategory groups extraction patterns under one category tag.
type KeywordCategory struct {
	Category string   `yaml:"category"`
	Patterns []string `yaml:"patterns"`

	res []*regexp.Regexp
}

// StatusScore awards legacy points when the status string contains Match.
// Evaluated in file order, first match wins.
type StatusScore struct {
	Match  string `yaml:"match"`
	Points int    `yaml:"points"`
}

// ProductRule maps a sector tag to its recommended product list.
type ProductRule struct {
	Sector   string   `yaml:"sector"`
	Products []string `yaml:"products"`
}

// NormalizeTables holds the entity-normalization and scoring keyword tables.
type NormalizeTables struct {
	Aliases        []Alias           `yaml:"aliases"`
	Suffixes       []string          `yaml:"suffixes"`
	SignalRules    []SignalRule      `yaml:"signal_rules"`
	SourceDefaults map[string]string `yaml:"source_defaults"`
	Keywords       []KeywordCategory `yaml:"keyword_categories"`

	HighIntent   []WeightedPattern `yaml:"high_intent"`
	MediumIntent []WeightedPattern `yaml:"medium_intent"`
	LowIntent    []WeightedPattern `yaml:"low_intent"`

	SectorScores    map[string]int `yaml:"sector_scores"`
	StatusScores    []StatusScore  `yaml:"status_scores"`
	ProductRules    []ProductRule  `yaml:"product_rules"`
	DefaultProducts []string       `yaml:"default_products"`

	SpecialtyProducts []string `yaml:"specialty_products"`

	specialtyRes []*regexp.Regexp
}

// SpecialtyMatches returns the specialty product terms mentioned in text.
func (n *NormalizeTables) SpecialtyMatches(text string) []string {
	var out []string
	for i, re := range n.specialtyRes {
		if re.MatchString(text) {
			out = append(out, n.SpecialtyProducts[i])
		}
	}
	return out
}

// Tables bundles every reference table the pipeline needs.
type Tables struct {
	Gazetteer *Gazetteer
	Officers  []model.Officer
	Normalize *NormalizeTables
}

type officerFile struct {
	Officers []model.Officer `yaml:"officers"`
}

// Load reads gazetteer.yaml, officers.yaml and normalize.yaml from dir.
// Any missing or malformed file is an error; the caller is expected to abort.
func Load(dir string) (*Tables, error) {
	var raw Gazetteer
	if err := readYAML(filepath.Join(dir, "gazetteer.yaml"), &raw); err != nil {
		return nil, err
	}
	if len(raw.Places) == 0 || len(raw.Depots) == 0 {
		return nil, eris.Errorf("refdata: gazetteer in %s has no places or no depots", dir)
	}
	gaz := NewGazetteer(raw.Places, raw.Depots, raw.Capitals)

	var of officerFile
	if err := readYAML(filepath.Join(dir, "officers.yaml"), &of); err != nil {
		return nil, err
	}
	if len(of.Officers) == 0 {
		return nil, eris.Errorf("refdata: officer directory in %s is empty", dir)
	}

	norm := &NormalizeTables{}
	if err := readYAML(filepath.Join(dir, "normalize.yaml"), norm); err != nil {
		return nil, err
	}
	if err := norm.Compile(); err != nil {
		return nil, err
	}

	return &Tables{Gazetteer: gaz, Officers: of.Officers, Normalize: norm}, nil
}

// Compile prepares the regex tables and the suffix ordering. Load calls it
// automatically; callers constructing tables by hand must call it themselves.
func (n *NormalizeTables) Compile() error {
	// Longest-first so " Ltd" never matches inside " Pvt Ltd".
	sort.SliceStable(n.Suffixes, func(i, j int) bool {
		return len(n.Suffixes[i]) > len(n.Suffixes[j])
	})

	for i := range n.SignalRules {
		res, err := compileAll(n.SignalRules[i].Patterns)
		if err != nil {
			return eris.Wrapf(err, "refdata: signal rule %q", n.SignalRules[i].Signal)
		}
		n.SignalRules[i].res = res
	}
	for i := range n.Keywords {
		res, err := compileAll(n.Keywords[i].Patterns)
		if err != nil {
			return eris.Wrapf(err, "refdata: keyword category %q", n.Keywords[i].Category)
		}
		n.Keywords[i].res = res
	}
	for _, tier := range [][]WeightedPattern{n.HighIntent, n.MediumIntent, n.LowIntent} {
		for i := range tier {
			re, err := regexp.Compile("(?i)" + tier[i].Pattern)
			if err != nil {
				return eris.Wrapf(err, "refdata: intent pattern %q", tier[i].Pattern)
			}
			tier[i].re = re
		}
	}
	for _, p := range n.SpecialtyProducts {
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(p) + `\b`)
		if err != nil {
			return eris.Wrapf(err, "refdata: specialty product %q", p)
		}
		n.specialtyRes = append(n.specialtyRes, re)
	}
	return nil
}

func compileAll(patterns []string) ([]*regexp.Regexp, error) {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, eris.Wrapf(err, "pattern %q", p)
		}
		res = append(res, re)
	}
	return res, nil
}

func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrapf(err, "refdata: read %s", path)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return eris.Wrapf(err, "refdata: parse %s", path)
	}
	return nil
}

// MatchSignal returns the first signal whose any pattern matches text, or "".
func (n *NormalizeTables) MatchSignal(text string) string {
	for _, rule := range n.SignalRules {
		for _, re := range rule.res {
			if re.MatchString(text) {
				return rule.Signal
			}
		}
	}
	return ""
}

// MatchKeywords returns category -> matched pattern source strings.
func (n *NormalizeTables) MatchKeywords(text string) map[string][]string {
	out := make(map[string][]string)
	for _, cat := range n.Keywords {
		var matches []string
		for i, re := range cat.res {
			if re.MatchString(text) {
				matches = append(matches, cat.Patterns[i])
			}
		}
		if len(matches) > 0 {
			out[cat.Category] = matches
		}
	}
	return out
}
