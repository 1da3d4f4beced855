// Package aidetect scores text for phrasing and structure that are typical
// of machine-generated prose. It is purely pattern based: a Catalog of
// weighted phrase and structural patterns is compiled once, then every call
// matches against it and converts the hits into a 0-100 likelihood.
package aidetect

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/zombar/readability-analyzer/internal/models"
	"github.com/zombar/readability-analyzer/internal/textutil"
)

// Category names
const (
	DeadGiveaway    = "dead_giveaway"
	HighProbability = "high_probability"
	Moderate        = "moderate"
	Structural      = "structural"
)

// ContextRadius is the number of characters kept on each side of a match
const ContextRadius = 40

type categoryDef struct {
	name           string
	weight         float64
	minConfidence  float64
	maxConfidence  float64
	minSensitivity models.Sensitivity
	phrases        []string
	rules          []string
}

var builtinCategories = []categoryDef{
	{
		name:           DeadGiveaway,
		weight:         3.0,
		minConfidence:  0.90,
		maxConfidence:  1.00,
		minSensitivity: models.SensitivityLow,
		phrases: []string{
			"delve into", "delving deeper", "delve deeper",
			"tapestry of", "rich tapestry",
			"a testament to", "stands as a testament",
			"in today's world", "in today's landscape", "in today's society",
			"navigating the complexities", "navigate the complex",
			"unlock the potential", "unlocking insights",
		},
	},
	{
		name:           HighProbability,
		weight:         2.0,
		minConfidence:  0.70,
		maxConfidence:  0.89,
		minSensitivity: models.SensitivityLow,
		phrases: []string{
			"moreover", "furthermore", "additionally",
			"it's important to note that", "it is important to note", "it's worth noting",
			"it's crucial to understand", "it's essential to",
			"while it's true that", "while it may seem",
			"on one hand", "on the other hand",
			"in conclusion", "to summarize", "in summary",
			"paramount", "plethora",
		},
	},
	{
		name:           Moderate,
		weight:         1.0,
		minConfidence:  0.40,
		maxConfidence:  0.69,
		minSensitivity: models.SensitivityMedium,
		phrases: []string{
			"however", "nevertheless", "nonetheless",
			"significant", "robust", "comprehensive",
			"various", "numerous", "multifaceted",
			"it should be noted", "bear in mind",
			"synergy", "holistic", "paradigm",
			"utilize", "leverage",
		},
	},
	{
		name:           Structural,
		weight:         0.5,
		minConfidence:  0.20,
		maxConfidence:  0.39,
		minSensitivity: models.SensitivityHigh,
		phrases: []string{
			"in essence", "essentially", "fundamentally",
			"broadly speaking", "generally speaking",
			"for instance", "for example",
		},
		rules: []string{RuleOrdinalMarker, RuleBulletProse, RuleBalancedContrast},
	},
}

// Category is one weighted group of patterns
type Category struct {
	Name           string
	Weight         float64
	MinConfidence  float64
	MaxConfidence  float64
	MinSensitivity models.Sensitivity

	order   int
	phrases []phrasePattern
	rules   []*structuralRule
}

// Active reports whether the category runs at the given sensitivity
func (c *Category) Active(s models.Sensitivity) bool {
	return s >= c.MinSensitivity
}

// Phrases returns the literal phrases of the category
func (c *Category) Phrases() []string {
	out := make([]string, len(c.phrases))
	for i, p := range c.phrases {
		out[i] = p.phrase
	}
	return out
}

type phrasePattern struct {
	phrase     string
	re         *regexp.Regexp
	confidence float64
}

// Catalog is the compiled, read-only set of pattern categories. Build it once
// with BuildCatalog and share the pointer; nothing mutates it afterwards.
type Catalog struct {
	categories []*Category
	byName     map[string]*Category
}

// BuildCatalog compiles the built-in pattern definitions
func BuildCatalog() (*Catalog, error) {
	return buildCatalog(builtinCategories)
}

// MustCatalog is BuildCatalog for init paths where a broken catalog is fatal
func MustCatalog() *Catalog {
	c, err := BuildCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

func buildCatalog(defs []categoryDef) (*Catalog, error) {
	const op = "aidetect.BuildCatalog"

	if len(defs) == 0 {
		return nil, models.MalformedCatalogError(op, fmt.Errorf("no categories defined"))
	}

	c := &Catalog{byName: make(map[string]*Category, len(defs))}
	for i, def := range defs {
		if def.name == "" {
			return nil, models.MalformedCatalogError(op, fmt.Errorf("category %d has no name", i))
		}
		if _, dup := c.byName[def.name]; dup {
			return nil, models.MalformedCatalogError(op, fmt.Errorf("duplicate category %q", def.name))
		}
		if def.weight <= 0 {
			return nil, models.MalformedCatalogError(op, fmt.Errorf("category %q has non-positive weight %v", def.name, def.weight))
		}
		if def.minConfidence < 0 || def.maxConfidence > 1 || def.minConfidence > def.maxConfidence {
			return nil, models.MalformedCatalogError(op, fmt.Errorf("category %q has invalid confidence range [%v, %v]", def.name, def.minConfidence, def.maxConfidence))
		}
		if len(def.phrases) == 0 && len(def.rules) == 0 {
			return nil, models.MalformedCatalogError(op, fmt.Errorf("category %q has no patterns", def.name))
		}

		cat := &Category{
			Name:           def.name,
			Weight:         def.weight,
			MinConfidence:  def.minConfidence,
			MaxConfidence:  def.maxConfidence,
			MinSensitivity: def.minSensitivity,
			order:          i,
		}

		seen := make(map[string]bool, len(def.phrases))
		for _, phrase := range def.phrases {
			if phrase == "" || phrase != textutil.Normalize(phrase) {
				return nil, models.MalformedCatalogError(op, fmt.Errorf("category %q: phrase %q is not in normalized form", def.name, phrase))
			}
			if seen[phrase] {
				return nil, models.MalformedCatalogError(op, fmt.Errorf("category %q: duplicate phrase %q", def.name, phrase))
			}
			seen[phrase] = true

			re, err := regexp.Compile(`\b` + regexp.QuoteMeta(phrase) + `\b`)
			if err != nil {
				return nil, models.MalformedCatalogError(op, fmt.Errorf("category %q: phrase %q: %w", def.name, phrase, err))
			}
			cat.phrases = append(cat.phrases, phrasePattern{
				phrase:     phrase,
				re:         re,
				confidence: phraseConfidence(phrase, def.minConfidence, def.maxConfidence),
			})
		}

		for _, id := range def.rules {
			rule, err := newStructuralRule(id)
			if err != nil {
				return nil, models.MalformedCatalogError(op, fmt.Errorf("category %q: %w", def.name, err))
			}
			if rule.confidence < def.minConfidence || rule.confidence > def.maxConfidence {
				return nil, models.MalformedCatalogError(op, fmt.Errorf("category %q: rule %q confidence %v outside tier", def.name, id, rule.confidence))
			}
			cat.rules = append(cat.rules, rule)
		}

		c.categories = append(c.categories, cat)
		c.byName[cat.Name] = cat
	}

	return c, nil
}

// phraseConfidence places a phrase inside its tier: longer phrases are less
// likely to occur by accident, so they sit nearer the top.
func phraseConfidence(phrase string, lo, hi float64) float64 {
	words := len(strings.Fields(phrase))
	step := words - 1
	if step > 2 {
		step = 2
	}
	return textutil.Round(lo+(hi-lo)*float64(step)/2, 2)
}

// Categories returns the categories in catalog order
func (c *Catalog) Categories() []*Category {
	out := make([]*Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Category looks up a category by name
func (c *Catalog) Category(name string) (*Category, bool) {
	cat, ok := c.byName[name]
	return cat, ok
}

// Weight returns the weight of the named category, or 0 if unknown
func (c *Catalog) Weight(name string) float64 {
	if cat, ok := c.byName[name]; ok {
		return cat.Weight
	}
	return 0
}
