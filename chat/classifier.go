package chat

import "regexp"

// Rule maps a pattern to the intent it produces. Produce may refine the intent from the
// message; when nil the rule yields Intent{Name: Name}.
type Rule struct {
	Name    Name
	Pattern *regexp.Regexp
	Produce func(message string) Intent
}

// Matches reports whether the rule applies to message. A rule without a pattern matches
// everything.
func (r Rule) Matches(message string) bool {
	return r.Pattern == nil || r.Pattern.MatchString(message)
}

func (r Rule) intent(message string) Intent {
	if r.Produce != nil {
		return r.Produce(message)
	}

	return Intent{Name: r.Name}
}

type kindRule struct {
	kind    Kind
	pattern *regexp.Regexp
}

var dietaryRules = []kindRule{
	{GlutenFree, regexp.MustCompile(`(?i)gluten[- ]?free`)},
	{Vegan, regexp.MustCompile(`(?i)vegan`)},
	{Vegetarian, regexp.MustCompile(`(?i)vegetarian`)},
	{Spicy, regexp.MustCompile(`(?i)spicy|heat`)},
}

func dietaryIntent(message string) Intent {
	for _, r := range dietaryRules {
		if r.pattern.MatchString(message) {
			return Intent{Name: MenuDietary, Kind: r.kind}
		}
	}

	return Intent{Name: MenuDietary, Kind: General}
}

// DefaultRules is the priority order. Later rules are only reached when every earlier one
// misses, so a message naming both an address and parking is a Location question.
func DefaultRules() []Rule {
	return []Rule{
		{Name: Hours, Pattern: regexp.MustCompile(`(?i)hour|open|close|time`)},
		{Name: Location, Pattern: regexp.MustCompile(`(?i)address|location|where`)},
		{Name: Parking, Pattern: regexp.MustCompile(`(?i)parking`)},
		{Name: DressCode, Pattern: regexp.MustCompile(`(?i)dress|attire`)},
		{
			Name:    MenuDietary,
			Pattern: regexp.MustCompile(`(?i)menu|dish|vegan|vegetarian|gluten|allergen|spicy|recommend`),
			Produce: dietaryIntent,
		},
		{Name: ReservationRequest, Pattern: regexp.MustCompile(`(?i)table|reservation|book|party`)},
		{Name: Fallback},
	}
}

// Classifier walks an ordered rule table. It holds no mutable state and is safe for
// concurrent use.
type Classifier struct {
	rules []Rule
}

// NewClassifier returns a classifier over rules, checked in the given order.
func NewClassifier(rules []Rule) *Classifier {
	return &Classifier{rules: rules}
}

// Classify returns the intent of the first matching rule. The message is expected trimmed and
// non-empty; a rule list without a terminal catch-all still yields Fallback.
func (c *Classifier) Classify(message string) Intent {
	for _, rule := range c.rules {
		if rule.Matches(message) {
			return rule.intent(message)
		}
	}

	return Intent{Name: Fallback}
}
