package normalize

import (
	"regexp"
	"strings"
)

// Components holds the structured pieces parsed out of a free-form Danish
// address string. Floor and Door are normalized tags: floor "0" is ground,
// "-1" is basement, otherwise the floor numeral; door is left/right/middle
// or the raw lowercased token. An empty string means the piece was absent or
// could not be resolved.
type Components struct {
	StreetName   string `json:"street_name"`
	StreetNumber string `json:"street_number"`
	Floor        string `json:"floor,omitempty"`
	Door         string `json:"door,omitempty"`
	PostalCode   string `json:"postal_code"`
	City         string `json:"city,omitempty"`
}

// Result is the output of Address: the canonical comparison string, the
// parsed components, and a parse confidence in [0,1].
type Result struct {
	Normalized string     `json:"normalized"`
	Components Components `json:"components"`
	Confidence float64    `json:"confidence"`
}

// Parse patterns, most information-rich first. The first match wins.
//
// full:    street number, [floor,] [door,] postal [city]
// simple:  street number[,] postal [city]
// minimal: street number
var (
	reFull    = regexp.MustCompile(`^(?P<street>.+?) (?P<number>\d+[a-z]?)\s*,\s*(?:(?P<floor>[^,]+?)\s*,\s*)?(?:(?P<door>[^,]+?)\s*,\s*)?(?P<postal>\d{4})(?:\s+(?P<city>.+))?$`)
	reSimple  = regexp.MustCompile(`^(?P<street>.+?) (?P<number>\d+[a-z]?)\s*,?\s+(?P<postal>\d{4})(?:\s+(?P<city>.+))?$`)
	reMinimal = regexp.MustCompile(`^(?P<street>.+?) (?P<number>\d+[a-z]?)$`)

	reLeadingDigits = regexp.MustCompile(`^\d+`)
	reFloorTag      = regexp.MustCompile(`^fl(-?\d+)$`)
	rePostal4       = regexp.MustCompile(`^\d{4}$`)
)

// Address normalizes a free-form address string into a canonical comparison
// string plus parsed components. It never fails: strings that match none of
// the parse patterns fall back to "entire input is the street name" with a
// correspondingly low confidence.
func Address(raw string) Result {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.Join(strings.Fields(s), " ")
	s = canonicalizeStreetTypes(s)

	comps := parseComponents(s)
	return Result{
		Normalized: canonicalString(comps),
		Components: comps,
		Confidence: parseConfidence(comps),
	}
}

// canonicalizeStreetTypes collapses known street-type variants into their
// canonical spelling, one whitespace token at a time. Trailing commas are
// preserved so the parse patterns still see segment boundaries.
func canonicalizeStreetTypes(s string) string {
	if s == "" {
		return s
	}
	lex := tables()
	words := strings.Split(s, " ")
	for i, w := range words {
		core := strings.TrimRight(w, ",")
		if canon, ok := lex.streetCanon[core]; ok {
			words[i] = canon + w[len(core):]
		}
	}
	return strings.Join(words, " ")
}

func parseComponents(s string) Components {
	if s == "" {
		return Components{}
	}

	if m := reFull.FindStringSubmatch(s); m != nil {
		floor := normalizeFloorToken(m[3])
		door := normalizeDoorToken(m[4])
		// A single middle segment lands in the floor slot. If it is not a
		// floor but resolves as a door synonym, it is the door.
		if floor == "" && door == "" {
			if tag, ok := doorTag(strings.TrimSpace(m[3])); ok {
				door = tag
			}
		}
		return Components{
			StreetName:   m[1],
			StreetNumber: m[2],
			Floor:        floor,
			Door:         door,
			PostalCode:   m[5],
			City:         strings.TrimSpace(m[6]),
		}
	}
	if m := reSimple.FindStringSubmatch(s); m != nil {
		return Components{
			StreetName:   m[1],
			StreetNumber: m[2],
			PostalCode:   m[3],
			City:         strings.TrimSpace(m[4]),
		}
	}
	if m := reMinimal.FindStringSubmatch(s); m != nil {
		return Components{StreetName: m[1], StreetNumber: m[2]}
	}

	// Deliberate fallback, not an error: keep the whole string as the street
	// name so downstream similarity still has something to chew on.
	return Components{StreetName: s}
}

// normalizeFloorToken resolves a floor token to "0" (ground), "-1"
// (basement), or its leading numeral. Canonical "fl<n>" tags from a previous
// normalization round-trip. Unrecognized tokens resolve to "".
func normalizeFloorToken(tok string) string {
	t := strings.TrimSpace(tok)
	if t == "" {
		return ""
	}
	if tag, ok := tables().floorTags[t]; ok {
		return tag
	}
	if m := reFloorTag.FindStringSubmatch(t); m != nil {
		return m[1]
	}
	return reLeadingDigits.FindString(t)
}

// doorTag resolves a known door token to left/right/middle. Canonical
// "d<side>" tags from a previous normalization round-trip.
func doorTag(t string) (string, bool) {
	if tag, ok := tables().doorTags[t]; ok {
		return tag, true
	}
	if rest, ok := strings.CutPrefix(t, "d"); ok {
		switch rest {
		case "left", "right", "middle":
			return rest, true
		}
	}
	return "", false
}

// normalizeDoorToken resolves a door token to left/right/middle. Unrecognized
// tokens pass through verbatim; input is already lowercased by Address.
func normalizeDoorToken(tok string) string {
	t := strings.TrimSpace(tok)
	if t == "" {
		return ""
	}
	if tag, ok := doorTag(t); ok {
		return tag
	}
	return t
}

// parseConfidence weighs how many components were recognized. Street name is
// worth the most, floor and door act as refinements.
func parseConfidence(c Components) float64 {
	score := 0
	if len(c.StreetName) > 2 {
		score += 30
	}
	if c.StreetNumber != "" {
		score += 25
	}
	if rePostal4.MatchString(c.PostalCode) {
		score += 25
	}
	if c.Floor != "" {
		score += 10
	}
	if c.Door != "" {
		score += 10
	}
	return float64(score) / 100.0
}

// canonicalString builds the primary equality key between two addresses.
// City is intentionally excluded: the postal code already pins the locality
// and city spellings vary too much between documents.
func canonicalString(c Components) string {
	var b strings.Builder
	b.WriteString(c.StreetName)
	if c.StreetNumber != "" {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(c.StreetNumber)
	}
	if c.Floor != "" {
		b.WriteString(", fl")
		b.WriteString(c.Floor)
	}
	if c.Door != "" {
		b.WriteString(", d")
		b.WriteString(c.Door)
	}
	if c.PostalCode != "" {
		b.WriteString(", ")
		b.WriteString(c.PostalCode)
	}
	return b.String()
}
