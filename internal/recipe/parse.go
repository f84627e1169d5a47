package recipe

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseAmount reads "200", "1.5", "1,5", "1,000" or "1/2". A comma followed
// by one or two digits is a decimal point; commas between groups of three
// digits separate thousands. Anything else, including an empty string or a
// negative number, yields nil rather than an error.
func ParseAmount(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if num, den, ok := strings.Cut(s, "/"); ok {
		n := ParseAmount(num)
		d := ParseAmount(den)
		if n == nil || d == nil || *d == 0 {
			return nil
		}
		v := *n / *d
		return &v
	}

	s, ok := normalizeCommas(s)
	if !ok {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return nil
	}
	return &v
}

// normalizeCommas rewrites a decimal comma as a point and drops thousands
// separators. It reports false for any other use of commas.
func normalizeCommas(s string) (string, bool) {
	if !strings.Contains(s, ",") {
		return s, true
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	groups := strings.Split(whole, ",")
	if !hasFrac && len(groups) == 2 && (groups[0] == "" || isDigits(groups[0])) &&
		len(groups[1]) <= 2 && isDigits(groups[1]) {
		return groups[0] + "." + groups[1], true
	}

	if len(groups[0]) > 3 || !isDigits(groups[0]) {
		return "", false
	}
	for _, g := range groups[1:] {
		if len(g) != 3 || !isDigits(g) {
			return "", false
		}
	}
	out := strings.Join(groups, "")
	if hasFrac {
		out += "." + frac
	}
	return out, true
}

// ParseUnit trims u and maps blank to nil.
func ParseUnit(u string) *string {
	return cleanUnit(&u)
}

// ParseQuantity splits a quantity column such as "200 g" or "200g" into an
// amount and a unit. Text without a leading number is kept whole as the unit
// with no amount, so "a pinch" stays readable but is never summed.
func ParseQuantity(s string) (*float64, *string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	number, rest := splitNumber(s)
	amount := ParseAmount(number)
	if amount == nil {
		return nil, ParseUnit(s)
	}
	return amount, ParseUnit(rest)
}

// ParseLine reads a free-text ingredient line: an optional leading number,
// then a unit token when at least one more word follows, then the name.
//
//	"200 g Flour"  -> 200, "g", "Flour"
//	"200g Flour"   -> 200, "g", "Flour"
//	"2 Eggs"       -> 2, nil, "Eggs"
//	"Salt"         -> nil, nil, "Salt"
func ParseLine(line string) LineInput {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return LineInput{}
	}

	number, glued := splitNumber(fields[0])
	amount := ParseAmount(number)
	if amount == nil {
		return LineInput{Name: strings.Join(fields, " ")}
	}

	rest := fields[1:]
	var unit *string
	switch {
	case glued != "":
		unit = ParseUnit(glued)
	case len(rest) >= 2:
		unit = ParseUnit(rest[0])
		rest = rest[1:]
	}

	if len(rest) == 0 {
		// A bare quantity such as "200g" has no name to attach to.
		return LineInput{Name: strings.Join(fields, " ")}
	}
	return LineInput{Name: strings.Join(rest, " "), Amount: amount, Unit: unit}
}

// FormLines zips repeated name/amount/unit form fields into line inputs,
// skipping rows whose name is blank.
func FormLines(names, amounts, units []string) []LineInput {
	var lines []LineInput
	for i, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		line := LineInput{Name: name}
		if i < len(amounts) {
			line.Amount = ParseAmount(amounts[i])
		}
		if i < len(units) {
			line.Unit = ParseUnit(units[i])
		}
		lines = append(lines, line)
	}
	return lines
}

// ParseIDs reads a recipe selection such as "1,3,5" or "1 3 5". Tokens that
// are not plain digits are ignored and duplicates are dropped.
func ParseIDs(s string) []int64 {
	tokens := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})

	seen := make(map[int64]struct{}, len(tokens))
	var ids []int64
	for _, tok := range tokens {
		if !isDigits(tok) {
			continue
		}
		id, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// splitNumber separates a leading numeric prefix ("200g" -> "200", "g").
func splitNumber(s string) (string, string) {
	i := 0
	for i < len(s) {
		c := s[i]
		if (c >= '0' && c <= '9') || c == '.' || c == ',' || c == '/' {
			i++
			continue
		}
		break
	}
	return s[:i], s[i:]
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
