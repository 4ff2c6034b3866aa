package nameindex

import "regexp"

var delimiter = regexp.MustCompile(`[ ,;]+`)

// NameRest is one candidate split of a query string into a name part
// and an optional rest (admin unit / country) part.
type NameRest struct {
	Name string
	Rest *string // nil on the final, unsplit variant
}

// SplitNameRest returns every way of cutting input at a run of
// spaces/commas/semicolons into (name, rest), ordered from the
// smallest name to the largest, followed by the unsplit (input, nil)
// variant. The unsplit variant is always last and is the only one
// with a nil Rest.
func SplitNameRest(input string) []NameRest {
	var out []NameRest
	for _, loc := range delimiter.FindAllStringIndex(input, -1) {
		name := input[:loc[0]]
		rest := input[loc[1]:]
		if len(name) > 0 && len(rest) > 0 {
			r := rest
			out = append(out, NameRest{Name: name, Rest: &r})
		}
	}
	out = append(out, NameRest{Name: input, Rest: nil})
	return out
}
