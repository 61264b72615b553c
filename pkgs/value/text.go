package value

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/spf13/cast"
)

// String is Farr's string value, grounded on original_source's
// StringObject. Its method surface (toint, tofloat, tolower, ...) lives
// here as real Go methods rather than a dynamic attribute table, since
// Go has no runtime attribute lookup to imitate.
type String struct{ Value string }

func (String) TypeName() string { return "String" }
func (s String) String() string { return s.Value }
func (s String) Bool() bool     { return s.Value != "" }
func (s String) Equal(o Value) bool {
	other, ok := o.(String)
	return ok && other.Value == s.Value
}
func (s String) HashKey() string { return "str:" + s.Value }

// ToInt implements `toint`, using spf13/cast so a malformed numeral
// surfaces as a plain Go error (wrapped into a Farr ValueError by the
// interpreter) instead of a strconv panic.
func (s String) ToInt() (Integer, error) {
	i, err := cast.ToInt64E(strings.TrimSpace(s.Value))
	if err != nil {
		return Integer{}, fmt.Errorf("invalid literal for toint: %q", s.Value)
	}
	return Integer{Value: i}, nil
}

// ToFloat implements `tofloat`.
func (s String) ToFloat() (Float, error) {
	f, err := cast.ToFloat64E(strings.TrimSpace(s.Value))
	if err != nil {
		return Float{}, fmt.Errorf("invalid literal for tofloat: %q", s.Value)
	}
	return Float{Value: f}, nil
}

func (s String) ToLower() String { return String{Value: strings.ToLower(s.Value)} }
func (s String) ToUpper() String { return String{Value: strings.ToUpper(s.Value)} }

func (s String) Concat(other String) String { return String{Value: s.Value + other.Value} }

// Split implements `split`, defaulting to splitting on whitespace runs
// when no separator is given (separator == nil).
func (s String) Split(separator *string) List {
	var parts []string
	if separator == nil {
		parts = strings.Fields(s.Value)
	} else {
		parts = strings.Split(s.Value, *separator)
	}
	elements := make([]Value, len(parts))
	for i, p := range parts {
		elements[i] = String{Value: p}
	}
	return List{Elements: elements}
}

func (s String) RemovePrefix(prefix string) String {
	return String{Value: strings.TrimPrefix(s.Value, prefix)}
}

func (s String) RemoveSuffix(suffix string) String {
	return String{Value: strings.TrimSuffix(s.Value, suffix)}
}

// CountQ implements `count?`: occurrences of sub in the string.
func (s String) CountQ(sub string) Integer {
	return Integer{Value: int64(strings.Count(s.Value, sub))}
}

// NearestQ implements `nearest?`: the 1-based index of the closest match
// among the string's characters to target, or -1 if the string or target
// is empty.
// Uses lithammer/fuzzysearch the way pkgs/environment uses it for
// NameError suggestions, applied here to character-level lookups.
func (s String) NearestQ(target string) Integer {
	if len(s.Value) == 0 || target == "" {
		return Integer{Value: -1}
	}
	runes := []rune(s.Value)
	best := -1
	bestDist := -1
	for i, r := range runes {
		d := fuzzy.LevenshteinDistance(string(r), target)
		if bestDist == -1 || d < bestDist {
			bestDist = d
			best = i
		}
	}
	if best == -1 {
		return Integer{Value: -1}
	}
	return Integer{Value: int64(best + 1)}
}

func (s String) ContainsQ(sub string) Boolean    { return Boolean{Value: strings.Contains(s.Value, sub)} }
func (s String) StartsWithQ(p string) Boolean    { return Boolean{Value: strings.HasPrefix(s.Value, p)} }
func (s String) EndsWithQ(p string) Boolean      { return Boolean{Value: strings.HasSuffix(s.Value, p)} }

// Index implements 1-based, positive-only subscripting via a Range,
// matching the original's __getitem__. index and by must be positive;
// LookupError is the caller's (pkgs/interpreter's) responsibility to raise
// when ok is false.
func (s String) Index(from int64, to *int64, by int64) (String, bool) {
	runes := []rune(s.Value)
	n := int64(len(runes))
	if from <= 0 || by <= 0 {
		return String{}, false
	}
	end := n
	if to != nil {
		if *to <= 0 || *to > n {
			return String{}, false
		}
		end = *to
	}
	if from > n {
		return String{}, false
	}
	var b strings.Builder
	for i := from; i <= end; i += by {
		b.WriteRune(runes[i-1])
	}
	return String{Value: b.String()}, true
}

// sortStrings sorts a string slice in place. List.Sort does not use it;
// it orders elements through sortByString.
func sortStrings(xs []string) {
	sort.Strings(xs)
}
