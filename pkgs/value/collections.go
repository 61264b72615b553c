package value

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Range is Farr's `from[, by]..to` value, grounded on RangeObject. To nil
// means an unbounded range; pkgs/interpreter refuses to iterate one with
// a TypeError.
type Range struct {
	From int64
	To   *int64
	By   int64
}

func (Range) TypeName() string { return "Range" }
func (r Range) String() string {
	to := "inf"
	if r.To != nil {
		to = fmt.Sprintf("%d", *r.To)
	}
	return fmt.Sprintf("[%d, %d..%s]", r.From, r.By, to)
}
func (r Range) Bool() bool { return true }
func (r Range) Equal(o Value) bool {
	other, ok := o.(Range)
	if !ok || other.From != r.From || other.By != r.By {
		return false
	}
	if (r.To == nil) != (other.To == nil) {
		return false
	}
	return r.To == nil || *r.To == *other.To
}

// Values materializes a bounded range. Callers must never call this on an
// unbounded Range (To == nil); pkgs/interpreter guards that case itself
// when a range is used as a loop iterable with no other terminator.
func (r Range) Values() []int64 {
	if r.To == nil {
		return nil
	}
	by := r.By
	if by == 0 {
		by = 1
	}
	var out []int64
	if by > 0 {
		for v := r.From; v <= *r.To; v += by {
			out = append(out, v)
		}
	} else {
		for v := r.From; v >= *r.To; v += by {
			out = append(out, v)
		}
	}
	return out
}

// Pair is a `:key value` hashmap entry. Equality compares only the key,
// matching the original's __eq__ on PairObject.
type Pair struct {
	Key   Value
	Val   Value
}

func (Pair) TypeName() string { return "Pair" }
func (p Pair) String() string { return p.Key.String() + "->" + p.Val.String() }
func (p Pair) Bool() bool     { return true }
func (p Pair) Equal(o Value) bool {
	other, ok := o.(Pair)
	return ok && p.Key.Equal(other.Key)
}

// List is Farr's mutable sequence value.
type List struct {
	Elements []Value
}

func (List) TypeName() string { return "List" }
func (l List) String() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.String()
	}
	return strings.Join(parts, "; ")
}
func (l List) Bool() bool { return len(l.Elements) > 0 }
func (l List) Equal(o Value) bool {
	other, ok := o.(List)
	if !ok || len(other.Elements) != len(l.Elements) {
		return false
	}
	for i := range l.Elements {
		if !l.Elements[i].Equal(other.Elements[i]) {
			return false
		}
	}
	return true
}

func (l List) IsEmptyQ() Boolean { return Boolean{Value: len(l.Elements) == 0} }
func (l List) Length() Integer   { return Integer{Value: int64(len(l.Elements))} }

// First/Last implement the `first`/`last` properties; ok is false on an
// empty list, the caller (pkgs/interpreter) raises LookupError.
func (l List) First() (Value, bool) {
	if len(l.Elements) == 0 {
		return nil, false
	}
	return l.Elements[0], true
}
func (l List) Last() (Value, bool) {
	if len(l.Elements) == 0 {
		return nil, false
	}
	return l.Elements[len(l.Elements)-1], true
}

// Index implements 1-based, positive-only subscripting, matching the
// original's __getitem__ via RangeObject slicing.
func (l List) Index(from int64, to *int64, by int64) ([]Value, bool) {
	n := int64(len(l.Elements))
	if from <= 0 || by <= 0 || from > n {
		return nil, false
	}
	end := n
	if to != nil {
		if *to <= 0 || *to > n {
			return nil, false
		}
		end = *to
	}
	var out []Value
	for i := from; i <= end; i += by {
		out = append(out, l.Elements[i-1])
	}
	return out, true
}

// SetIndex implements 1-based subscript assignment for a single element.
func (l *List) SetIndex(index int64, v Value) bool {
	if index <= 0 || index > int64(len(l.Elements)) {
		return false
	}
	l.Elements[index-1] = v
	return true
}

func (l *List) Clear() { l.Elements = nil }

func (l *List) IPrepend(v Value) { l.Elements = append([]Value{v}, l.Elements...) }
func (l *List) IAppend(v Value)  { l.Elements = append(l.Elements, v) }

// Pop implements `pop!`: removes and returns the 1-based index.
func (l *List) Pop(index int64) (Value, bool) {
	if index <= 0 || index > int64(len(l.Elements)) {
		return nil, false
	}
	v := l.Elements[index-1]
	l.Elements = append(l.Elements[:index-1], l.Elements[index:]...)
	return v, true
}

// PopItem implements `popitem!`: removes and returns the first element
// equal to target.
func (l *List) PopItem(target Value) (Value, bool) {
	for i, e := range l.Elements {
		if e.Equal(target) {
			l.Elements = append(l.Elements[:i], l.Elements[i+1:]...)
			return e, true
		}
	}
	return nil, false
}

func (l List) Reverse() List {
	return List{Elements: lo.Reverse(append([]Value(nil), l.Elements...))}
}
func (l *List) IReverse() { l.Elements = lo.Reverse(l.Elements) }

func (l List) sortKeys() []string {
	keys := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		keys[i] = e.String()
	}
	return keys
}

// Sort/ISort implement `sort`/`isort!`, ordering elements by their string
// representation — Farr values have no generic ordering beyond
// Integer/Float comparison, so original_source's `sorted(self.elements,
// key=str)` behavior is preserved here.
func (l List) Sort() List {
	elements := append([]Value(nil), l.Elements...)
	sortByString(elements)
	return List{Elements: elements}
}
func (l *List) ISort() { sortByString(l.Elements) }

func sortByString(elements []Value) {
	sort.SliceStable(elements, func(i, j int) bool {
		return elements[i].String() < elements[j].String()
	})
}

// Shuffle/IShuffle implement `shuffle`/`ishuffle!`.
func (l List) Shuffle(rng *rand.Rand) List {
	elements := append([]Value(nil), l.Elements...)
	shuffleInPlace(elements, rng)
	return List{Elements: elements}
}
func (l *List) IShuffle(rng *rand.Rand) { shuffleInPlace(l.Elements, rng) }

func shuffleInPlace(elements []Value, rng *rand.Rand) {
	rng.Shuffle(len(elements), func(i, j int) { elements[i], elements[j] = elements[j], elements[i] })
}

// Join implements `join`, defaulting to "" when no separator is given.
func (l List) Join(separator string) String {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.String()
	}
	return String{Value: strings.Join(parts, separator)}
}

// HashMap is Farr's key/value collection, grounded on HashMapObject.
// Construction (NewHashMap) dedups first-write-wins; IUpdate dedups
// last-write-wins — the documented, deliberate divergence from the
// original's single _drop_duplicates helper used unchanged by both paths.
// See DESIGN.md.
type HashMap struct {
	Pairs []Pair
}

// NewHashMap builds a HashMap from literal pairs, keeping the first
// occurrence of each key.
func NewHashMap(pairs []Pair) HashMap {
	seen := map[string]bool{}
	out := make([]Pair, 0, len(pairs))
	for _, p := range pairs {
		k := p.Key.String()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, p)
	}
	return HashMap{Pairs: out}
}

func (HashMap) TypeName() string { return "HashMap" }
func (h HashMap) String() string {
	parts := make([]string, len(h.Pairs))
	for i, p := range h.Pairs {
		parts[i] = p.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (h HashMap) Bool() bool { return len(h.Pairs) > 0 }
func (h HashMap) Equal(o Value) bool {
	other, ok := o.(HashMap)
	if !ok || len(other.Pairs) != len(h.Pairs) {
		return false
	}
	for i := range h.Pairs {
		if !h.Pairs[i].Key.Equal(other.Pairs[i].Key) || !h.Pairs[i].Val.Equal(other.Pairs[i].Val) {
			return false
		}
	}
	return true
}

func (h HashMap) IsEmptyQ() Boolean { return Boolean{Value: len(h.Pairs) == 0} }
func (h HashMap) Length() Integer   { return Integer{Value: int64(len(h.Pairs))} }
func (h HashMap) Keys() List {
	keys := make([]Value, len(h.Pairs))
	for i, p := range h.Pairs {
		keys[i] = p.Key
	}
	return List{Elements: keys}
}
func (h HashMap) Values() List {
	vals := make([]Value, len(h.Pairs))
	for i, p := range h.Pairs {
		vals[i] = p.Val
	}
	return List{Elements: vals}
}

func (h *HashMap) Clear() { h.Pairs = nil }

// Get implements `get`, returning orelse (defaulting to Null) when the
// key is absent.
func (h HashMap) Get(key Value, orelse Value) Value {
	for _, p := range h.Pairs {
		if p.Key.Equal(key) {
			return p.Val
		}
	}
	if orelse == nil {
		return Null{}
	}
	return orelse
}

// IUpdate implements `iupdate!`: merges other's pairs in, last write wins
// on key collision — including collisions against h's own existing pairs.
func (h *HashMap) IUpdate(other HashMap) {
	index := map[string]int{}
	for i, p := range h.Pairs {
		index[p.Key.String()] = i
	}
	for _, p := range other.Pairs {
		k := p.Key.String()
		if i, ok := index[k]; ok {
			h.Pairs[i] = p
			continue
		}
		index[k] = len(h.Pairs)
		h.Pairs = append(h.Pairs, p)
	}
}

// Pop implements `pop!` by 1-based position among the map's pairs.
func (h *HashMap) Pop(index int64) (Pair, bool) {
	if index <= 0 || index > int64(len(h.Pairs)) {
		return Pair{}, false
	}
	p := h.Pairs[index-1]
	h.Pairs = append(h.Pairs[:index-1], h.Pairs[index:]...)
	return p, true
}

// PopItem implements `popitem!` by key.
func (h *HashMap) PopItem(key Value) (Pair, bool) {
	for i, p := range h.Pairs {
		if p.Key.Equal(key) {
			h.Pairs = append(h.Pairs[:i], h.Pairs[i+1:]...)
			return p, true
		}
	}
	return Pair{}, false
}
