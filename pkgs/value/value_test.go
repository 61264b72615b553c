package value

import (
	"errors"
	"testing"
)

func TestArithmeticIntegerStaysInteger(t *testing.T) {
	v, err := Add(Integer{Value: 13}, Integer{Value: 8})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	i, ok := v.(Integer)
	if !ok || i.Value != 21 {
		t.Errorf("Add(13, 8) = %v, want Integer(21)", v)
	}
}

func TestDivAlwaysFloat(t *testing.T) {
	v, err := Div(Integer{Value: 9}, Integer{Value: 10})
	if err != nil {
		t.Fatalf("Div: %v", err)
	}
	f, ok := v.(Float)
	if !ok || f.Value != 0.9 {
		t.Errorf("Div(9, 10) = %v, want Float(0.9)", v)
	}
}

func TestDivByZero(t *testing.T) {
	_, err := Div(Integer{Value: 5}, Integer{Value: 0})
	if !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("Div by zero = %v, want ErrDivisionByZero", err)
	}
}

func TestModByZero(t *testing.T) {
	_, err := Mod(Integer{Value: 5}, Integer{Value: 0})
	if !errors.Is(err, ErrModulusByZero) {
		t.Fatalf("Mod by zero = %v, want ErrModulusByZero", err)
	}
}

func TestPowNegativeExponentPromotesToFloat(t *testing.T) {
	v, err := Pow(Integer{Value: 2}, Integer{Value: -1})
	if err != nil {
		t.Fatalf("Pow: %v", err)
	}
	if _, ok := v.(Float); !ok {
		t.Errorf("Pow(2, -1) = %v, want Float", v)
	}
}

func TestCompareOnlyNumeric(t *testing.T) {
	if _, err := Compare(String{Value: "a"}, String{Value: "b"}); err == nil {
		t.Fatal("expected Compare to reject non-numeric operands")
	}
	cmp, err := Compare(Integer{Value: 1}, Float{Value: 2.5})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if cmp >= 0 {
		t.Errorf("Compare(1, 2.5) = %d, want negative", cmp)
	}
}

func TestIntegerFloatEqual(t *testing.T) {
	if !(Integer{Value: 4}).Equal(Float{Value: 4}) {
		t.Error("Integer(4) should equal Float(4.0)")
	}
}

func TestListOneBasedIndex(t *testing.T) {
	l := List{Elements: []Value{Integer{Value: 10}, Integer{Value: 20}, Integer{Value: 30}}}
	first, ok := l.First()
	if !ok || !first.Equal(Integer{Value: 10}) {
		t.Errorf("First() = %v, want 10", first)
	}
	last, ok := l.Last()
	if !ok || !last.Equal(Integer{Value: 30}) {
		t.Errorf("Last() = %v, want 30", last)
	}
}

func TestListIsEmptyQ(t *testing.T) {
	if !(List{}).IsEmptyQ().Value {
		t.Error("empty list should report isempty? true")
	}
	nonEmpty := List{Elements: []Value{Integer{Value: 1}}}
	if nonEmpty.IsEmptyQ().Value {
		t.Error("non-empty list should report isempty? false")
	}
}

func TestHashMapDedupFirstWinsOnConstruction(t *testing.T) {
	h := NewHashMap([]Pair{
		{Key: String{Value: "a"}, Val: Integer{Value: 1}},
		{Key: String{Value: "a"}, Val: Integer{Value: 2}},
	})
	if len(h.Pairs) != 1 {
		t.Fatalf("expected 1 pair after dedup, got %d", len(h.Pairs))
	}
	if !h.Pairs[0].Val.Equal(Integer{Value: 1}) {
		t.Errorf("expected first-write-wins value 1, got %v", h.Pairs[0].Val)
	}
}

func TestHashMapIUpdateLastWins(t *testing.T) {
	h := NewHashMap([]Pair{{Key: String{Value: "a"}, Val: Integer{Value: 1}}})
	h.IUpdate(NewHashMap([]Pair{{Key: String{Value: "a"}, Val: Integer{Value: 2}}}))
	if !h.Pairs[0].Val.Equal(Integer{Value: 2}) {
		t.Errorf("expected last-write-wins value 2 after iupdate!, got %v", h.Pairs[0].Val)
	}
}

func TestStringConcat(t *testing.T) {
	got := (String{Value: "foo"}).Concat(String{Value: "bar"})
	if got.Value != "foobar" {
		t.Errorf("Concat = %q, want %q", got.Value, "foobar")
	}
}
