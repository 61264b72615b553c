package environment

import (
	"testing"

	"github.com/farrlang/farr/pkgs/farrerr"
	"github.com/farrlang/farr/pkgs/value"
)

func TestAssignThenLocate(t *testing.T) {
	env := New(nil)
	env.Assign("x", value.Integer{Value: 5})
	v, err := env.Locate("x")
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if !v.Equal(value.Integer{Value: 5}) {
		t.Errorf("Locate(x) = %v, want 5", v)
	}
}

func TestChildSeesParentBindings(t *testing.T) {
	parent := New(nil)
	parent.Assign("x", value.Integer{Value: 1})
	child := Child(parent)
	v, err := child.Locate("x")
	if err != nil {
		t.Fatalf("Locate from child: %v", err)
	}
	if !v.Equal(value.Integer{Value: 1}) {
		t.Errorf("child Locate(x) = %v, want 1", v)
	}
}

func TestChildShadowsWithoutMutatingParent(t *testing.T) {
	parent := New(nil)
	parent.Assign("x", value.Integer{Value: 1})
	child := Child(parent)
	child.Assign("x", value.Integer{Value: 2})

	childVal, _ := child.Locate("x")
	parentVal, _ := parent.Locate("x")
	if !childVal.Equal(value.Integer{Value: 2}) {
		t.Errorf("child x = %v, want 2", childVal)
	}
	if !parentVal.Equal(value.Integer{Value: 1}) {
		t.Errorf("parent x = %v, want unchanged 1", parentVal)
	}
}

func TestLocateUndefinedIsNameError(t *testing.T) {
	env := New(nil)
	_, err := env.Locate("nope")
	if !farrerr.Is(err, farrerr.NameError) {
		t.Errorf("Locate(undefined) error = %v, want NameError", err)
	}
}

func TestReplaceWritesToDefiningScope(t *testing.T) {
	parent := New(nil)
	parent.Assign("x", value.Integer{Value: 1})
	child := Child(parent)

	if err := child.Replace("x", value.Integer{Value: 9}); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	v, _ := parent.Locate("x")
	if !v.Equal(value.Integer{Value: 9}) {
		t.Errorf("parent x after Replace = %v, want 9", v)
	}
}

func TestReplaceUndefinedIsNameError(t *testing.T) {
	env := New(nil)
	err := env.Replace("nope", value.Integer{Value: 1})
	if !farrerr.Is(err, farrerr.NameError) {
		t.Errorf("Replace(undefined) error = %v, want NameError", err)
	}
}

func TestExistsRespectsDepth(t *testing.T) {
	parent := New(nil)
	parent.Assign("x", value.Integer{Value: 1})
	child := Child(parent)

	if child.Exists("x", 0) {
		t.Error("Exists(x, 0) should be false: x is only in the parent scope")
	}
	if !child.Exists("x", 1) {
		t.Error("Exists(x, 1) should be true: one parent hop finds x")
	}
}

func TestCopyIsIndependent(t *testing.T) {
	env := New(nil)
	env.Assign("x", value.Integer{Value: 1})
	clone := env.Copy()
	clone.Assign("x", value.Integer{Value: 2})

	orig, _ := env.Locate("x")
	if !orig.Equal(value.Integer{Value: 1}) {
		t.Errorf("original x mutated by writing to copy: got %v", orig)
	}
}
