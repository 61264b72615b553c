package value

import "github.com/farrlang/farr/pkgs/ast"

// Function is a `fn` or member-function definition. Closure holds the
// *environment.Environment captured at definition time; it is typed as
// interface{} here to avoid an import cycle (pkgs/environment holds
// Values in its symbol table), and is type-asserted back by
// pkgs/interpreter, which imports both packages.
type Function struct {
	Name    string
	Params  []*ast.ParamDecl
	Body    *ast.Block
	Closure interface{}
}

func (Function) TypeName() string { return "Function" }
func (f Function) String() string { return "<function " + f.Name + ">" }
func (Function) Bool() bool       { return true }

// Equal compares by identity, grounded on the original's
// FunctionDefinitionObject.__hash__ returning id(self): two Function
// values are the same function iff they were built from the same
// defining *ast.Block, not merely structurally identical copies.
func (f Function) Equal(o Value) bool {
	other, ok := o.(Function)
	return ok && other.Body == f.Body
}

// BoundMethod pairs a Function with the struct instance (or module) its
// call should run against, grounded on the original's pattern of copying
// a struct's environment onto a located method before invocation.
type BoundMethod struct {
	Fn       Function
	Receiver Value
}

func (BoundMethod) TypeName() string { return "Function" }
func (b BoundMethod) String() string { return "<bound method " + b.Fn.Name + ">" }
func (BoundMethod) Bool() bool       { return true }
func (b BoundMethod) Equal(o Value) bool {
	other, ok := o.(BoundMethod)
	return ok && other.Fn.Name == b.Fn.Name && other.Receiver.Equal(b.Receiver)
}

// NativeFunc wraps a builtin implemented in Go, grounded on the original's
// PythonNative*Object wrapper classes (PythonNativePrintObject, etc).
// Args are the resolved positional arguments; Kwargs the keyword ones.
type NativeFunc struct {
	Name string
	Fn   func(args []Value, kwargs map[string]Value) (Value, error)
}

func (NativeFunc) TypeName() string { return "Function" }
func (n NativeFunc) String() string { return "<native function " + n.Name + ">" }
func (NativeFunc) Bool() bool       { return true }
func (n NativeFunc) Equal(o Value) bool {
	other, ok := o.(NativeFunc)
	return ok && other.Name == n.Name
}

// StructDefinition is a `struct` declaration after parent flattening.
// Def identifies the defining *ast.StructDef node: Attributes/Body are
// plain slices with no usable identity of their own, so Equal compares
// Def instead.
type StructDefinition struct {
	Name       string
	Attributes []ast.Node
	Body       []ast.Node
	Def        *ast.StructDef
}

func (StructDefinition) TypeName() string { return "StructDefinition" }
func (s StructDefinition) String() string { return "<struct " + s.Name + ">" }
func (StructDefinition) Bool() bool       { return true }

// Equal compares by identity, grounded on the original's
// StructDefinitionObject.__hash__ returning id(self).
func (s StructDefinition) Equal(o Value) bool {
	other, ok := o.(StructDefinition)
	return ok && other.Def == s.Def
}

// StructInstance is a struct call's result. Environment holds the
// *environment.Environment backing its fields/methods (interface{} for
// the same import-cycle reason as Function.Closure).
type StructInstance struct {
	StructName  string
	Environment interface{}
}

func (StructInstance) TypeName() string { return "StructInstance" }
func (s StructInstance) String() string { return "<" + s.StructName + " instance>" }
func (StructInstance) Bool() bool       { return true }
func (s StructInstance) Equal(o Value) bool {
	other, ok := o.(StructInstance)
	return ok && other.Environment == s.Environment
}

// Module is a single imported `.farr` file's namespace.
type Module struct {
	Name        string
	Environment interface{}
}

func (Module) TypeName() string { return "Module" }
func (m Module) String() string { return "<module " + m.Name + ">" }
func (Module) Bool() bool       { return true }
func (m Module) Equal(o Value) bool {
	other, ok := o.(Module)
	return ok && other.Environment == m.Environment
}

// Library is an imported directory of `.farr` files seeded from
// `funda.farr`, each sibling exposed as a nested Module.
type Library struct {
	Name        string
	Environment interface{}
}

func (Library) TypeName() string { return "Library" }
func (l Library) String() string { return "<library " + l.Name + ">" }
func (Library) Bool() bool       { return true }
func (l Library) Equal(o Value) bool {
	other, ok := o.(Library)
	return ok && other.Environment == l.Environment
}
