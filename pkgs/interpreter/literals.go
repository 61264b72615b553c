package interpreter

import (
	"regexp"
	"strings"

	"github.com/farrlang/farr/pkgs/ast"
	"github.com/farrlang/farr/pkgs/farrerr"
	"github.com/farrlang/farr/pkgs/parser"
	"github.com/farrlang/farr/pkgs/value"
)

var escapeReplacer = strings.NewReplacer(
	`\n`, "\n",
	`\t`, "\t",
	`\r`, "\r",
	`\b`, "\b",
	`\"`, `"`,
	`\\`, `\`,
)

// interpolationPattern matches an unescaped `${...}` marker, grounded on
// the original's `(?<!\\)\$\{(.*?)\}`. Go's regexp lacks lookbehind, so the
// escaped form is handled by checking the byte preceding each match.
var interpolationPattern = regexp.MustCompile(`\$\{(.*?)\}`)

// evalString implements string-literal evaluation: raw strings are
// returned verbatim; non-raw strings get backslash-escape substitution,
// then `${expr}` interpolation, each expression re-lexed, re-parsed and
// interpreted as a fresh statement list joined with a single space.
func (in *Interpreter) evalString(n *ast.StringLiteral) (value.Value, error) {
	if n.Raw {
		return value.String{Value: n.Value}, nil
	}
	cleaned := escapeReplacer.Replace(n.Value)

	var interpErr error
	result := replaceUnescaped(cleaned, interpolationPattern, func(expr string) string {
		if interpErr != nil {
			return ""
		}
		out, err := in.interpolate(expr)
		if err != nil {
			interpErr = err
			return ""
		}
		return out
	})
	if interpErr != nil {
		return nil, interpErr
	}
	return value.String{Value: result}, nil
}

// replaceUnescaped applies re.ReplaceAllStringFunc-like substitution,
// skipping any match immediately preceded by a backslash.
func replaceUnescaped(s string, re *regexp.Regexp, replace func(group1 string) string) string {
	var b strings.Builder
	last := 0
	for _, loc := range re.FindAllStringSubmatchIndex(s, -1) {
		start, end := loc[0], loc[1]
		if start > 0 && s[start-1] == '\\' {
			continue
		}
		b.WriteString(s[last:start])
		b.WriteString(replace(s[loc[2]:loc[3]]))
		last = end
	}
	b.WriteString(s[last:])
	return b.String()
}

func (in *Interpreter) interpolate(expr string) (string, error) {
	program, err := parser.Parse(expr + ";")
	if err != nil {
		return "", farrerr.New(farrerr.ValueError, "invalid interpolation expression: "+expr, farrerr.Position{})
	}
	parts := make([]string, 0, len(program.Body))
	for _, stmt := range program.Body {
		v, err := in.Eval(stmt)
		if err != nil {
			return "", err
		}
		parts = append(parts, v.String())
	}
	return strings.Join(parts, " "), nil
}

func (in *Interpreter) evalRange(n *ast.RangeExpr) (value.Value, error) {
	from, err := in.evalInt(n.From)
	if err != nil {
		return nil, err
	}
	by := int64(1)
	if n.By != nil {
		by, err = in.evalInt(n.By)
		if err != nil {
			return nil, err
		}
	}
	var to *int64
	if n.To != nil {
		t, err := in.evalInt(n.To)
		if err != nil {
			return nil, err
		}
		to = &t
	}
	return value.Range{From: from, To: to, By: by}, nil
}

func (in *Interpreter) evalInt(node ast.Node) (int64, error) {
	v, err := in.Eval(node)
	if err != nil {
		return 0, err
	}
	i, ok := v.(value.Integer)
	if !ok {
		return 0, farrerr.New(farrerr.TypeError, "expected an Integer in range bound", farrerr.PosFrom(node.Position()))
	}
	return i.Value, nil
}

func (in *Interpreter) evalItemized(n *ast.ItemizedExpr) (value.Value, error) {
	elements := make([]value.Value, len(n.Items))
	for i, item := range n.Items {
		v, err := in.Eval(item)
		if err != nil {
			return nil, err
		}
		elements[i] = v
	}
	return value.List{Elements: elements}, nil
}

func (in *Interpreter) evalList(n *ast.ListLiteral) (value.Value, error) {
	elements := make([]value.Value, len(n.Elements))
	for i, el := range n.Elements {
		v, err := in.Eval(el)
		if err != nil {
			return nil, err
		}
		elements[i] = v
	}
	return value.List{Elements: elements}, nil
}

func (in *Interpreter) evalPair(n *ast.PairExpr) (value.Value, error) {
	key, err := in.Eval(n.Key)
	if err != nil {
		return nil, err
	}
	val, err := in.Eval(n.Value)
	if err != nil {
		return nil, err
	}
	return value.Pair{Key: key, Val: val}, nil
}

func (in *Interpreter) evalHashMap(n *ast.HashMapLiteral) (value.Value, error) {
	pairs := make([]value.Pair, len(n.Pairs))
	for i, p := range n.Pairs {
		v, err := in.evalPair(p)
		if err != nil {
			return nil, err
		}
		pairs[i] = v.(value.Pair)
	}
	return value.NewHashMap(pairs), nil
}

func (in *Interpreter) evalNegation(n *ast.NegationExpr) (value.Value, error) {
	v, err := in.Eval(n.Operand)
	if err != nil {
		return nil, err
	}
	return value.NewBool(!v.Bool()), nil
}
