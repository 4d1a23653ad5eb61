package query

import (
	"fmt"
	"math"
	"strings"
	"time"

	"go.einride.tech/aip/filtering"
	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"

	"github.com/mcoot/rpgroster/internal/model"
)

// FilterDeclarations returns the identifiers usable in a filter expression
func FilterDeclarations() (*filtering.Declarations, error) {
	return filtering.NewDeclarations(
		filtering.DeclareStandardFunctions(),
		filtering.DeclareIdent("name", filtering.TypeString),
		filtering.DeclareIdent("title", filtering.TypeString),
		filtering.DeclareIdent("race", filtering.TypeString),
		filtering.DeclareIdent("profession", filtering.TypeString),
		filtering.DeclareIdent("birthday", filtering.TypeTimestamp),
		filtering.DeclareIdent("banned", filtering.TypeBool),
		filtering.DeclareIdent("experience", filtering.TypeInt),
		filtering.DeclareIdent("level", filtering.TypeInt),
	)
}

// ApplyFilter parses an AIP-160 filter expression and narrows c with it.
//
// Only conjunctions of comparisons are supported. Text fields always match by
// substring and may be wrapped in '*' wildcards. When a field is constrained more
// than once the tighter bound wins. A single birthday bound is completed with the
// validity limit on the other side.
func ApplyFilter(c Criteria, expression string) (Criteria, error) {
	if strings.TrimSpace(expression) == "" {
		return c, nil
	}

	decls, err := FilterDeclarations()
	if err != nil {
		return c, fmt.Errorf("create declarations: %w", err)
	}

	filter, err := filtering.ParseFilterString(expression, decls)
	if err != nil {
		return c, model.InvalidField("filter", err.Error())
	}

	b := &criteriaBuilder{c: c}
	if err := b.visit(filter.CheckedExpr.GetExpr()); err != nil {
		return c, err
	}
	b.completeBirthday()
	return b.c, nil
}

type criteriaBuilder struct {
	c           Criteria
	sawBirthday bool
}

func (b *criteriaBuilder) visit(e *expr.Expr) error {
	call, ok := e.GetExprKind().(*expr.Expr_CallExpr)
	if !ok {
		return model.InvalidField("filter", fmt.Sprintf("unsupported expression %T", e.GetExprKind()))
	}

	fn := call.CallExpr.GetFunction()
	args := call.CallExpr.GetArgs()
	switch fn {
	case "AND", "_&&_":
		for _, arg := range args {
			if err := b.visit(arg); err != nil {
				return err
			}
		}
		return nil
	case "=", "_==_":
		return b.compare(args, "=")
	case "<", "_<_":
		return b.compare(args, "<")
	case "<=", "_<=_":
		return b.compare(args, "<=")
	case ">", "_>_":
		return b.compare(args, ">")
	case ">=", "_>=_":
		return b.compare(args, ">=")
	default:
		return model.InvalidField("filter", fmt.Sprintf("unsupported operator %s", fn))
	}
}

func (b *criteriaBuilder) compare(args []*expr.Expr, op string) error {
	if len(args) != 2 {
		return model.InvalidField("filter", "comparison requires 2 arguments")
	}
	ident, ok := args[0].GetExprKind().(*expr.Expr_IdentExpr)
	if !ok {
		return model.InvalidField("filter", "left side of a comparison must be a field")
	}
	field := ident.IdentExpr.GetName()

	switch field {
	case "name", "title", "race", "profession":
		if op != "=" {
			return model.InvalidField("filter", fmt.Sprintf("%s only supports =", field))
		}
		s, err := stringValue(args[1])
		if err != nil {
			return err
		}
		return b.setText(field, s)
	case "banned":
		if op != "=" {
			return model.InvalidField("filter", "banned only supports =")
		}
		v, err := boolValue(args[1])
		if err != nil {
			return err
		}
		if b.c.Banned != nil && *b.c.Banned != v {
			return model.InvalidField("filter", "banned constrained to conflicting values")
		}
		b.c.Banned = &v
		return nil
	case "experience":
		n, err := intValue(args[1])
		if err != nil {
			return err
		}
		narrowInt(&b.c.MinExperience, &b.c.MaxExperience, op, n)
		return nil
	case "level":
		n, err := intValue(args[1])
		if err != nil {
			return err
		}
		narrowInt(&b.c.MinLevel, &b.c.MaxLevel, op, n)
		return nil
	case "birthday":
		t, err := timestampValue(args[1])
		if err != nil {
			return err
		}
		b.sawBirthday = true
		narrowTime(&b.c.After, &b.c.Before, op, t)
		return nil
	default:
		return model.InvalidField("filter", fmt.Sprintf("unknown field %s", field))
	}
}

func (b *criteriaBuilder) setText(field, value string) error {
	switch field {
	case "name", "title":
		value = strings.Trim(value, "*")
		target := &b.c.Name
		if field == "title" {
			target = &b.c.Title
		}
		if *target != nil && **target != value {
			return model.InvalidField("filter", fmt.Sprintf("%s constrained twice", field))
		}
		*target = &value
	case "race":
		r, err := model.ParseRace(value)
		if err != nil {
			return err
		}
		if b.c.Race != nil && *b.c.Race != r {
			return model.InvalidField("filter", "race constrained to conflicting values")
		}
		b.c.Race = &r
	case "profession":
		p, err := model.ParseProfession(value)
		if err != nil {
			return err
		}
		if b.c.Profession != nil && *b.c.Profession != p {
			return model.InvalidField("filter", "profession constrained to conflicting values")
		}
		b.c.Profession = &p
	}
	return nil
}

func (b *criteriaBuilder) completeBirthday() {
	if !b.sawBirthday {
		return
	}
	if b.c.After == nil {
		floor := model.EarliestBirthday
		b.c.After = &floor
	}
	if b.c.Before == nil {
		ceil := model.LatestBirthday
		b.c.Before = &ceil
	}
}

// narrowInt tightens the inclusive [lo, hi] range with "field op n"
func narrowInt(lo, hi **int, op string, n int) {
	raise := func(v int) {
		if *lo == nil || v > **lo {
			*lo = &v
		}
	}
	lower := func(v int) {
		if *hi == nil || v < **hi {
			*hi = &v
		}
	}
	switch op {
	case "=":
		raise(n)
		lower(n)
	case ">":
		if n == math.MaxInt {
			raise(n)
			break
		}
		raise(n + 1)
	case ">=":
		raise(n)
	case "<":
		if n == math.MinInt {
			lower(n)
			break
		}
		lower(n - 1)
	case "<=":
		lower(n)
	}
}

// narrowTime tightens the inclusive [after, before] range with "birthday op t"
func narrowTime(after, before **time.Time, op string, t time.Time) {
	raise := func(v time.Time) {
		if *after == nil || v.After(**after) {
			*after = &v
		}
	}
	lower := func(v time.Time) {
		if *before == nil || v.Before(**before) {
			*before = &v
		}
	}
	switch op {
	case "=":
		raise(t)
		lower(t)
	case ">":
		raise(t.Add(time.Millisecond))
	case ">=":
		raise(t)
	case "<":
		lower(t.Add(-time.Millisecond))
	case "<=":
		lower(t)
	}
}

func constant(e *expr.Expr) (*expr.Constant, error) {
	c, ok := e.GetExprKind().(*expr.Expr_ConstExpr)
	if !ok {
		return nil, model.InvalidField("filter", fmt.Sprintf("expected a literal value, got %T", e.GetExprKind()))
	}
	return c.ConstExpr, nil
}

func stringValue(e *expr.Expr) (string, error) {
	c, err := constant(e)
	if err != nil {
		return "", err
	}
	s, ok := c.GetConstantKind().(*expr.Constant_StringValue)
	if !ok {
		return "", model.InvalidField("filter", "expected a string literal")
	}
	return s.StringValue, nil
}

func intValue(e *expr.Expr) (int, error) {
	c, err := constant(e)
	if err != nil {
		return 0, err
	}
	switch v := c.GetConstantKind().(type) {
	case *expr.Constant_Int64Value:
		return int(v.Int64Value), nil
	case *expr.Constant_Uint64Value:
		if v.Uint64Value > math.MaxInt {
			return math.MaxInt, nil
		}
		return int(v.Uint64Value), nil
	default:
		return 0, model.InvalidField("filter", "expected an integer literal")
	}
}

func boolValue(e *expr.Expr) (bool, error) {
	// true/false may arrive as a bool constant or as a bare identifier
	if ident, ok := e.GetExprKind().(*expr.Expr_IdentExpr); ok {
		switch ident.IdentExpr.GetName() {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	}
	c, err := constant(e)
	if err != nil {
		return false, err
	}
	v, ok := c.GetConstantKind().(*expr.Constant_BoolValue)
	if !ok {
		return false, model.InvalidField("filter", "expected true or false")
	}
	return v.BoolValue, nil
}

func timestampValue(e *expr.Expr) (time.Time, error) {
	call, ok := e.GetExprKind().(*expr.Expr_CallExpr)
	if !ok || call.CallExpr.GetFunction() != "timestamp" || len(call.CallExpr.GetArgs()) != 1 {
		return time.Time{}, model.InvalidField("filter", `birthday must be compared with timestamp("...")`)
	}
	s, err := stringValue(call.CallExpr.GetArgs()[0])
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, model.InvalidField("filter", fmt.Sprintf("invalid timestamp %q", s))
	}
	return t.UTC(), nil
}
