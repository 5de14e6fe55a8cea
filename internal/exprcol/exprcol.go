// Package exprcol evaluates user-supplied JavaScript expressions to render
// computed columns in list output. Each row is exposed to the expression as
// `item`; the expression's result becomes the cell text.
package exprcol

import (
	"fmt"
	"strings"

	"github.com/dop251/goja"
)

// Column is one compiled computed column.
type Column struct {
	Name string
	prog *goja.Program
}

// ParseColumn compiles a "name=expression" definition.
func ParseColumn(def string) (Column, error) {
	name, expr, ok := strings.Cut(def, "=")
	name = strings.TrimSpace(name)
	expr = strings.TrimSpace(expr)
	if !ok || name == "" || expr == "" {
		return Column{}, fmt.Errorf("column definition %q: want name=expression", def)
	}
	prog, err := goja.Compile(name, expr, false)
	if err != nil {
		return Column{}, fmt.Errorf("compile column %q: %w", name, err)
	}
	return Column{Name: name, prog: prog}, nil
}

// ParseColumns compiles a list of definitions, preserving order.
func ParseColumns(defs []string) ([]Column, error) {
	cols := make([]Column, 0, len(defs))
	for _, d := range defs {
		col, err := ParseColumn(d)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	return cols, nil
}

// Evaluator runs column expressions against rows. Not safe for concurrent
// use; the CLI renders rows sequentially.
type Evaluator struct {
	vm *goja.Runtime
}

// NewEvaluator creates a JavaScript runtime for column evaluation.
func NewEvaluator() *Evaluator {
	return &Evaluator{vm: goja.New()}
}

// Eval runs one column expression with row bound as `item` and returns the
// result rendered as text. Null and undefined render as empty cells.
func (e *Evaluator) Eval(col Column, row map[string]any) (string, error) {
	if err := e.vm.Set("item", row); err != nil {
		return "", fmt.Errorf("bind row: %w", err)
	}
	v, err := e.vm.RunProgram(col.prog)
	if err != nil {
		return "", fmt.Errorf("evaluate column %q: %w", col.Name, err)
	}
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return "", nil
	}
	return v.String(), nil
}
