package exprcol

import "testing"

func TestParseColumn(t *testing.T) {
	col, err := ParseColumn("upper=item.name.toUpperCase()")
	if err != nil {
		t.Fatalf("ParseColumn: %v", err)
	}
	if col.Name != "upper" {
		t.Errorf("name = %q, want upper", col.Name)
	}
}

func TestParseColumnRejectsMalformed(t *testing.T) {
	for _, def := range []string{"", "noequals", "=expr", "name="} {
		if _, err := ParseColumn(def); err == nil {
			t.Errorf("ParseColumn(%q) succeeded, want error", def)
		}
	}
}

func TestParseColumnRejectsBadSyntax(t *testing.T) {
	if _, err := ParseColumn("bad=item..name"); err == nil {
		t.Error("expected compile error")
	}
}

func TestEval(t *testing.T) {
	cols, err := ParseColumns([]string{
		"upper=item.name.toUpperCase()",
		"combo=item.plan + '/' + item.status",
		"flag=item.enabled ? 'yes' : 'no'",
	})
	if err != nil {
		t.Fatalf("ParseColumns: %v", err)
	}
	ev := NewEvaluator()
	row := map[string]any{
		"name":    "alice",
		"plan":    "pro",
		"status":  "active",
		"enabled": true,
	}
	want := []string{"ALICE", "pro/active", "yes"}
	for i, col := range cols {
		got, err := ev.Eval(col, row)
		if err != nil {
			t.Fatalf("Eval(%s): %v", col.Name, err)
		}
		if got != want[i] {
			t.Errorf("Eval(%s) = %q, want %q", col.Name, got, want[i])
		}
	}
}

func TestEvalMissingFieldIsEmpty(t *testing.T) {
	col, err := ParseColumn("gone=item.missing")
	if err != nil {
		t.Fatalf("ParseColumn: %v", err)
	}
	got, err := NewEvaluator().Eval(col, map[string]any{"name": "x"})
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if got != "" {
		t.Errorf("Eval = %q, want empty", got)
	}
}

func TestEvalRuntimeError(t *testing.T) {
	col, err := ParseColumn("boom=item.missing.toUpperCase()")
	if err != nil {
		t.Fatalf("ParseColumn: %v", err)
	}
	if _, err := NewEvaluator().Eval(col, map[string]any{}); err == nil {
		t.Error("expected runtime error")
	}
}
