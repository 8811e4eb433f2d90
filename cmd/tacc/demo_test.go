package main

import (
	"strings"
	"testing"

	"tacc/internal/tac"
	"tacc/internal/target"
)

func TestDemoModuleIsValid(t *testing.T) {
	m, err := demoModule(target.Default())
	if err != nil {
		t.Fatalf("demo module: %v", err)
	}
	if err := tac.Validate(m); err != nil {
		t.Fatalf("validate: %v", err)
	}

	var sb strings.Builder
	if err := tac.DumpModule(&sb, m); err != nil {
		t.Fatalf("dump: %v", err)
	}
	out := sb.String()
	for _, want := range []string{"fn sum:", "*p = ", "param ", "call f, 1", "goto L"} {
		if !strings.Contains(out, want) {
			t.Fatalf("demo dump missing %q:\n%s", want, out)
		}
	}
}
