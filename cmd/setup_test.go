package cmd

import (
	"bufio"
	"strings"
	"testing"
)

func TestPromptFloat(t *testing.T) {
	reader := func(input string) *bufio.Reader {
		return bufio.NewReader(strings.NewReader(input))
	}

	v, err := promptFloat(reader("1250.50\n"), "")
	if err != nil {
		t.Fatalf("promptFloat(1250.50) error = %v", err)
	}
	if v == nil || *v != 1250.50 {
		t.Fatalf("promptFloat(1250.50) = %v, want 1250.50", v)
	}

	v, err = promptFloat(reader("\n"), "")
	if err != nil {
		t.Fatalf("promptFloat(blank) error = %v", err)
	}
	if v != nil {
		t.Fatalf("promptFloat(blank) = %v, want nil", *v)
	}
}

func TestPromptFloatRejectsNonNumeric(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("12OO\n"))
	v, err := promptFloat(r, "")
	if err == nil {
		t.Fatalf("promptFloat(12OO) = %v, want parse error", v)
	}
	if !strings.Contains(err.Error(), "12OO") {
		t.Fatalf("promptFloat error = %q, want the bad input quoted", err)
	}
}
