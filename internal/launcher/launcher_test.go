package launcher

import (
	"reflect"
	"testing"
)

func TestCommand(t *testing.T) {
	t.Setenv("GLANCR_TEST_EDITOR", "nvim")

	tests := []struct {
		name     string
		template string
		want     []string
	}{
		{"plain", "cursor", []string{"cursor", "src/main.go"}},
		{"with args", "code --reuse-window", []string{"code", "--reuse-window", "src/main.go"}},
		{"quoted", `subl -n "My Project"`, []string{"subl", "-n", "My Project", "src/main.go"}},
		{"env", "$GLANCR_TEST_EDITOR -p", []string{"nvim", "-p", "src/main.go"}},
		{"empty", "", []string{"edit", "src/main.go"}},
		{"blank", "   ", []string{"edit", "src/main.go"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Command(tt.template, "src/main.go")
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCommandPathWithSpaces(t *testing.T) {
	got, err := Command("vim", "docs/release notes.md")
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"vim", "docs/release notes.md"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCommandInvalid(t *testing.T) {
	if _, err := Command(`code "unterminated`, "a.go"); err == nil {
		t.Error("expected a parse error")
	}
}

func TestCmdMissingBinary(t *testing.T) {
	if _, err := Cmd("glancr-no-such-editor-xyz", ".", "a.go"); err == nil {
		t.Error("expected an error for a missing binary")
	}
}
