package printer

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderFunctions(t *testing.T) {
	tests := []struct {
		name     string
		function func(string) string
	}{
		{"Faint", Faint},
		{"Bold", Bold},
		{"Success", Success},
		{"Error", Error},
		{"Warning", Warning},
		{"Info", Info},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.function("text"); !strings.Contains(got, "text") {
				t.Errorf("%s() = %q, want it to contain the input", tt.name, got)
			}
		})
	}
}

func TestSetNoColor_StripsANSI(t *testing.T) {
	SetNoColor(true)
	t.Cleanup(func() { SetNoColor(false) })

	if got := Success("ok"); got != "ok" {
		t.Errorf("Success with no color = %q, want %q", got, "ok")
	}
	if got := Transition("core", "1.2.3", "1.2.4"); got != "core 1.2.3 -> 1.2.4" {
		t.Errorf("Transition = %q", got)
	}
}

func TestPrintFunctions_WriteToOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetNoColor(true)
	t.Cleanup(func() {
		SetOutput(nil)
		SetNoColor(false)
	})

	PrintSuccess("done")
	PrintWarning("careful")
	PrintError("failed")
	PrintInfo("info")
	PrintFaint("faint")
	PrintBold("bold")
	Println("plain")
	if err := Print("raw {\"k\":1}"); err != nil {
		t.Fatalf("Print: %v", err)
	}

	want := "done\ncareful\nfailed\ninfo\nfaint\nbold\nplain\nraw {\"k\":1}"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}
