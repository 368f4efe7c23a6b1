package steps

import (
	"strings"
	"testing"
)

func TestFormatComment(t *testing.T) {
	body := FormatComment("  Export fails for large files \n")

	if !strings.HasPrefix(body, "Export fails for large files\n") {
		t.Errorf("body should start with the trimmed description: %q", body)
	}
	if !strings.HasSuffix(body, commentFooter) {
		t.Errorf("body should end with the footer: %q", body)
	}
}
