package utils

import (
	"strings"
	"testing"
)

func TestSanitizeRichText(t *testing.T) {
	in := `<p style="color:red" onclick="steal()">Rated <strong>5kg</strong></p>` +
		`<script>alert(1)</script><a href="javascript:alert(1)">x</a>` +
		`<img src="data:image/png;base64,iVBORw0KGgo=">`
	out := SanitizeRichText(in)

	for _, banned := range []string{"<script", "onclick", "javascript:"} {
		if strings.Contains(out, banned) {
			t.Errorf("sanitized output still contains %q: %s", banned, out)
		}
	}
	for _, kept := range []string{"<strong>5kg</strong>", "data:image/png;base64", "<p"} {
		if !strings.Contains(out, kept) {
			t.Errorf("sanitized output lost %q: %s", kept, out)
		}
	}
}

func TestSanitizeRichTextPtr(t *testing.T) {
	if SanitizeRichTextPtr(nil) != nil {
		t.Fatal("nil must stay nil")
	}
	in := "<b>ok</b><script>x</script>"
	out := SanitizeRichTextPtr(&in)
	if out == nil || *out != "<b>ok</b>" {
		t.Fatalf("got %v", out)
	}
}
