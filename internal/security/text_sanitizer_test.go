package security

import "testing"

// TestTextSanitizer_RemovesTags はHTMLタグが全て除去されることを検証する。
func TestTextSanitizer_RemovesTags(t *testing.T) {
	s := NewTextSanitizer()

	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"script tag", `<script>alert("x")</script>hello`, "hello"},
		{"anchor tag", `<a href="https://example.com">link</a>`, "link"},
		{"plain text", "just text", "just text"},
		{"empty", "", ""},
		{"whitespace trimmed", "  padded  ", "padded"},
		{"img tag", `<img src="x" onerror="alert(1)">note`, "note"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := s.Sanitize(tc.input)
			if got != tc.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

// TestTextSanitizer_Idempotent は同一入力に対して常に同一出力を返すことを検証する。
func TestTextSanitizer_Idempotent(t *testing.T) {
	s := NewTextSanitizer()

	input := `<b>bold</b> text`
	first := s.Sanitize(input)
	second := s.Sanitize(first)
	if first != second {
		t.Errorf("Sanitize is not idempotent: %q -> %q", first, second)
	}
}
