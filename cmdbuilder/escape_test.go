package cmdbuilder

import (
	"reflect"
	"testing"
)

func TestQuote(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"/usr/bin/tool", "/usr/bin/tool"},
		{"--flag=value", "--flag=value"},
		{"", "''"},
		{"hello world", "'hello world'"},
		{"a;b", "'a;b'"},
		{"$HOME", "'$HOME'"},
		{"`whoami`", "'`whoami`'"},
		{`double"quote`, `'double"quote'`},
		{"it's", `'it'\''s'`},
		{"a|b&c", "'a|b&c'"},
		{"tab\there", "'tab\there'"},
		{"new\nline", "'new\nline'"},
	}
	for _, tc := range cases {
		if got := Quote(tc.in); got != tc.want {
			t.Errorf("Quote(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestJoinLine_RoundTrip(t *testing.T) {
	vectors := [][]string{
		{"/bin/echo", "hello world"},
		{"sh", "-c", "echo $HOME; rm -rf /"},
		{"tool", "", "empty above"},
		{"grep", "it's a 'quoted' string", "file name.txt"},
		{"env", "A=1", "B=two words", "`backtick`"},
	}
	for _, argv := range vectors {
		line := JoinLine(argv)
		got := tokenize(t, line)
		if !reflect.DeepEqual(got, argv) {
			t.Errorf("Re-tokenizing %q gave %v, want %v", line, got, argv)
		}
	}
}

func TestJoinLine_InjectionStaysOneToken(t *testing.T) {
	argv := []string{"/bin/echo", "x; touch /tmp/pwned"}
	line := JoinLine(argv)
	got := tokenize(t, line)
	if len(got) != 2 {
		t.Fatalf("Expected 2 tokens after re-tokenizing %q, got %v", line, got)
	}
	if got[1] != argv[1] {
		t.Errorf("Expected payload preserved as one token, got %q", got[1])
	}
}

// tokenize splits a command line the way a POSIX shell would, covering the
// constructs Quote emits: bare tokens, single-quoted segments, and
// backslash-escaped characters.
func tokenize(t *testing.T, line string) []string {
	t.Helper()

	var tokens []string
	var cur []rune
	started := false
	inQuote := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case inQuote:
			if c == '\'' {
				inQuote = false
			} else {
				cur = append(cur, c)
			}
		case c == '\'':
			inQuote = true
			started = true
		case c == '\\':
			i++
			if i >= len(runes) {
				t.Fatalf("Dangling backslash in %q", line)
			}
			cur = append(cur, runes[i])
			started = true
		case c == ' ':
			if started {
				tokens = append(tokens, string(cur))
				cur = cur[:0]
				started = false
			}
		default:
			cur = append(cur, c)
			started = true
		}
	}
	if inQuote {
		t.Fatalf("Unterminated quote in %q", line)
	}
	if started {
		tokens = append(tokens, string(cur))
	}
	return tokens
}
