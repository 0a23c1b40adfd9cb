package scanner

import (
	"testing"

	"nickandperla.net/rmscript/internal/token"
)

func types(tokens []token.Token) []token.Type {
	out := make([]token.Type, len(tokens))
	for i, t := range tokens {
		out[i] = t.Type
	}
	return out
}

func countType(tokens []token.Token, tt token.Type) int {
	n := 0
	for _, t := range tokens {
		if t.Type == tt {
			n++
		}
	}
	return n
}

func TestKeywordsCaseInsensitive(t *testing.T) {
	tokens, diags := Scan("LOOK Left\n")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	want := []token.Type{token.LOOK, token.DIRECTION, token.NEWLINE, token.EOF}
	got := types(tokens)
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	if tokens[0].Value != "look" {
		t.Errorf("expected lowercased keyword 'look', got '%s'", tokens[0].Value)
	}
	if tokens[1].Value != "left" {
		t.Errorf("expected direction 'left', got '%s'", tokens[1].Value)
	}
}

func TestIdentifierPreservesCase(t *testing.T) {
	tokens, _ := Scan("play BootSound\n")
	if tokens[1].Type != token.IDENTIFIER {
		t.Fatalf("expected IDENTIFIER, got %v", tokens[1].Type)
	}
	if tokens[1].Value != "BootSound" {
		t.Errorf("expected 'BootSound', got '%s'", tokens[1].Value)
	}
}

func TestDurationLiteral(t *testing.T) {
	tests := []struct {
		input string
		want  token.Type
		value string
	}{
		{"wait 2s\n", token.DURATION, "2s"},
		{"wait 0.5s\n", token.DURATION, "0.5s"},
		{"turn left 30\n", token.NUMBER, "30"},
	}

	for _, tt := range tests {
		tokens, diags := Scan(tt.input)
		if len(diags) != 0 {
			t.Fatalf("%q: unexpected diagnostics: %v", tt.input, diags)
		}
		found := false
		for _, tok := range tokens {
			if tok.Type == tt.want && tok.Value == tt.value {
				found = true
			}
		}
		if !found {
			t.Errorf("%q: expected %v %q in %v", tt.input, tt.want, tt.value, tokens)
		}
	}
}

func TestDurationSuffixNotPartOfIdentifier(t *testing.T) {
	// "2seconds" is a number followed by an identifier, not a duration.
	tokens, _ := Scan("play boing 2seconds\n")
	if got := countType(tokens, token.DURATION); got != 0 {
		t.Errorf("expected no DURATION token, got %d", got)
	}
	if got := countType(tokens, token.NUMBER); got != 1 {
		t.Errorf("expected one NUMBER token, got %d", got)
	}
}

func TestIndentation(t *testing.T) {
	source := "repeat 2\n    look left\n    wait 1s\nlook right\n"
	tokens, diags := Scan(source)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if got := countType(tokens, token.INDENT); got != 1 {
		t.Errorf("expected 1 INDENT, got %d", got)
	}
	if got := countType(tokens, token.DEDENT); got != 1 {
		t.Errorf("expected 1 DEDENT, got %d", got)
	}
}

func TestTabEqualsFourSpaces(t *testing.T) {
	source := "repeat 2\n\tlook left\n    look right\n"
	tokens, diags := Scan(source)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if got := countType(tokens, token.INDENT); got != 1 {
		t.Errorf("expected 1 INDENT, got %d", got)
	}
}

func TestBlankAndCommentLinesIgnoreIndentation(t *testing.T) {
	source := "look left\n\n# comment\n        # indented comment\nlook right\n"
	tokens, diags := Scan(source)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if got := countType(tokens, token.INDENT); got != 0 {
		t.Errorf("expected no INDENT, got %d", got)
	}
	if got := countType(tokens, token.DEDENT); got != 0 {
		t.Errorf("expected no DEDENT, got %d", got)
	}
}

func TestInlineComment(t *testing.T) {
	tokens, diags := Scan("look left # glance\nwait 1s\n")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	for _, tok := range tokens {
		if tok.Type == token.IDENTIFIER {
			t.Errorf("comment text leaked into tokens: %v", tok)
		}
	}
}

func TestInconsistentDedent(t *testing.T) {
	source := "repeat 2\n        look left\n    look right\n"
	_, diags := Scan(source)
	if len(diags) == 0 {
		t.Fatal("expected inconsistent indentation diagnostic")
	}
	if got := diags[0].Message; got != "Inconsistent indentation (level 4)" {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestMixedTabsAndSpaces(t *testing.T) {
	source := "repeat 2\n  \tlook left\n"
	_, diags := Scan(source)
	if len(diags) == 0 {
		t.Fatal("expected mixed indentation diagnostic")
	}
	if got := diags[0].Message; got != "Inconsistent indentation" {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestDescriptionLine(t *testing.T) {
	tokens, diags := Scan("DESCRIPTION  Waves hello, twice \nlook left\n")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if tokens[0].Type != token.DESCRIPTION {
		t.Fatalf("expected DESCRIPTION first, got %v", tokens[0].Type)
	}
	if tokens[1].Type != token.DESCRIPTION_TEXT {
		t.Fatalf("expected DESCRIPTION_TEXT, got %v", tokens[1].Type)
	}
	if tokens[1].Value != "Waves hello, twice" {
		t.Errorf("expected trimmed description, got %q", tokens[1].Value)
	}
}

func TestUnexpectedCharacter(t *testing.T) {
	tokens, diags := Scan("look left @\n")
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %v", diags)
	}
	if got := countType(tokens, token.LOOK); got != 1 {
		t.Errorf("scan did not continue past bad character")
	}
}

func TestDedentsFlushedAtEOF(t *testing.T) {
	tokens, diags := Scan("repeat 1\n    look left")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if got := countType(tokens, token.DEDENT); got != 1 {
		t.Errorf("expected 1 DEDENT at EOF, got %d", got)
	}
	if tokens[len(tokens)-1].Type != token.EOF {
		t.Errorf("stream must end with EOF")
	}
}

func TestPositions(t *testing.T) {
	tokens, _ := Scan("look left\nwait 1s\n")
	if tokens[0].Line != 1 || tokens[0].Column != 1 {
		t.Errorf("look at L%d:C%d, expected L1:C1", tokens[0].Line, tokens[0].Column)
	}
	var wait token.Token
	for _, tok := range tokens {
		if tok.Type == token.WAIT {
			wait = tok
		}
	}
	if wait.Line != 2 || wait.Column != 1 {
		t.Errorf("wait at L%d:C%d, expected L2:C1", wait.Line, wait.Column)
	}
}
