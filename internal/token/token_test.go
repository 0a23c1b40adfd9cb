package token

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		ident string
		want  Type
		value string
	}{
		{"look", LOOK, "look"},
		{"LOOK", LOOK, "look"},
		{"Repeat", REPEAT, "repeat"},
		{"left", DIRECTION, "left"},
		{"backwards", DIRECTION, "backwards"},
		{"fast", DURATION_KEYWORD, "fast"},
		{"slowly", DURATION_KEYWORD, "slowly"},
		{"tiny", QUALITATIVE, "tiny"},
		{"maximum", QUALITATIVE, "maximum"},
		{"high", ANTENNA_CLOCK, "high"},
		{"ext", ANTENNA_CLOCK, "ext"},
		{"pause", SOUND_BLOCKING, "pause"},
		{"and", AND, "and"},
		{"BootSound", IDENTIFIER, "BootSound"},
	}

	for _, tt := range tests {
		got, value := Classify(tt.ident)
		if got != tt.want || value != tt.value {
			t.Errorf("Classify(%q) = %v %q, want %v %q", tt.ident, got, value, tt.want, tt.value)
		}
	}
}

func TestWaitClassifiesAsKeyword(t *testing.T) {
	// 'wait' is both a statement keyword and a sound-blocking modifier; the
	// keyword wins and the parser special-cases play statements.
	got, _ := Classify("wait")
	if got != WAIT {
		t.Errorf("expected WAIT, got %v", got)
	}
}

func TestQualitativeLevels(t *testing.T) {
	tests := []struct {
		word string
		want QualitativeLevel
	}{
		{"minuscule", VerySmall},
		{"little", Small},
		{"normal", Medium},
		{"huge", Large},
		{"enormous", VeryLarge},
	}
	for _, tt := range tests {
		if got := QualitativeKeywords[tt.word]; got != tt.want {
			t.Errorf("%q: expected level %d, got %d", tt.word, tt.want, got)
		}
	}
}
