package ref

import (
	"testing"

	"github.com/whoisashraf/quran-api/core/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    Ref
		wantErr bool
	}{
		{input: "1:1", want: Ref{Chapter: 1, Verse: 1}},
		{input: "2:255", want: Ref{Chapter: 2, Verse: 255}},
		{input: "114:6", want: Ref{Chapter: 114, Verse: 6}},
		{input: " 1:1 ", want: Ref{Chapter: 1, Verse: 1}},
		// Syntactically valid but semantically out of range: still parses;
		// range checking happens downstream.
		{input: "115:1", want: Ref{Chapter: 115, Verse: 1}},
		{input: "0:0", want: Ref{Chapter: 0, Verse: 0}},

		{input: "", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "1:1:1", wantErr: true},
		{input: "1", wantErr: true},
		{input: "1:", wantErr: true},
		{input: ":1", wantErr: true},
		{input: "1:a", wantErr: true},
		{input: "a:1", wantErr: true},
		{input: "1:1 extra", wantErr: true},
		{input: "1.1", wantErr: true},
		{input: "1: 1", wantErr: true},
		{input: "-1:1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) = %+v, want error", tt.input, got)
				}
				if !errors.Is(err, errors.ErrFormat) {
					t.Errorf("Parse(%q) error = %v, want ErrFormat", tt.input, err)
				}
				var fe *errors.FormatError
				if !errors.As(err, &fe) {
					t.Errorf("Parse(%q) error type = %T, want *errors.FormatError", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	r := Ref{Chapter: 2, Verse: 255}
	if got, want := r.String(), "2:255"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
