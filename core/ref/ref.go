// Package ref parses combined "chapter:verse" identifiers. Parsing is a
// shape check only: both halves must be integers joined by exactly one
// colon. Whether the numbers address anything in the corpus is the
// resolver's concern.
package ref

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/whoisashraf/quran-api/core/errors"
)

// Ref is a parsed combined identifier. It is derived from caller input and
// never stored.
type Ref struct {
	Chapter int
	Verse   int
}

// refGrammar is the participle grammar for combined identifiers.
//
//nolint:govet // participle grammar tags are not standard struct tags
type refGrammar struct {
	Chapter int `@Int`
	Verse   int `":" @Int`
}

// refLexer tokenizes combined identifiers. Anything outside these rules is
// a lex error and therefore a format error.
var refLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Colon", Pattern: `:`},
})

// refParser is the participle parser for combined identifiers.
var refParser = participle.MustBuild[refGrammar](
	participle.Lexer(refLexer),
)

// Parse parses a combined identifier of the form "<chapter>:<verse>".
// Surrounding whitespace is tolerated; any other deviation (missing or
// extra separator, non-numeric half, trailing input) is a FormatError.
func Parse(input string) (Ref, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return Ref{}, errors.NewFormat("ayah reference", input, "empty reference")
	}

	parsed, err := refParser.ParseString("", s)
	if err != nil {
		return Ref{}, errors.NewFormat("ayah reference", input,
			"expected the form <surah>:<ayah>")
	}

	return Ref{Chapter: parsed.Chapter, Verse: parsed.Verse}, nil
}

// String returns the canonical form of the reference.
func (r Ref) String() string {
	return strconv.Itoa(r.Chapter) + ":" + strconv.Itoa(r.Verse)
}
