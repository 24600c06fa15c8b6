// Package resolver validates caller-supplied addresses, resolves them
// through the corpus store, and shapes the results into response-ready
// projections. Every operation takes raw string parameters — the resolver
// owns integer parsing, so a malformed number is a format error here, not
// in the transport — and returns either a projection or exactly one of the
// typed errors from core/errors.
package resolver

import (
	"strconv"

	"github.com/whoisashraf/quran-api/core/corpus"
	"github.com/whoisashraf/quran-api/core/errors"
	"github.com/whoisashraf/quran-api/core/ref"
)

// Resolver answers address queries against an injected corpus store.
type Resolver struct {
	store *corpus.Store
}

// New creates a Resolver backed by the given store.
func New(store *corpus.Store) *Resolver {
	return &Resolver{store: store}
}

// parseInt parses a caller-supplied numeric parameter. Anything strconv
// rejects is a format error.
func parseInt(field, input string) (int, error) {
	n, err := strconv.Atoi(input)
	if err != nil {
		return 0, errors.NewFormat(field, input, "not an integer")
	}
	return n, nil
}

// chapterNumber validates a surah parameter: parse, then bound check.
func (r *Resolver) chapterNumber(input string) (int, error) {
	n, err := parseInt("surah", input)
	if err != nil {
		return 0, err
	}
	if n < 1 || n > corpus.ChapterCount {
		return 0, errors.NewRange("surah", n, 1, corpus.ChapterCount)
	}
	return n, nil
}

// Chapters returns summaries of every surah in canonical order.
func (r *Resolver) Chapters() []ChapterSummary {
	chapters := r.store.Chapters()
	summaries := make([]ChapterSummary, len(chapters))
	for i, ch := range chapters {
		summaries[i] = ChapterSummary{Number: ch.Number, Name: ch.Name, AyahCount: ch.VerseCount()}
	}
	return summaries
}

// ChapterSummary resolves a surah number to its summary projection.
func (r *Resolver) ChapterSummary(number string) (*ChapterSummary, error) {
	n, err := r.chapterNumber(number)
	if err != nil {
		return nil, err
	}
	ch, ok := r.store.ChapterByNumber(n)
	if !ok {
		return nil, errors.NewNotFound("surah", number)
	}
	return &ChapterSummary{Number: ch.Number, Name: ch.Name, AyahCount: ch.VerseCount()}, nil
}

// Chapter resolves a surah number to its full projection: summary plus
// every ayah.
func (r *Resolver) Chapter(number string) (*ChapterDetail, error) {
	n, err := r.chapterNumber(number)
	if err != nil {
		return nil, err
	}
	ch, ok := r.store.ChapterByNumber(n)
	if !ok {
		return nil, errors.NewNotFound("surah", number)
	}

	detail := &ChapterDetail{
		ChapterSummary: ChapterSummary{Number: ch.Number, Name: ch.Name, AyahCount: ch.VerseCount()},
		Ayahs:          make([]VerseView, len(ch.Verses)),
	}
	for i := range ch.Verses {
		detail.Ayahs[i] = newVerseView(corpus.Located{Chapter: ch, Verse: &ch.Verses[i]})
	}
	return detail, nil
}

// Verse resolves a (surah, ayah) pair. The surah is validated first: if it
// is invalid, the surah error is reported, never the ayah error. The ayah
// bound depends on the surah, so it is only checked once the surah is
// known to exist.
func (r *Resolver) Verse(chapter, verse string) (*VerseView, error) {
	c, err := r.chapterNumber(chapter)
	if err != nil {
		return nil, err
	}
	v, err := parseInt("ayah", verse)
	if err != nil {
		return nil, err
	}
	return r.resolveVerse(c, v, chapter)
}

// VerseByRef resolves a combined "surah:ayah" identifier. Range handling
// is shared with Verse, so a reference with syntactically valid but
// out-of-range numbers follows the range-error path, not the format-error
// path.
func (r *Resolver) VerseByRef(reference string) (*VerseView, error) {
	parsed, err := ref.Parse(reference)
	if err != nil {
		return nil, err
	}
	if parsed.Chapter < 1 || parsed.Chapter > corpus.ChapterCount {
		return nil, errors.NewRange("surah", parsed.Chapter, 1, corpus.ChapterCount)
	}
	return r.resolveVerse(parsed.Chapter, parsed.Verse, strconv.Itoa(parsed.Chapter))
}

// resolveVerse is the shared range-check and lookup for both verse paths.
// The surah number is already range-valid.
func (r *Resolver) resolveVerse(c, v int, chapterKey string) (*VerseView, error) {
	ch, ok := r.store.ChapterByNumber(c)
	if !ok {
		return nil, errors.NewNotFound("surah", chapterKey)
	}
	if v < 1 || v > ch.VerseCount() {
		return nil, errors.NewRange("ayah", v, 1, ch.VerseCount())
	}
	loc, ok := r.store.VerseByChapterAndNumber(c, v)
	if !ok {
		return nil, errors.NewNotFound("ayah", ref.Ref{Chapter: c, Verse: v}.String())
	}
	view := newVerseView(loc)
	return &view, nil
}

// Juz resolves a recitation-division number to the ordered sequence of its
// ayahs. A range-valid juz with no matching ayahs is a data gap, reported
// as not-found rather than as a validation failure.
func (r *Resolver) Juz(number string) (*VerseList, error) {
	n, err := parseInt("juz", number)
	if err != nil {
		return nil, err
	}
	if n < 1 || n > corpus.JuzCount {
		return nil, errors.NewRange("juz", n, 1, corpus.JuzCount)
	}
	locs := r.store.VersesByJuz(n)
	if len(locs) == 0 {
		return nil, errors.NewNotFound("juz", number)
	}
	return newVerseList(locs), nil
}

// Page resolves a print-page number, with the same contract as Juz.
func (r *Resolver) Page(number string) (*VerseList, error) {
	n, err := parseInt("page", number)
	if err != nil {
		return nil, err
	}
	if n < 1 || n > corpus.PageCount {
		return nil, errors.NewRange("page", n, 1, corpus.PageCount)
	}
	locs := r.store.VersesByPage(n)
	if len(locs) == 0 {
		return nil, errors.NewNotFound("page", number)
	}
	return newVerseList(locs), nil
}
