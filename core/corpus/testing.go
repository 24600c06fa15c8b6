package corpus

import "fmt"

// Test fixtures shared by package tests across the repository. A fixture
// corpus must satisfy every invariant in Validate, so it carries the full
// 114 chapters with synthetic text and a juz/page assignment that covers
// every division and every page at least once.

// fixtureVersesPerChapter gives 684 verses total, enough to cover all 604
// pages with a monotone step of at most one page per verse.
const fixtureVersesPerChapter = 6

// NewTestChapters builds a complete synthetic corpus for tests. Verse text
// is deterministic ("surah c, ayah v"); juz and page values are
// non-decreasing and together cover [1,JuzCount] and [1,PageCount] exactly.
func NewTestChapters() []*Chapter {
	total := ChapterCount * fixtureVersesPerChapter
	chapters := make([]*Chapter, ChapterCount)

	idx := 0
	for c := 1; c <= ChapterCount; c++ {
		ch := &Chapter{
			Number: c,
			Name:   fmt.Sprintf("Surah %d", c),
			Verses: make([]Verse, fixtureVersesPerChapter),
		}
		for v := 1; v <= fixtureVersesPerChapter; v++ {
			ch.Verses[v-1] = Verse{
				Number: v,
				Text:   fmt.Sprintf("surah %d, ayah %d", c, v),
				Juz:    1 + idx*JuzCount/total,
				Page:   1 + idx*PageCount/total,
			}
			idx++
		}
		chapters[c-1] = ch
	}
	return chapters
}

// NewTestStore builds a Store from NewTestChapters, panicking on failure.
// The fixture is valid by construction, so a panic means the fixture and
// the validator have diverged.
func NewTestStore() *Store {
	s, err := NewStore(NewTestChapters())
	if err != nil {
		panic(fmt.Sprintf("corpus fixture invalid: %v", err))
	}
	return s
}
