package corpus

import (
	"fmt"

	"github.com/whoisashraf/quran-api/core/errors"
)

// Store holds the parsed corpus and its lookup indexes. It is immutable
// after construction.
type Store struct {
	chapters []*Chapter

	// juzIndex[j-1] and pageIndex[p-1] hold the verses of juz j / page p in
	// canonical order. Built in a single pass; the monotonicity invariant
	// guarantees each bucket is a contiguous run of the corpus.
	juzIndex  [JuzCount][]Located
	pageIndex [PageCount][]Located

	verseCount int
	checksum   string
}

// NewStore validates the chapters against the corpus invariants and builds
// the lookup indexes. A violation is an unrecoverable startup error, not a
// per-request error.
func NewStore(chapters []*Chapter) (*Store, error) {
	if errs := Validate(chapters); len(errs) > 0 {
		return nil, errors.NewCorpus("", fmt.Errorf("%d invariant violations, first: %w", len(errs), errs[0]))
	}

	s := &Store{chapters: chapters}
	for _, ch := range chapters {
		for i := range ch.Verses {
			v := &ch.Verses[i]
			loc := Located{Chapter: ch, Verse: v}
			s.juzIndex[v.Juz-1] = append(s.juzIndex[v.Juz-1], loc)
			s.pageIndex[v.Page-1] = append(s.pageIndex[v.Page-1], loc)
			s.verseCount++
		}
	}

	sum, err := Checksum(chapters)
	if err != nil {
		return nil, errors.NewCorpus("", errors.Wrap(err, "computing checksum"))
	}
	s.checksum = sum

	return s, nil
}

// ChapterByNumber returns the chapter with the given number, or ok=false if
// no such chapter is loaded. Bounds checking is the resolver's concern; the
// store only answers about the loaded set.
func (s *Store) ChapterByNumber(n int) (*Chapter, bool) {
	if n < 1 || n > len(s.chapters) {
		return nil, false
	}
	return s.chapters[n-1], true
}

// VerseByChapterAndNumber returns the verse v of chapter c, or ok=false if
// the chapter is not loaded or lacks a verse with that number.
func (s *Store) VerseByChapterAndNumber(c, v int) (Located, bool) {
	ch, ok := s.ChapterByNumber(c)
	if !ok {
		return Located{}, false
	}
	if v < 1 || v > len(ch.Verses) {
		return Located{}, false
	}
	return Located{Chapter: ch, Verse: &ch.Verses[v-1]}, true
}

// VersesByJuz returns all verses of the given juz in canonical order. The
// result is empty (never nil panics, just zero length) if no verse matches;
// callers decide whether that is an error.
func (s *Store) VersesByJuz(j int) []Located {
	if j < 1 || j > JuzCount {
		return nil
	}
	return s.juzIndex[j-1]
}

// VersesByPage returns all verses of the given page in canonical order,
// with the same contract as VersesByJuz.
func (s *Store) VersesByPage(p int) []Located {
	if p < 1 || p > PageCount {
		return nil
	}
	return s.pageIndex[p-1]
}

// Chapters returns the loaded chapters in canonical order. The returned
// slice must not be mutated.
func (s *Store) Chapters() []*Chapter {
	return s.chapters
}

// ChapterCount returns the number of loaded chapters.
func (s *Store) ChapterCount() int {
	return len(s.chapters)
}

// VerseCount returns the total number of verses across all chapters.
func (s *Store) VerseCount() int {
	return s.verseCount
}

// Checksum returns the BLAKE3 content hash of the loaded corpus.
func (s *Store) Checksum() string {
	return s.checksum
}
