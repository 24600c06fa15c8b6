// Package corpus holds the immutable chapter/verse dataset and answers
// direct-key queries in bounded time. The dataset is built once at startup
// and is read-only afterwards, so concurrent readers need no locking.
package corpus

// Corpus bounds. These are properties of the text itself, not of any
// particular source document.
const (
	// ChapterCount is the number of surahs.
	ChapterCount = 114
	// JuzCount is the number of recitation divisions.
	JuzCount = 30
	// PageCount is the number of print pages in the standard Madani layout.
	PageCount = 604
)

// Chapter is one of the 114 surahs. Verses are stored in canonical
// recitation order.
type Chapter struct {
	// Number is the chapter number (1-indexed, contiguous).
	Number int `json:"number"`

	// Name is the display name of the chapter.
	Name string `json:"name"`

	// Verses contains the chapter's verses in canonical order.
	Verses []Verse `json:"verses"`
}

// VerseCount returns the number of verses in the chapter.
func (c *Chapter) VerseCount() int {
	return len(c.Verses)
}

// Verse is the atomic numbered unit of text within a chapter.
type Verse struct {
	// Number is the verse number, unique within its chapter (1-indexed,
	// contiguous).
	Number int `json:"number"`

	// Text is the verse text, treated as opaque.
	Text string `json:"text"`

	// Juz is the global recitation-division number in [1,30].
	Juz int `json:"juz"`

	// Page is the global print-page number in [1,604].
	Page int `json:"page"`
}

// Located pairs a verse with its owning chapter. Division and page queries
// return verses from many chapters, so every result carries its chapter
// back-reference.
type Located struct {
	Chapter *Chapter
	Verse   *Verse
}
