package resolver

import "github.com/whoisashraf/quran-api/core/corpus"

// Projections are the response-ready shapes handed to the transport layer.
// They carry plain data only; the transport decides the wire format.

// ChapterSummary is the short view of a surah.
type ChapterSummary struct {
	Number    int    `json:"number"`
	Name      string `json:"name"`
	AyahCount int    `json:"ayah_count"`
}

// ChapterDetail is the full view of a surah: the summary plus every ayah,
// each annotated with its chapter back-reference.
type ChapterDetail struct {
	ChapterSummary
	Ayahs []VerseView `json:"ayahs"`
}

// VerseView is a single ayah annotated with its owning surah's number and
// name.
type VerseView struct {
	Surah     int    `json:"surah"`
	SurahName string `json:"surah_name"`
	Ayah      int    `json:"ayah"`
	Text      string `json:"text"`
	Juz       int    `json:"juz"`
	Page      int    `json:"page"`
}

// VerseList is an ordered sequence of ayah views plus the match count,
// returned by juz and page queries.
type VerseList struct {
	Count int         `json:"count"`
	Ayahs []VerseView `json:"ayahs"`
}

// newVerseView projects a located verse.
func newVerseView(loc corpus.Located) VerseView {
	return VerseView{
		Surah:     loc.Chapter.Number,
		SurahName: loc.Chapter.Name,
		Ayah:      loc.Verse.Number,
		Text:      loc.Verse.Text,
		Juz:       loc.Verse.Juz,
		Page:      loc.Verse.Page,
	}
}

// newVerseList projects an ordered sequence of located verses.
func newVerseList(locs []corpus.Located) *VerseList {
	list := &VerseList{
		Count: len(locs),
		Ayahs: make([]VerseView, len(locs)),
	}
	for i, loc := range locs {
		list.Ayahs[i] = newVerseView(loc)
	}
	return list
}
