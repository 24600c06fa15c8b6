package loader

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/whoisashraf/quran-api/core/corpus"
	"github.com/whoisashraf/quran-api/core/errors"
)

// Wire shapes for the native JSON corpus format.

type jsonCorpus struct {
	Chapters []jsonChapter `json:"chapters"`
}

type jsonChapter struct {
	Number int         `json:"number"`
	Name   string      `json:"name"`
	Verses []jsonVerse `json:"verses"`
}

type jsonVerse struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
	Juz    int    `json:"juz"`
	Page   int    `json:"page"`
}

// decodeJSON decodes the native corpus format. Unknown fields are
// rejected so a mislabeled source fails loudly instead of loading a
// half-empty corpus.
func decodeJSON(r io.Reader, path string) ([]*corpus.Chapter, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var wire jsonCorpus
	if err := dec.Decode(&wire); err != nil {
		return nil, errors.NewCorpus(path, fmt.Errorf("decoding JSON corpus: %w", err))
	}
	if len(wire.Chapters) == 0 {
		return nil, errors.NewCorpus(path, fmt.Errorf("JSON corpus holds no chapters"))
	}

	chapters := make([]*corpus.Chapter, len(wire.Chapters))
	for i, wc := range wire.Chapters {
		ch := &corpus.Chapter{
			Number: wc.Number,
			Name:   wc.Name,
			Verses: make([]corpus.Verse, len(wc.Verses)),
		}
		for j, wv := range wc.Verses {
			ch.Verses[j] = corpus.Verse{
				Number: wv.Number,
				Text:   wv.Text,
				Juz:    wv.Juz,
				Page:   wv.Page,
			}
		}
		chapters[i] = ch
	}
	return chapters, nil
}

// EncodeJSON writes chapters in the native corpus format. It is the
// inverse of the JSON loading path and backs the export command.
func EncodeJSON(w io.Writer, chapters []*corpus.Chapter) error {
	wire := jsonCorpus{Chapters: make([]jsonChapter, len(chapters))}
	for i, ch := range chapters {
		wc := jsonChapter{
			Number: ch.Number,
			Name:   ch.Name,
			Verses: make([]jsonVerse, len(ch.Verses)),
		}
		for j, v := range ch.Verses {
			wc.Verses[j] = jsonVerse{Number: v.Number, Text: v.Text, Juz: v.Juz, Page: v.Page}
		}
		wire.Chapters[i] = wc
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(&wire)
}
