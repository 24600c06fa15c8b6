package loader

import (
	"fmt"
	"strconv"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/whoisashraf/quran-api/core/corpus"
	"github.com/whoisashraf/quran-api/core/errors"
)

// Tanzil ships the corpus as two XML documents: the text document holds
// sura and aya elements, the metadata document holds the start markers of
// every juz and page. Juz and page numbers for each aya are derived by
// walking the ayas in canonical order and advancing at each marker.

// marker addresses the first aya of a juz or page.
type marker struct {
	sura int
	aya  int
}

// suraCountExpr is compiled once; it pre-checks the text document before
// any per-node work.
var suraCountExpr = xpath.MustCompile("count(//sura)")

// LoadTanzil reads a Tanzil text document and its metadata document.
// Either path may point at an xz-compressed file.
func LoadTanzil(textPath, metaPath string) ([]*corpus.Chapter, error) {
	textDoc, err := parseXML(textPath)
	if err != nil {
		return nil, err
	}
	metaDoc, err := parseXML(metaPath)
	if err != nil {
		return nil, err
	}

	nav := xmlquery.CreateXPathNavigator(textDoc)
	if n := int(suraCountExpr.Evaluate(nav).(float64)); n != corpus.ChapterCount {
		return nil, errors.NewCorpus(textPath,
			fmt.Errorf("text document holds %d suras, want %d", n, corpus.ChapterCount))
	}

	juzStarts, err := collectMarkers(metaDoc, "//juzs/juz", metaPath)
	if err != nil {
		return nil, err
	}
	pageStarts, err := collectMarkers(metaDoc, "//pages/page", metaPath)
	if err != nil {
		return nil, err
	}
	if len(juzStarts) == 0 || len(pageStarts) == 0 {
		return nil, errors.NewCorpus(metaPath, fmt.Errorf("metadata document holds no juz or page markers"))
	}

	var chapters []*corpus.Chapter
	curJuz, curPage := 0, 0
	for _, suraNode := range xmlquery.Find(textDoc, "//sura") {
		suraIdx, err := intAttr(suraNode, "index", textPath)
		if err != nil {
			return nil, err
		}

		ch := &corpus.Chapter{
			Number: suraIdx,
			Name:   suraNode.SelectAttr("name"),
		}
		for _, ayaNode := range xmlquery.Find(suraNode, "aya") {
			ayaIdx, err := intAttr(ayaNode, "index", textPath)
			if err != nil {
				return nil, err
			}
			at := marker{sura: suraIdx, aya: ayaIdx}
			if j, ok := juzStarts[at]; ok {
				curJuz = j
			}
			if p, ok := pageStarts[at]; ok {
				curPage = p
			}
			if curJuz == 0 || curPage == 0 {
				return nil, errors.NewCorpus(metaPath,
					fmt.Errorf("aya %d:%d precedes the first juz or page marker", suraIdx, ayaIdx))
			}
			ch.Verses = append(ch.Verses, corpus.Verse{
				Number: ayaIdx,
				Text:   ayaNode.SelectAttr("text"),
				Juz:    curJuz,
				Page:   curPage,
			})
		}
		chapters = append(chapters, ch)
	}
	return chapters, nil
}

// LoadTanzilStore loads the Tanzil pair and builds the validated store.
func LoadTanzilStore(textPath, metaPath string) (*corpus.Store, error) {
	chapters, err := LoadTanzil(textPath, metaPath)
	if err != nil {
		return nil, err
	}
	return corpus.NewStore(chapters)
}

// parseXML opens (decompressing if needed) and parses an XML document.
func parseXML(path string) (*xmlquery.Node, error) {
	r, closeFn, err := open(path)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, errors.NewCorpus(path, fmt.Errorf("parsing XML: %w", err))
	}
	return doc, nil
}

// collectMarkers reads start markers from the metadata document. Each
// marker element carries index, sura, and aya attributes.
func collectMarkers(doc *xmlquery.Node, expr, path string) (map[marker]int, error) {
	starts := make(map[marker]int)
	for _, node := range xmlquery.Find(doc, expr) {
		index, err := intAttr(node, "index", path)
		if err != nil {
			return nil, err
		}
		sura, err := intAttr(node, "sura", path)
		if err != nil {
			return nil, err
		}
		aya, err := intAttr(node, "aya", path)
		if err != nil {
			return nil, err
		}
		starts[marker{sura: sura, aya: aya}] = index
	}
	return starts, nil
}

// intAttr reads a required integer attribute.
func intAttr(node *xmlquery.Node, name, path string) (int, error) {
	raw := node.SelectAttr(name)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewCorpus(path,
			fmt.Errorf("element <%s>: attribute %q = %q is not an integer", node.Data, name, raw))
	}
	return n, nil
}
