package corpus

import (
	"fmt"
)

// ValidationError represents a corpus invariant violation with context.
type ValidationError struct {
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// newValidationError creates a new ValidationError.
func newValidationError(path, message string) error {
	return &ValidationError{Path: path, Message: message}
}

// Validate checks the corpus invariants and returns all violations:
//   - exactly ChapterCount chapters, numbered contiguously from 1;
//   - every chapter has at least one verse, numbered contiguously from 1;
//   - every verse's juz is in [1,JuzCount] and page is in [1,PageCount];
//   - juz and page are non-decreasing as verses are traversed in canonical
//     order across the whole corpus.
//
// The monotonicity invariant is what makes the juz/page slice indexes a
// single pass to build.
func Validate(chapters []*Chapter) []error {
	var errs []error

	if len(chapters) != ChapterCount {
		errs = append(errs, newValidationError("corpus",
			fmt.Sprintf("expected %d chapters, got %d", ChapterCount, len(chapters))))
	}

	prevJuz, prevPage := 0, 0
	for i, ch := range chapters {
		path := fmt.Sprintf("chapters[%d]", i)

		if ch == nil {
			errs = append(errs, newValidationError(path, "chapter is nil"))
			continue
		}
		if ch.Number != i+1 {
			errs = append(errs, newValidationError(path,
				fmt.Sprintf("chapter number %d breaks contiguity, expected %d", ch.Number, i+1)))
		}
		if len(ch.Verses) == 0 {
			errs = append(errs, newValidationError(path, "chapter has no verses"))
		}

		for j, v := range ch.Verses {
			vPath := fmt.Sprintf("%s.verses[%d]", path, j)

			if v.Number != j+1 {
				errs = append(errs, newValidationError(vPath,
					fmt.Sprintf("verse number %d breaks contiguity, expected %d", v.Number, j+1)))
			}
			if v.Juz < 1 || v.Juz > JuzCount {
				errs = append(errs, newValidationError(vPath,
					fmt.Sprintf("juz %d outside [1,%d]", v.Juz, JuzCount)))
				continue
			}
			if v.Page < 1 || v.Page > PageCount {
				errs = append(errs, newValidationError(vPath,
					fmt.Sprintf("page %d outside [1,%d]", v.Page, PageCount)))
				continue
			}
			if v.Juz < prevJuz {
				errs = append(errs, newValidationError(vPath,
					fmt.Sprintf("juz %d decreases from %d", v.Juz, prevJuz)))
			}
			if v.Page < prevPage {
				errs = append(errs, newValidationError(vPath,
					fmt.Sprintf("page %d decreases from %d", v.Page, prevPage)))
			}
			prevJuz, prevPage = v.Juz, v.Page
		}
	}

	return errs
}
