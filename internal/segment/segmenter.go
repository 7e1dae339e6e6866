// Package segment locates the 16 canonical GHS sections inside a document's
// merged token stream. Headers vary by regional standard and survive OCR
// imperfectly, so matching is fuzzy: bounded edit distance against the
// canonical titles combined with keyword overlap, with the printed section
// number as a tie-breaking hint.
package segment

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/chemtrack/sds-extractor/constants"
	"github.com/chemtrack/sds-extractor/internal/entity"
	"github.com/chemtrack/sds-extractor/internal/textnorm"
)

type Config struct {
	// AcceptThreshold is the minimum combined score for a header match.
	AcceptThreshold float64
	// MaxHeaderWords rejects long lines as header candidates outright.
	MaxHeaderWords int
}

type Segmenter struct {
	cfg    Config
	logger *slog.Logger

	foldedTitles map[constants.Section]string
}

func NewSegmenter(cfg Config, logger *slog.Logger) *Segmenter {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.AcceptThreshold <= 0 {
		cfg.AcceptThreshold = 0.6
	}
	if cfg.MaxHeaderWords <= 0 {
		cfg.MaxHeaderWords = 12
	}
	titles := make(map[constants.Section]string, len(constants.SectionTitles))
	for sec, title := range constants.SectionTitles {
		titles[sec] = textnorm.Fold(title)
	}
	return &Segmenter{cfg: cfg, logger: logger, foldedTitles: titles}
}

// reHeaderPrefix peels "SECTION 4:", "4.", "4 -" style numbering off a
// candidate header line, capturing the printed number.
var reHeaderPrefix = regexp.MustCompile(`(?i)^\s*(?:section\s*)?(\d{1,2})\s*[:.\-–]?\s*`)

// Segment labels every block (and so every token) with a canonical section.
// Blocks before the first accepted header are Unclassified. A header for an
// already-seen section re-enters that section (paginated restatement)
// rather than opening a new one.
func (s *Segmenter) Segment(blocks []entity.TextBlock) *Labeling {
	l := newLabeling()
	current := constants.SectionUnclassified
	seen := make(map[constants.Section]bool)

	for _, b := range blocks {
		if sec, score, ok := s.matchHeader(b.Text); ok {
			if seen[sec] && sec != current {
				s.logger.Debug("segment.header.restated", "section", sec, "page", b.Page, "score", score)
			} else if !seen[sec] {
				s.logger.Debug("segment.header.matched", "section", sec, "page", b.Page, "score", score, "text", b.Text)
			}
			seen[sec] = true
			current = sec
		}
		l.append(b, current)
	}
	return l
}

// matchHeader scores a line against all canonical section titles and
// returns the best section when it clears the acceptance threshold.
func (s *Segmenter) matchHeader(line string) (constants.Section, float64, bool) {
	words := textnorm.Words(line)
	if len(words) == 0 || len(words) > s.cfg.MaxHeaderWords {
		return constants.SectionUnclassified, 0, false
	}

	numberHint := 0
	if m := reHeaderPrefix.FindStringSubmatch(line); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n >= 1 && n <= 16 {
			numberHint = n
		}
	}
	stripped := textnorm.Fold(reHeaderPrefix.ReplaceAllString(line, ""))
	if stripped == "" {
		return constants.SectionUnclassified, 0, false
	}

	best := constants.SectionUnclassified
	bestScore := 0.0
	for _, sec := range constants.CanonicalSections {
		score := s.score(sec, stripped, numberHint)
		if score > bestScore {
			best, bestScore = sec, score
		}
	}
	if bestScore < s.cfg.AcceptThreshold {
		return constants.SectionUnclassified, bestScore, false
	}
	return best, bestScore, true
}

func (s *Segmenter) score(sec constants.Section, header string, numberHint int) float64 {
	lev := levenshtein.Similarity(header, s.foldedTitles[sec], nil)
	kw := keywordOverlap(header, constants.SectionKeywords[sec])

	score := lev
	if kw > score {
		score = kw
	}
	switch {
	case numberHint == 0:
		// no hint, fuzzy text carries the decision
	case numberHint == constants.SectionNumber(sec):
		score += 0.25
	default:
		score -= 0.2
	}
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// keywordOverlap scores how many of a section's discriminating keywords
// appear in the header, discounted so partial overlaps of generic words
// ("information") cannot win alone.
func keywordOverlap(header string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}
	headerWords := make(map[string]bool)
	for _, w := range strings.Fields(header) {
		headerWords[strings.Trim(w, ".,:;()-/")] = true
	}
	matched := 0
	for _, k := range keywords {
		if headerWords[k] {
			matched++
		}
	}
	if matched < 2 && len(keywords) >= 2 {
		// a single generic keyword is not evidence of a header
		return 0
	}
	return 0.9 * float64(matched) / float64(len(keywords))
}
