package classifier

import (
	"regexp"
	"strings"
)

// LineKind groups a recommendation line for display
type LineKind string

const (
	SectionHeader LineKind = "recommendation-section-header"
	SubHeader     LineKind = "recommendation-subheader"
	Detail        LineKind = "recommendation-detail"
	Item          LineKind = "recommendation-item"
)

var (
	separatorRe     = regexp.MustCompile(`^=+$`)
	sectionHeaderRe = regexp.MustCompile(`^[■▶◆✓⚠✗→]+[\s\p{Zs}]+[A-Z\s\p{Zs}&]+$`)
	subHeaderRe     = regexp.MustCompile(`^[\s\p{Zs}]*[◆▶→✓⚠]+[\s\p{Zs}]`)
	bulletDetailRe  = regexp.MustCompile(`^[\s\p{Zs}]{2,}•`)
	numberDetailRe  = regexp.MustCompile(`^[\s\p{Zs}]{2,}\d+\.`)
)

// Line is a recommendation line ready for display
type Line struct {
	Text string
	Kind LineKind
}

// ClassifyLine decides how a recommendation line is displayed. skip is true
// for blank lines and separator rules.
func ClassifyLine(line string) (l Line, skip bool) {
	if strings.TrimSpace(line) == "" || strings.Contains(line, "====") || separatorRe.MatchString(line) {
		return l, true
	}

	switch {
	case sectionHeaderRe.MatchString(line):
		return Line{Text: line, Kind: SectionHeader}, false
	case subHeaderRe.MatchString(line):
		return Line{Text: line, Kind: SubHeader}, false
	case bulletDetailRe.MatchString(line), numberDetailRe.MatchString(line):
		return Line{Text: strings.TrimSpace(line), Kind: Detail}, false
	default:
		return Line{Text: line, Kind: Item}, false
	}
}

// ClassifyLines classifies every line, dropping skipped ones
func ClassifyLines(lines []string) []Line {
	var out []Line
	for _, raw := range lines {
		if l, skip := ClassifyLine(raw); !skip {
			out = append(out, l)
		}
	}
	return out
}

// Status markers used by the backend in breakdown statuses
const (
	highMarker     = "🔴"
	moderateMarker = "🟡"
)

// StatusClass maps a breakdown status label to its style class
func StatusClass(status string) string {
	switch {
	case strings.Contains(status, highMarker):
		return "status-high"
	case strings.Contains(status, moderateMarker):
		return "status-moderate"
	default:
		return "status-good"
	}
}
