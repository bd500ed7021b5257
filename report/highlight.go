package report

import "regexp"

// Segment is a run of consecutive characters from a highlighted line.
// Concatenating the Text of all segments reproduces the input line exactly.
type Segment struct {
	Text  string `json:"text"`
	Match bool   `json:"match"`
}

// Highlight splits line into segments, marking every case-insensitive
// whole-word occurrence of keyword. The keyword is treated as literal text:
// regex metacharacters are escaped, and it never matches as a substring of
// a larger word. When the keyword does not occur, the result is a single
// non-matching segment equal to line.
func Highlight(line, keyword string) []Segment {
	if keyword == "" {
		return []Segment{{Text: line}}
	}

	re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(keyword) + `\b`)
	if err != nil {
		return []Segment{{Text: line}}
	}

	spans := re.FindAllStringIndex(line, -1)
	if len(spans) == 0 {
		return []Segment{{Text: line}}
	}

	segments := make([]Segment, 0, 2*len(spans)+1)
	prev := 0
	for _, span := range spans {
		if span[0] > prev {
			segments = append(segments, Segment{Text: line[prev:span[0]]})
		}
		segments = append(segments, Segment{Text: line[span[0]:span[1]], Match: true})
		prev = span[1]
	}
	if prev < len(line) {
		segments = append(segments, Segment{Text: line[prev:]})
	}
	return segments
}
