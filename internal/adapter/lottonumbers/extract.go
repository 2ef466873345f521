package lottonumbers

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Extractor pulls candidate numbers out of one draw section
type Extractor func(doc *goquery.Document, s Section) []int

var (
	digitGroupPattern = regexp.MustCompile(`\b\d{1,2}\b`)
	starNumberPattern = regexp.MustCompile(`\*\s*(\d+)`)
)

// DefaultExtractors li -> span -> raw digit groups
var DefaultExtractors = []Extractor{
	ElementNumbers("li", 0, 99),
	ElementNumbers("span", 0, 99),
	RawDigitGroups,
}

// ElementNumbers integers in [min,max] from the text of every matched element
func ElementNumbers(selector string, min, max int) Extractor {
	return func(doc *goquery.Document, _ Section) []int {
		return numbersIn(doc.Find(selector), min, max)
	}
}

// RawDigitGroups 1-2 digit groups in the section text after the date
func RawDigitGroups(_ *goquery.Document, s Section) []int {
	text := s.AfterDateText()
	var out []int
	for _, m := range digitGroupPattern.FindAllString(text, -1) {
		n, err := strconv.Atoi(m)
		if err == nil {
			out = append(out, n)
		}
	}
	return out
}

// StarNumbers "* 12" markers in raw HTML (Canadian text layout)
func StarNumbers(_ *goquery.Document, s Section) []int {
	var out []int
	for _, m := range starNumberPattern.FindAllStringSubmatch(s.HTML, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil {
			out = append(out, n)
		}
	}
	return out
}

// FirstMatching runs extractors in order; the first returning at least want numbers wins
func FirstMatching(doc *goquery.Document, s Section, want int, extractors []Extractor) []int {
	for _, ex := range extractors {
		if nums := ex(doc, s); len(nums) >= want && len(nums) > 0 {
			return nums
		}
	}
	return nil
}

func numbersIn(sel *goquery.Selection, min, max int) []int {
	var out []int
	sel.Each(func(_ int, el *goquery.Selection) {
		n, ok := leadingInt(strings.TrimSpace(el.Text()))
		if ok && n >= min && n <= max {
			out = append(out, n)
		}
	})
	return out
}

// leadingInt parses the leading decimal digits of s ("12abc" -> 12)
func leadingInt(s string) (int, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
