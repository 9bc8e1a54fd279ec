package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractCPTCodes collects CPT codes from the intranet reference links inside
// a procedure description block. Codes are kept in encounter order and are
// not deduplicated. Links without the cpt query marker emit nothing.
func extractCPTCodes(desc *goquery.Selection) []string {
	var codes []string
	desc.Find("a.intranet").Each(func(i int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		if code, ok := cptFromHref(href); ok {
			codes = append(codes, code)
		}
	})
	return codes
}

// cptFromHref extracts the value of the cpt query parameter: the substring
// between "cpt=" and the next "&", or to the end of the string if there is
// none.
func cptFromHref(href string) (string, bool) {
	_, rest, found := strings.Cut(href, "cpt=")
	if !found {
		return "", false
	}
	code, _, _ := strings.Cut(rest, "&")
	return code, true
}

// anesthesiaType takes the text strictly between the last "(" and the
// following ")" as the anesthesia type, when the last "(" occurs before the
// last ")".
//
// This is a positional heuristic, not a grammar: a description that
// legitimately ends in unrelated parenthesized text (a dosage note, say)
// will be misread. The behavior is kept as-is for compatibility with the
// page's established conventions.
func anesthesiaType(desc string) string {
	open := strings.LastIndex(desc, "(")
	closing := strings.LastIndex(desc, ")")
	if open == -1 || closing == -1 || open >= closing {
		return ""
	}
	return strings.TrimSpace(desc[open+1 : closing])
}

// trimRotation strips the decorative parentheses the page wraps rotation
// names in.
func trimRotation(text string) string {
	return strings.Trim(strings.TrimSpace(text), "()")
}
