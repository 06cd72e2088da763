package diario

import (
	"html"
	"regexp"
	"strings"
)

const chronicleLabel = "Ver crónica"

var (
	anchorRe    = regexp.MustCompile(`(?is)<a\s[^>]*href="([^"]+)"[^>]*>(.*?)</a>`)
	h1Re        = regexp.MustCompile(`(?is)<h1[^>]*>(.*?)</h1>`)
	h2Re        = regexp.MustCompile(`(?is)<h2[^>]*>(.*?)</h2>`)
	tagRe       = regexp.MustCompile(`(?s)<[^>]*>`)
	urlDateRe   = regexp.MustCompile(`/(\d{4})/(\d{2})/(\d{2})/`)
	contextSpan = 600
)

// chronicle is one "Ver crónica" link found on a matchday listing page,
// together with the listing-row text surrounding it.
type chronicle struct {
	URL     string
	Context string
}

// parseChronicles finds every chronicle link on a matchday page. The context
// is the visible text of the window of markup preceding the link, which on
// the listing page is the result row (team names and score).
func parseChronicles(page []byte, baseURL string) []chronicle {
	text := string(page)
	var out []chronicle
	for _, loc := range anchorRe.FindAllStringSubmatchIndex(text, -1) {
		label := text[loc[4]:loc[5]]
		if !strings.Contains(stripTags(label), chronicleLabel) {
			continue
		}
		href := text[loc[2]:loc[3]]
		start := loc[0] - contextSpan
		if start < 0 {
			start = 0
		}
		out = append(out, chronicle{
			URL:     absoluteURL(baseURL, href),
			Context: stripTags(text[start:loc[0]]),
		})
	}
	return out
}

// parseArticle pulls the headline and subheader out of an article page.
func parseArticle(page []byte) (headline, subheader string) {
	if m := h1Re.FindSubmatch(page); m != nil {
		headline = stripTags(string(m[1]))
	}
	if m := h2Re.FindSubmatch(page); m != nil {
		subheader = stripTags(string(m[1]))
	}
	return headline, subheader
}

// dateFromURL extracts the publication day encoded in an article path,
// e.g. /futbol/primera/2023/12/10/cronica/... -> 2023-12-10.
func dateFromURL(articleURL string) string {
	m := urlDateRe.FindStringSubmatch(articleURL)
	if m == nil {
		return ""
	}
	return m[1] + "-" + m[2] + "-" + m[3]
}

func stripTags(fragment string) string {
	plain := html.UnescapeString(tagRe.ReplaceAllString(fragment, " "))
	return strings.Join(strings.Fields(plain), " ")
}

func absoluteURL(baseURL, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return strings.TrimSuffix(baseURL, "/") + "/" + strings.TrimPrefix(href, "/")
}
