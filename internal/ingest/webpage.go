package ingest

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// maxPageChars bounds the working text sent downstream. The limit exists to
// stay under the extraction model's context window, not for correctness.
const maxPageChars = 15000

var tagPattern = regexp.MustCompile(`(?s)<script\b.*?</script>|<style\b.*?</style>|<[^>]+>`)

// fetchPage retrieves a URL and reduces it to plain text: noise elements
// removed, remaining tags stripped, whitespace collapsed, length capped.
func (s *Service) fetchPage(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse page: %w", err)
	}

	// Remove noise to save model tokens.
	doc.Find("script, style, nav, footer, iframe, noscript").Each(func(i int, sel *goquery.Selection) {
		sel.Remove()
	})

	text := doc.Find("body").Text()
	if strings.TrimSpace(text) == "" {
		// Some pages have no body element worth speaking of; fall back to
		// pattern stripping over the whole document.
		html, err := doc.Html()
		if err == nil {
			text = tagPattern.ReplaceAllString(html, " ")
		}
	}

	return truncateText(collapseWhitespace(text), maxPageChars), nil
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncateText cuts s at limit characters and appends an ellipsis marker so
// the model sees that the tail is missing.
func truncateText(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
