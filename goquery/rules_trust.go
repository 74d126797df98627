package goquery

import (
	"fmt"
	"regexp"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/agentready"
)

// staleAfter is the age past which dated content is flagged as stale.
const staleAfter = 3 * 365 * 24 * time.Hour

// statClaimRe matches percentage claims, the kind of statement agents
// repeat verbatim and that most needs a source.
var statClaimRe = regexp.MustCompile(`\d+(\.\d+)?\s*(%|percent)`)

// trustRules checks provenance signals: authorship, dates, and whether
// quantitative claims point at a source. Pages without provenance are
// the ones agents repeat with the most confidence and the least basis.
func trustRules() []agentready.Rule {
	return []agentready.Rule{
		newRule(agentready.RuleMetadata{
			ID:              "missing-author",
			Title:           "Missing author attribution",
			Category:        agentready.CategoryHallucinationRisk,
			DefaultSeverity: agentready.SeverityMedium,
			Priority:        60,
			Tags:            []string{"provenance"},
			Description:     "No author is attributed anywhere on the page.",
		}, func(meta agentready.RuleMetadata, _ *agentready.Document, page *goquery.Document) []agentready.Issue {
			if content, ok := page.Find(`meta[name="author"]`).Attr("content"); ok && content != "" {
				return nil
			}
			if page.Find(`[rel="author"], [itemprop="author"], .author, .byline`).Length() > 0 {
				return nil
			}
			iss := issue(meta, 12,
				"No author attribution was found. Agents cannot weigh the content's credibility against its source.",
				`Attribute the content with a meta author tag, rel="author" link, or visible byline.`)
			return []agentready.Issue{iss}
		}),

		newRule(agentready.RuleMetadata{
			ID:              "missing-dates",
			Title:           "Missing publication dates",
			Category:        agentready.CategoryHallucinationRisk,
			DefaultSeverity: agentready.SeverityMedium,
			Priority:        58,
			Tags:            []string{"provenance"},
			Description:     "No machine-readable publication or modification date is present.",
		}, func(meta agentready.RuleMetadata, _ *agentready.Document, page *goquery.Document) []agentready.Issue {
			if publishedDate(page) != "" {
				return nil
			}
			iss := issue(meta, 12,
				"No machine-readable date was found. Agents cannot tell whether the content is current or years stale.",
				`Add a <time datetime> element or article:published_time meta tag.`)
			return []agentready.Issue{iss}
		}),

		newRule(agentready.RuleMetadata{
			ID:              "stale-content",
			Title:           "Stale content",
			Category:        agentready.CategoryHallucinationRisk,
			DefaultSeverity: agentready.SeverityLow,
			Priority:        38,
			Tags:            []string{"provenance"},
			Description:     "The page's most recent date is years old.",
		}, func(meta agentready.RuleMetadata, doc *agentready.Document, page *goquery.Document) []agentready.Issue {
			raw := publishedDate(page)
			if raw == "" {
				return nil // missing-dates covers the absence
			}
			published, err := parseDate(raw)
			if err != nil {
				return nil
			}
			now := doc.FetchedAt
			if now.IsZero() {
				now = time.Now().UTC()
			}
			if now.Sub(published) < staleAfter {
				return nil
			}
			iss := issue(meta, 8,
				fmt.Sprintf("The page's most recent date is %s, over three years old. Agents may present outdated facts as current.", published.Format("2006-01-02")),
				"Review the content and update the modification date, or mark the page as archived.")
			iss.Evidence = []string{raw}
			return []agentready.Issue{iss}
		}),

		newRule(agentready.RuleMetadata{
			ID:              "unsourced-claims",
			Title:           "Quantitative claims without sources",
			Category:        agentready.CategoryHallucinationRisk,
			DefaultSeverity: agentready.SeverityLow,
			Priority:        32,
			Tags:            []string{"citations"},
			Description:     "Paragraphs make percentage claims without linking to any source.",
		}, func(meta agentready.RuleMetadata, _ *agentready.Document, page *goquery.Document) []agentready.Issue {
			count := 0
			var samples []string
			page.Find("p").Each(func(_ int, s *goquery.Selection) {
				text := visibleText(s)
				if !statClaimRe.MatchString(text) {
					return
				}
				if s.Find("a[href], cite").Length() > 0 {
					return
				}
				count++
				if len(samples) < 3 {
					samples = append(samples, statClaimRe.FindString(text))
				}
			})
			if count < 2 {
				return nil
			}
			iss := issue(meta, 6,
				fmt.Sprintf("%d paragraph(s) make percentage claims with no link or citation nearby.", count),
				"Link each statistic to its source, or cite it inline.")
			iss.Evidence = samples
			// Heuristic text matching; the claims may be sourced elsewhere
			// on the page.
			iss.Confidence = 0.6
			return []agentready.Issue{iss}
		}),
	}
}

// publishedDate returns the first machine-readable date found on the
// page, preferring modification over publication times.
func publishedDate(page *goquery.Document) string {
	selectors := []string{
		`meta[property="article:modified_time"]`,
		`meta[property="article:published_time"]`,
		`meta[name="date"]`,
	}
	for _, sel := range selectors {
		if v, ok := page.Find(sel).Attr("content"); ok && v != "" {
			return v
		}
	}
	if v, ok := page.Find("time[datetime]").Attr("datetime"); ok && v != "" {
		return v
	}
	if v, ok := page.Find(`[itemprop="dateModified"], [itemprop="datePublished"]`).Attr("content"); ok && v != "" {
		return v
	}
	return ""
}

// parseDate accepts the date formats commonly found in page metadata.
func parseDate(raw string) (time.Time, error) {
	formats := []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02", "2006-01"}
	var lastErr error
	for _, format := range formats {
		t, err := time.Parse(format, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
