package goquery

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/agentready"
)

// Title and meta-description length bounds. Outside these ranges search
// agents truncate or synthesize their own summary.
const (
	minTitleChars = 10
	maxTitleChars = 70
	minDescChars  = 50
	maxDescChars  = 160
)

// metaRules checks the document head: title, meta description, robots
// directives, canonical URL, Open Graph tags, and the lang attribute.
func metaRules() []agentready.Rule {
	return []agentready.Rule{
		newRule(agentready.RuleMetadata{
			ID:              "missing-title",
			Title:           "Missing page title",
			Category:        agentready.CategoryCrawlability,
			DefaultSeverity: agentready.SeverityHigh,
			Priority:        90,
			Tags:            []string{"metadata"},
			Description:     "The document has no <title> element.",
		}, func(meta agentready.RuleMetadata, _ *agentready.Document, page *goquery.Document) []agentready.Issue {
			if visibleText(page.Find("head title")) != "" {
				return nil
			}
			iss := issue(meta, 20,
				"The document has no <title>, or the title is empty. The title is the first signal an agent reads when deciding whether the page is relevant.",
				"Add a <title> that describes the page in under 70 characters.")
			return []agentready.Issue{iss}
		}),

		newRule(agentready.RuleMetadata{
			ID:              "title-length",
			Title:           "Title length out of range",
			Category:        agentready.CategoryCrawlability,
			DefaultSeverity: agentready.SeverityLow,
			Priority:        55,
			Tags:            []string{"metadata"},
			Description:     "The page title is too short to describe the page or too long to display untruncated.",
		}, func(meta agentready.RuleMetadata, _ *agentready.Document, page *goquery.Document) []agentready.Issue {
			title := visibleText(page.Find("head title"))
			if title == "" || (len(title) >= minTitleChars && len(title) <= maxTitleChars) {
				return nil
			}
			iss := issue(meta, 5,
				fmt.Sprintf("The title is %d characters long; aim for %d-%d.", len(title), minTitleChars, maxTitleChars),
				"Rewrite the title to describe the page in 10-70 characters.")
			iss.Evidence = []string{title}
			return []agentready.Issue{iss}
		}),

		newRule(agentready.RuleMetadata{
			ID:              "missing-meta-description",
			Title:           "Missing meta description",
			Category:        agentready.CategoryCrawlability,
			DefaultSeverity: agentready.SeverityMedium,
			Priority:        75,
			Tags:            []string{"metadata"},
			Description:     "No meta description summarizes the page for agents that read metadata before content.",
		}, func(meta agentready.RuleMetadata, _ *agentready.Document, page *goquery.Document) []agentready.Issue {
			if desc, ok := page.Find(`meta[name="description"]`).Attr("content"); ok && strings.TrimSpace(desc) != "" {
				return nil
			}
			iss := issue(meta, 15,
				"No meta description was found. Without one, agents must read the full content to learn what the page covers.",
				"Add a meta description summarizing the page in 50-160 characters.")
			return []agentready.Issue{iss}
		}),

		newRule(agentready.RuleMetadata{
			ID:              "meta-description-length",
			Title:           "Meta description length out of range",
			Category:        agentready.CategoryCrawlability,
			DefaultSeverity: agentready.SeverityLow,
			Priority:        50,
			Tags:            []string{"metadata"},
			Description:     "The meta description is too short to be useful or too long to display untruncated.",
		}, func(meta agentready.RuleMetadata, _ *agentready.Document, page *goquery.Document) []agentready.Issue {
			desc, ok := page.Find(`meta[name="description"]`).Attr("content")
			desc = strings.TrimSpace(desc)
			if !ok || desc == "" || (len(desc) >= minDescChars && len(desc) <= maxDescChars) {
				return nil
			}
			iss := issue(meta, 5,
				fmt.Sprintf("The meta description is %d characters long; aim for %d-%d.", len(desc), minDescChars, maxDescChars),
				"Rewrite the meta description to summarize the page in 50-160 characters.")
			return []agentready.Issue{iss}
		}),

		newRule(agentready.RuleMetadata{
			ID:              "robots-noindex",
			Title:           "Page blocks indexing",
			Category:        agentready.CategoryCrawlability,
			DefaultSeverity: agentready.SeverityCritical,
			Priority:        95,
			Tags:            []string{"robots"},
			Description:     "A robots meta directive tells agents not to index or follow this page.",
		}, func(meta agentready.RuleMetadata, _ *agentready.Document, page *goquery.Document) []agentready.Issue {
			var directives []string
			page.Find(`meta[name="robots"], meta[name="googlebot"]`).Each(func(_ int, s *goquery.Selection) {
				content, _ := s.Attr("content")
				lower := strings.ToLower(content)
				if strings.Contains(lower, "noindex") || strings.Contains(lower, "none") {
					directives = append(directives, content)
				}
			})
			if len(directives) == 0 {
				return nil
			}
			iss := issue(meta, 40,
				"A robots directive excludes this page from indexing, so most agents will never surface its content.",
				"Remove the noindex directive if the page is meant to be discoverable.")
			iss.Evidence = directives
			return []agentready.Issue{iss}
		}),

		newRule(agentready.RuleMetadata{
			ID:              "missing-canonical",
			Title:           "Missing canonical URL",
			Category:        agentready.CategoryCrawlability,
			DefaultSeverity: agentready.SeverityLow,
			Priority:        45,
			Tags:            []string{"metadata"},
			Description:     "No canonical link disambiguates this URL from duplicates.",
		}, func(meta agentready.RuleMetadata, _ *agentready.Document, page *goquery.Document) []agentready.Issue {
			if href, ok := page.Find(`link[rel="canonical"]`).Attr("href"); ok && strings.TrimSpace(href) != "" {
				return nil
			}
			iss := issue(meta, 8,
				"No canonical link was found. Duplicate URLs for the same content split an agent's signal across variants.",
				`Add <link rel="canonical"> pointing at the preferred URL.`)
			return []agentready.Issue{iss}
		}),

		newRule(agentready.RuleMetadata{
			ID:              "missing-open-graph",
			Title:           "Missing Open Graph metadata",
			Category:        agentready.CategoryCrawlability,
			DefaultSeverity: agentready.SeverityLow,
			Priority:        40,
			Tags:            []string{"metadata", "social"},
			Description:     "No Open Graph tags describe the page for link-preview consumers.",
		}, func(meta agentready.RuleMetadata, _ *agentready.Document, page *goquery.Document) []agentready.Issue {
			if page.Find(`meta[property^="og:"]`).Length() > 0 {
				return nil
			}
			iss := issue(meta, 8,
				"No Open Graph tags were found. Agents that build previews fall back to guessing a title and summary.",
				"Add og:title, og:description, and og:type meta tags.")
			return []agentready.Issue{iss}
		}),

		newRule(agentready.RuleMetadata{
			ID:              "missing-lang",
			Title:           "Missing language declaration",
			Category:        agentready.CategoryTechnical,
			DefaultSeverity: agentready.SeverityMedium,
			Priority:        65,
			Tags:            []string{"i18n"},
			Description:     "The root element does not declare the document language.",
		}, func(meta agentready.RuleMetadata, _ *agentready.Document, page *goquery.Document) []agentready.Issue {
			if lang, ok := page.Find("html").Attr("lang"); ok && strings.TrimSpace(lang) != "" {
				return nil
			}
			iss := issue(meta, 10,
				"The <html> element has no lang attribute, forcing agents to guess the content language.",
				`Add lang to the root element, e.g. <html lang="en">.`)
			return []agentready.Issue{iss}
		}),
	}
}
