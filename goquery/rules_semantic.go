package goquery

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/agentready"
)

// semanticRules checks whether the markup exposes content through
// extractable structures: landmarks, alt text, table headers, and
// content that lives outside iframes and canvases.
func semanticRules() []agentready.Rule {
	return []agentready.Rule{
		newRule(agentready.RuleMetadata{
			ID:              "missing-main-landmark",
			Title:           "Missing main semantic container",
			Category:        agentready.CategoryExtraction,
			DefaultSeverity: agentready.SeverityHigh,
			Priority:        85,
			Tags:            []string{"landmarks", "semantics"},
			Description:     "No main, article, or role=main element marks where the primary content lives.",
		}, func(meta agentready.RuleMetadata, _ *agentready.Document, page *goquery.Document) []agentready.Issue {
			if page.Find(`main, article, [role="main"]`).Length() > 0 {
				return nil
			}
			iss := issue(meta, 20,
				"No <main>, <article>, or role=\"main\" element was found. Extractors must guess which part of the page is the primary content.",
				"Wrap the primary content in <main> or <article>.")
			return []agentready.Issue{iss}
		}),

		newRule(agentready.RuleMetadata{
			ID:              "image-missing-alt",
			Title:           "Images missing alt text",
			Category:        agentready.CategoryExtraction,
			DefaultSeverity: agentready.SeverityMedium,
			Priority:        70,
			Tags:            []string{"images", "accessibility"},
			Description:     "Images without alt attributes are invisible to text-only readers.",
		}, func(meta agentready.RuleMetadata, _ *agentready.Document, page *goquery.Document) []agentready.Issue {
			var missing []string
			page.Find("img").Each(func(_ int, s *goquery.Selection) {
				if _, ok := s.Attr("alt"); ok {
					return
				}
				if role, ok := s.Attr("role"); ok && role == "presentation" {
					return
				}
				missing = append(missing, snippet(s))
			})
			if len(missing) == 0 {
				return nil
			}
			iss := issue(meta, 15,
				fmt.Sprintf("%d image(s) have no alt attribute, so their information is lost to text-only readers.", len(missing)),
				`Add descriptive alt text, or alt="" for purely decorative images.`)
			if len(missing) > 5 {
				missing = missing[:5]
			}
			iss.Evidence = missing
			return []agentready.Issue{iss}
		}),

		newRule(agentready.RuleMetadata{
			ID:              "table-missing-headers",
			Title:           "Tables without header cells",
			Category:        agentready.CategoryExtraction,
			DefaultSeverity: agentready.SeverityMedium,
			Priority:        55,
			Tags:            []string{"tables"},
			Description:     "Data tables without <th> cells lose their column semantics when extracted.",
		}, func(meta agentready.RuleMetadata, _ *agentready.Document, page *goquery.Document) []agentready.Issue {
			count := 0
			page.Find("table").Each(func(_ int, s *goquery.Selection) {
				// One-row tables are usually layout scaffolding, not data.
				if s.Find("tr").Length() > 1 && s.Find("th").Length() == 0 {
					count++
				}
			})
			if count == 0 {
				return nil
			}
			iss := issue(meta, 10,
				fmt.Sprintf("%d data table(s) have no header cells; extracted rows lose their column meaning.", count),
				"Add <th> cells (or a <thead>) naming each column.")
			return []agentready.Issue{iss}
		}),

		newRule(agentready.RuleMetadata{
			ID:              "content-in-iframe",
			Title:           "Content embedded in iframes",
			Category:        agentready.CategoryExtraction,
			DefaultSeverity: agentready.SeverityHigh,
			Priority:        75,
			Tags:            []string{"iframes"},
			Description:     "Iframe content lives in a separate document that single-fetch readers never see.",
		}, func(meta agentready.RuleMetadata, _ *agentready.Document, page *goquery.Document) []agentready.Issue {
			var sources []string
			page.Find("iframe").Each(func(_ int, s *goquery.Selection) {
				if src, ok := s.Attr("src"); ok {
					sources = append(sources, src)
				} else {
					sources = append(sources, snippet(s))
				}
			})
			if len(sources) == 0 {
				return nil
			}
			iss := issue(meta, 18,
				fmt.Sprintf("Found %d iframe(s). Their content is a separate document that agents fetching this page will not see.", len(sources)),
				"Move essential content out of iframes, or provide an equivalent inline.")
			iss.Evidence = sources
			return []agentready.Issue{iss}
		}),

		newRule(agentready.RuleMetadata{
			ID:              "canvas-content",
			Title:           "Canvas elements without fallback",
			Category:        agentready.CategoryExtraction,
			DefaultSeverity: agentready.SeverityMedium,
			Priority:        45,
			Tags:            []string{"canvas"},
			Description:     "Canvas-rendered content is pixels, not text, unless a fallback is provided.",
		}, func(meta agentready.RuleMetadata, _ *agentready.Document, page *goquery.Document) []agentready.Issue {
			count := 0
			page.Find("canvas").Each(func(_ int, s *goquery.Selection) {
				if visibleText(s) == "" {
					count++
				}
			})
			if count == 0 {
				return nil
			}
			iss := issue(meta, 10,
				fmt.Sprintf("%d canvas element(s) have no fallback content; whatever they render is unreadable as text.", count),
				"Add fallback text inside each <canvas>, or render the data as markup alongside it.")
			return []agentready.Issue{iss}
		}),

		newRule(agentready.RuleMetadata{
			ID:              "svg-text-content",
			Title:           "Text locked inside inline SVG",
			Category:        agentready.CategoryExtraction,
			DefaultSeverity: agentready.SeverityLow,
			Priority:        40,
			Tags:            []string{"svg"},
			Description:     "Text rendered through SVG <text> elements sits outside the document flow.",
		}, func(meta agentready.RuleMetadata, _ *agentready.Document, page *goquery.Document) []agentready.Issue {
			var evidence []string
			page.Find("svg text").Each(func(_ int, s *goquery.Selection) {
				if text := strings.TrimSpace(s.Text()); text != "" && len(evidence) < 5 {
					evidence = append(evidence, text)
				}
			})
			if len(evidence) == 0 {
				return nil
			}
			iss := issue(meta, 6,
				fmt.Sprintf("%d SVG text element(s) carry content that extractors treat as graphics, not prose.", len(evidence)),
				"Repeat SVG-rendered text in regular markup, or add aria-label/<title> descriptions.")
			iss.Evidence = evidence
			return []agentready.Issue{iss}
		}),
	}
}
