package goquery

import (
	"fmt"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/agentready"
)

// technicalRules checks document-level hygiene: doctype, charset,
// viewport, deprecated markup, and client-rendered shells that serve no
// content to a non-executing reader.
func technicalRules() []agentready.Rule {
	return []agentready.Rule{
		newRule(agentready.RuleMetadata{
			ID:              "client-rendered-shell",
			Title:           "Client-rendered application shell",
			Category:        agentready.CategoryTechnical,
			DefaultSeverity: agentready.SeverityCritical,
			Priority:        92,
			Tags:            []string{"javascript", "rendering"},
			Description:     "The served HTML is an empty shell that only renders content after JavaScript runs.",
		}, func(meta agentready.RuleMetadata, _ *agentready.Document, page *goquery.Document) []agentready.Issue {
			body := page.Find("body").Clone()
			body.Find("script, style, noscript").Remove()
			if len(visibleText(body)) >= thinContentChars {
				return nil
			}

			h := NewDefaultHeuristics()
			var mount string
			page.Find("body *").EachWithBreak(func(_ int, s *goquery.Selection) bool {
				if h.ClientMount(s) {
					mount = snippet(s)
					return false
				}
				return true
			})
			if mount == "" {
				return nil
			}
			iss := issue(meta, 35,
				"The body is a near-empty framework mount point. Agents that do not execute JavaScript receive no content at all.",
				"Server-render or pre-render the page so the initial HTML carries the content.")
			iss.Evidence = []string{mount}
			return []agentready.Issue{iss}
		}),

		newRule(agentready.RuleMetadata{
			ID:              "missing-charset",
			Title:           "Missing character encoding",
			Category:        agentready.CategoryTechnical,
			DefaultSeverity: agentready.SeverityMedium,
			Priority:        60,
			Tags:            []string{"encoding"},
			Description:     "No charset declaration; non-ASCII text may be decoded incorrectly.",
		}, func(meta agentready.RuleMetadata, _ *agentready.Document, page *goquery.Document) []agentready.Issue {
			if page.Find("meta[charset]").Length() > 0 {
				return nil
			}
			if content, ok := page.Find(`meta[http-equiv="Content-Type" i]`).Attr("content"); ok && strings.Contains(strings.ToLower(content), "charset") {
				return nil
			}
			iss := issue(meta, 8,
				"No charset declaration was found. Agents must sniff the encoding and may garble non-ASCII text.",
				`Add <meta charset="utf-8"> as the first element of <head>.`)
			return []agentready.Issue{iss}
		}),

		newRule(agentready.RuleMetadata{
			ID:              "missing-doctype",
			Title:           "Missing doctype",
			Category:        agentready.CategoryTechnical,
			DefaultSeverity: agentready.SeverityLow,
			Priority:        35,
			Tags:            []string{"markup"},
			Description:     "No doctype declaration; parsers fall back to quirks mode.",
		}, func(meta agentready.RuleMetadata, doc *agentready.Document, _ *goquery.Document) []agentready.Issue {
			if strings.HasPrefix(strings.ToLower(strings.TrimSpace(doc.RawHTML)), "<!doctype") {
				return nil
			}
			iss := issue(meta, 5,
				"The document does not start with a doctype, so parsers process it in quirks mode.",
				"Start the document with <!doctype html>.")
			return []agentready.Issue{iss}
		}),

		newRule(agentready.RuleMetadata{
			ID:              "missing-viewport",
			Title:           "Missing viewport declaration",
			Category:        agentready.CategoryTechnical,
			DefaultSeverity: agentready.SeverityLow,
			Priority:        30,
			Tags:            []string{"markup"},
			Description:     "No viewport meta tag; the page signals a desktop-only rendering model.",
		}, func(meta agentready.RuleMetadata, _ *agentready.Document, page *goquery.Document) []agentready.Issue {
			if page.Find(`meta[name="viewport"]`).Length() > 0 {
				return nil
			}
			iss := issue(meta, 6,
				"No viewport meta tag was found.",
				`Add <meta name="viewport" content="width=device-width, initial-scale=1">.`)
			return []agentready.Issue{iss}
		}),

		newRule(agentready.RuleMetadata{
			ID:              "deprecated-markup",
			Title:           "Deprecated presentational markup",
			Category:        agentready.CategoryTechnical,
			DefaultSeverity: agentready.SeverityLow,
			Priority:        25,
			Tags:            []string{"markup"},
			Description:     "Obsolete presentational elements carry no semantics for extractors.",
		}, func(meta agentready.RuleMetadata, _ *agentready.Document, page *goquery.Document) []agentready.Issue {
			counts := map[string]int{}
			page.Find("font, center, marquee, blink, big").Each(func(_ int, s *goquery.Selection) {
				counts[goquery.NodeName(s)]++
			})
			if len(counts) == 0 {
				return nil
			}
			var parts []string
			for tag, n := range counts {
				parts = append(parts, fmt.Sprintf("%s (%d)", tag, n))
			}
			sort.Strings(parts)
			iss := issue(meta, 6,
				"Found deprecated presentational elements: "+strings.Join(parts, ", ")+".",
				"Replace presentational elements with semantic markup and CSS.")
			return []agentready.Issue{iss}
		}),

		newRule(agentready.RuleMetadata{
			ID:              "inline-event-handlers",
			Title:           "Inline event handler attributes",
			Category:        agentready.CategoryTechnical,
			DefaultSeverity: agentready.SeverityLow,
			Priority:        22,
			Tags:            []string{"javascript", "markup"},
			Description:     "Behavior embedded in on* attributes signals interaction-gated content.",
		}, func(meta agentready.RuleMetadata, _ *agentready.Document, page *goquery.Document) []agentready.Issue {
			count := page.Find("[onclick], [onload], [onchange], [onsubmit], [onmouseover]").Length()
			if count == 0 {
				return nil
			}
			iss := issue(meta, 5,
				fmt.Sprintf("%d element(s) carry inline event handler attributes. Content behind them is invisible to non-executing readers.", count),
				"Move behavior into scripts and make the underlying content reachable without interaction.")
			return []agentready.Issue{iss}
		}),

		newRule(agentready.RuleMetadata{
			ID:              "noscript-only-content",
			Title:           "Content served only in noscript",
			Category:        agentready.CategoryTechnical,
			DefaultSeverity: agentready.SeverityMedium,
			Priority:        55,
			Tags:            []string{"javascript", "rendering"},
			Description:     "The noscript fallback carries more text than the visible body.",
		}, func(meta agentready.RuleMetadata, _ *agentready.Document, page *goquery.Document) []agentready.Issue {
			noscript := strings.TrimSpace(page.Find("noscript").Text())
			if len(noscript) < 100 {
				return nil
			}
			body := page.Find("body").Clone()
			body.Find("script, style, noscript").Remove()
			if len(visibleText(body)) >= len(noscript) {
				return nil
			}
			iss := issue(meta, 12,
				"More text lives inside <noscript> than in the rendered body. Most readers never see noscript content.",
				"Serve the real content in the body and keep <noscript> as a short fallback notice.")
			return []agentready.Issue{iss}
		}),
	}
}
