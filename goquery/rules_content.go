package goquery

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/agentready"
)

const (
	// thinContentChars is the minimum body text length below which a page
	// is unlikely to answer any question on its own.
	thinContentChars = 300

	// minTextRatio is the minimum visible-text-to-markup ratio. Below it
	// the page is mostly scaffolding.
	minTextRatio = 0.10

	// wallOfTextChars flags paragraphs too long to quote or chunk cleanly.
	wallOfTextChars = 1200
)

// contentRules measures the substance of the page text itself rather
// than its markup structure.
func contentRules() []agentready.Rule {
	return []agentready.Rule{
		newRule(agentready.RuleMetadata{
			ID:              "thin-content",
			Title:           "Thin content",
			Category:        agentready.CategoryReadability,
			DefaultSeverity: agentready.SeverityHigh,
			Priority:        80,
			Tags:            []string{"content"},
			Description:     "The page carries too little text to answer a question on its own.",
		}, func(meta agentready.RuleMetadata, _ *agentready.Document, page *goquery.Document) []agentready.Issue {
			body := page.Find("body").Clone()
			body.Find("script, style, noscript").Remove()
			text := visibleText(body)
			if len(text) >= thinContentChars {
				return nil
			}
			iss := issue(meta, 20,
				fmt.Sprintf("The body contains only %d characters of visible text.", len(text)),
				"Expand the page with substantive content, or consolidate it into a page that has some.")
			return []agentready.Issue{iss}
		}),

		newRule(agentready.RuleMetadata{
			ID:              "low-text-ratio",
			Title:           "Low text-to-markup ratio",
			Category:        agentready.CategoryReadability,
			DefaultSeverity: agentready.SeverityMedium,
			Priority:        65,
			Tags:            []string{"content"},
			Description:     "Visible text is a small fraction of the document, burying signal under scaffolding.",
		}, func(meta agentready.RuleMetadata, doc *agentready.Document, page *goquery.Document) []agentready.Issue {
			if len(doc.RawHTML) == 0 {
				return nil
			}
			body := page.Find("body").Clone()
			body.Find("script, style, noscript").Remove()
			text := visibleText(body)

			// Skip near-empty pages: thin-content already covers them and a
			// ratio over a few hundred bytes is noise.
			if len(text) < thinContentChars {
				return nil
			}
			ratio := float64(len(text)) / float64(len(doc.RawHTML))
			if ratio >= minTextRatio {
				return nil
			}
			iss := issue(meta, 12,
				fmt.Sprintf("Visible text is %.1f%% of the document; the rest is markup, scripts, and styles.", ratio*100),
				"Trim inline scripts and styles, or move them to external files.")
			return []agentready.Issue{iss}
		}),

		newRule(agentready.RuleMetadata{
			ID:              "wall-of-text",
			Title:           "Overlong paragraphs",
			Category:        agentready.CategoryReadability,
			DefaultSeverity: agentready.SeverityMedium,
			Priority:        50,
			Tags:            []string{"content"},
			Description:     "Paragraphs too long to quote or summarize as a unit.",
		}, func(meta agentready.RuleMetadata, _ *agentready.Document, page *goquery.Document) []agentready.Issue {
			count := 0
			longest := 0
			page.Find("p").Each(func(_ int, s *goquery.Selection) {
				n := len(visibleText(s))
				if n > wallOfTextChars {
					count++
					if n > longest {
						longest = n
					}
				}
			})
			if count == 0 {
				return nil
			}
			iss := issue(meta, 10,
				fmt.Sprintf("%d paragraph(s) exceed %d characters (longest: %d). Agents quoting or summarizing them must split mid-thought.", count, wallOfTextChars, longest),
				"Break long paragraphs at topic boundaries.")
			return []agentready.Issue{iss}
		}),
	}
}
