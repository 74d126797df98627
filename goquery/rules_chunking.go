package goquery

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/agentready"
	"golang.org/x/net/html"
)

const (
	// maxDOMDepth is the nesting depth past which selector-based
	// extraction becomes fragile.
	maxDOMDepth = 25

	// oversizedSectionChars is the per-section text length past which a
	// section no longer fits a typical retrieval window.
	oversizedSectionChars = 8000
)

// chunkingRules checks whether the page's structure supports splitting
// into bounded, self-contained pieces.
func chunkingRules() []agentready.Rule {
	return []agentready.Rule{
		newRule(agentready.RuleMetadata{
			ID:              "oversized-section",
			Title:           "Oversized content sections",
			Category:        agentready.CategoryChunking,
			DefaultSeverity: agentready.SeverityMedium,
			Priority:        62,
			Tags:            []string{"sections"},
			Description:     "A heading-delimited section is too large to fit a bounded retrieval window.",
		}, func(meta agentready.RuleMetadata, _ *agentready.Document, page *goquery.Document) []agentready.Issue {
			sizes := sectionSizes(page)
			count := 0
			largest := 0
			for _, n := range sizes {
				if n > oversizedSectionChars {
					count++
					if n > largest {
						largest = n
					}
				}
			}
			if count == 0 {
				return nil
			}
			iss := issue(meta, 14,
				fmt.Sprintf("%d section(s) exceed %d characters (largest: %d). Splitting them mid-section severs context from its heading.", count, oversizedSectionChars, largest),
				"Subdivide large sections with additional headings.")
			return []agentready.Issue{iss}
		}),

		newRule(agentready.RuleMetadata{
			ID:              "deep-nesting",
			Title:           "Deeply nested markup",
			Category:        agentready.CategoryChunking,
			DefaultSeverity: agentready.SeverityMedium,
			Priority:        44,
			Tags:            []string{"structure"},
			Description:     "Deep DOM nesting makes selector-addressed chunk boundaries fragile.",
		}, func(meta agentready.RuleMetadata, _ *agentready.Document, page *goquery.Document) []agentready.Issue {
			depth := 0
			for _, node := range page.Nodes {
				if d := elementDepth(node, 0); d > depth {
					depth = d
				}
			}
			if depth <= maxDOMDepth {
				return nil
			}
			iss := issue(meta, 10,
				fmt.Sprintf("The DOM nests %d levels deep; selectors addressing content at that depth break on minor markup changes.", depth),
				"Flatten wrapper elements that exist only for styling.")
			return []agentready.Issue{iss}
		}),
	}
}

// sectionSizes returns the visible-text length of each heading-delimited
// region of the body. A body with no headings is one section.
func sectionSizes(page *goquery.Document) []int {
	body := page.Find("body").Clone()
	body.Find("script, style, noscript").Remove()

	var sizes []int
	current := 0
	flush := func() {
		if current > 0 {
			sizes = append(sizes, current)
		}
		current = 0
	}

	var walk func(s *goquery.Selection)
	walk = func(s *goquery.Selection) {
		s.Children().Each(func(_ int, child *goquery.Selection) {
			switch goquery.NodeName(child) {
			case "h1", "h2", "h3", "h4", "h5", "h6":
				flush()
			case "div", "main", "article", "section", "body":
				walk(child)
				return
			}
			current += len(visibleText(child))
		})
	}
	walk(body)
	flush()
	return sizes
}

// elementDepth returns the maximum element-node depth under n.
func elementDepth(n *html.Node, depth int) int {
	max := depth
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if d := elementDepth(c, depth+1); d > max {
			max = d
		}
	}
	return max
}
