package goquery

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/agentready"
)

// longDocumentChars is the body length above which a page is expected to
// carry more than one heading.
const longDocumentChars = 1500

// headingRules checks the page's heading hierarchy. Headings are the
// primary segmentation signal for bounded-context readers, so a broken
// hierarchy degrades both readability and chunking.
func headingRules() []agentready.Rule {
	return []agentready.Rule{
		newRule(agentready.RuleMetadata{
			ID:              "missing-h1",
			Title:           "Missing H1 heading",
			Category:        agentready.CategoryReadability,
			DefaultSeverity: agentready.SeverityHigh,
			Priority:        85,
			Tags:            []string{"headings"},
			Description:     "The page has no top-level heading announcing its main topic.",
		}, func(meta agentready.RuleMetadata, _ *agentready.Document, page *goquery.Document) []agentready.Issue {
			if page.Find("h1").Length() > 0 {
				return nil
			}
			iss := issue(meta, 15,
				"No <h1> element was found. Agents use the top-level heading to identify what the page is about.",
				"Add a single <h1> that states the page's main topic.")
			return []agentready.Issue{iss}
		}),

		newRule(agentready.RuleMetadata{
			ID:              "multiple-h1",
			Title:           "Multiple H1 headings",
			Category:        agentready.CategoryReadability,
			DefaultSeverity: agentready.SeverityLow,
			Priority:        60,
			Tags:            []string{"headings"},
			Description:     "More than one top-level heading competes for the page's main topic.",
		}, func(meta agentready.RuleMetadata, _ *agentready.Document, page *goquery.Document) []agentready.Issue {
			h1s := page.Find("h1")
			if h1s.Length() <= 1 {
				return nil
			}
			iss := issue(meta, 5,
				fmt.Sprintf("Found %d <h1> elements. Multiple top-level headings make the main topic ambiguous.", h1s.Length()),
				"Keep one <h1> and demote the others to <h2>.")
			h1s.Each(func(_ int, s *goquery.Selection) {
				iss.Evidence = append(iss.Evidence, visibleText(s))
			})
			return []agentready.Issue{iss}
		}),

		newRule(agentready.RuleMetadata{
			ID:              "heading-structure",
			Title:           "Poor heading structure",
			Category:        agentready.CategoryReadability,
			DefaultSeverity: agentready.SeverityMedium,
			Priority:        80,
			Tags:            []string{"headings", "structure"},
			Description:     "The heading hierarchy skips levels or is too sparse to segment the content.",
		}, func(meta agentready.RuleMetadata, _ *agentready.Document, page *goquery.Document) []agentready.Issue {
			levels := headingLevels(page)

			var problems []string
			prev := 0
			for _, level := range levels {
				if prev > 0 && level > prev+1 {
					problems = append(problems, fmt.Sprintf("h%d follows h%d", level, prev))
				}
				prev = level
			}

			bodyLen := len(visibleText(page.Find("body")))
			if bodyLen > longDocumentChars && len(levels) < 2 {
				problems = append(problems, fmt.Sprintf("%d characters of content under %d heading(s)", bodyLen, len(levels)))
			}

			if len(problems) == 0 {
				return nil
			}
			iss := issue(meta, 12,
				"The heading hierarchy does not segment the content into navigable sections: "+strings.Join(problems, "; ")+".",
				"Use a contiguous heading hierarchy so each section of substance sits under its own heading.")
			iss.Evidence = problems
			return []agentready.Issue{iss}
		}),

		newRule(agentready.RuleMetadata{
			ID:              "empty-heading",
			Title:           "Empty headings",
			Category:        agentready.CategoryReadability,
			DefaultSeverity: agentready.SeverityLow,
			Priority:        40,
			Tags:            []string{"headings"},
			Description:     "Headings without text convey no structure to a text-only reader.",
		}, func(meta agentready.RuleMetadata, _ *agentready.Document, page *goquery.Document) []agentready.Issue {
			var empty []string
			page.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
				if visibleText(s) == "" {
					empty = append(empty, goquery.NodeName(s))
				}
			})
			if len(empty) == 0 {
				return nil
			}
			iss := issue(meta, 5,
				fmt.Sprintf("Found %d heading element(s) with no text content.", len(empty)),
				"Remove empty headings or fill them with section titles.")
			iss.Evidence = empty
			return []agentready.Issue{iss}
		}),
	}
}

// headingLevels returns the numeric levels of all headings in document order.
func headingLevels(page *goquery.Document) []int {
	var levels []int
	page.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		level, err := strconv.Atoi(strings.TrimPrefix(goquery.NodeName(s), "h"))
		if err == nil {
			levels = append(levels, level)
		}
	})
	return levels
}
