package goquery

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/agentready"
)

// genericLinkTexts are link labels that say nothing about the target.
var genericLinkTexts = map[string]bool{
	"click here": true, "here": true, "read more": true, "more": true,
	"learn more": true, "link": true, "this": true,
}

// accessRules checks accessibility conventions that double as machine
// readability: labeled inputs, descriptive links, and sane focus order.
func accessRules() []agentready.Rule {
	return []agentready.Rule{
		newRule(agentready.RuleMetadata{
			ID:              "input-missing-label",
			Title:           "Form inputs without labels",
			Category:        agentready.CategoryAccessibility,
			DefaultSeverity: agentready.SeverityMedium,
			Priority:        55,
			Tags:            []string{"forms"},
			Description:     "Inputs without an associated label have no machine-readable purpose.",
		}, func(meta agentready.RuleMetadata, _ *agentready.Document, page *goquery.Document) []agentready.Issue {
			count := 0
			page.Find("input, select, textarea").Each(func(_ int, s *goquery.Selection) {
				if t, _ := s.Attr("type"); t == "hidden" || t == "submit" || t == "button" {
					return
				}
				if _, ok := s.Attr("aria-label"); ok {
					return
				}
				if _, ok := s.Attr("aria-labelledby"); ok {
					return
				}
				if id, ok := s.Attr("id"); ok && page.Find(`label[for="`+id+`"]`).Length() > 0 {
					return
				}
				if s.ParentsFiltered("label").Length() > 0 {
					return
				}
				count++
			})
			if count == 0 {
				return nil
			}
			iss := issue(meta, 10,
				fmt.Sprintf("%d form control(s) have no associated label, so their purpose is not machine-readable.", count),
				"Associate each control with a <label>, or add aria-label.")
			return []agentready.Issue{iss}
		}),

		newRule(agentready.RuleMetadata{
			ID:              "generic-link-text",
			Title:           "Generic link text",
			Category:        agentready.CategoryAccessibility,
			DefaultSeverity: agentready.SeverityLow,
			Priority:        35,
			Tags:            []string{"links"},
			Description:     "Links labeled \"click here\" or similar say nothing about their target.",
		}, func(meta agentready.RuleMetadata, _ *agentready.Document, page *goquery.Document) []agentready.Issue {
			var texts []string
			page.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
				text := strings.ToLower(visibleText(s))
				if genericLinkTexts[text] {
					texts = append(texts, text)
				}
			})
			if len(texts) == 0 {
				return nil
			}
			iss := issue(meta, 6,
				fmt.Sprintf("%d link(s) use generic text that does not describe the target.", len(texts)),
				"Rewrite link text to name the destination or action.")
			iss.Evidence = texts
			return []agentready.Issue{iss}
		}),

		newRule(agentready.RuleMetadata{
			ID:              "empty-link",
			Title:           "Links and buttons without text",
			Category:        agentready.CategoryAccessibility,
			DefaultSeverity: agentready.SeverityMedium,
			Priority:        50,
			Tags:            []string{"links"},
			Description:     "Links or buttons with no accessible text are unidentifiable actions.",
		}, func(meta agentready.RuleMetadata, _ *agentready.Document, page *goquery.Document) []agentready.Issue {
			count := 0
			page.Find("a[href], button").Each(func(_ int, s *goquery.Selection) {
				if visibleText(s) != "" {
					return
				}
				if v, ok := s.Attr("aria-label"); ok && strings.TrimSpace(v) != "" {
					return
				}
				if alt, ok := s.Find("img").Attr("alt"); ok && strings.TrimSpace(alt) != "" {
					return
				}
				count++
			})
			if count == 0 {
				return nil
			}
			iss := issue(meta, 8,
				fmt.Sprintf("%d link(s) or button(s) have no accessible text.", count),
				"Add visible text or aria-label to every link and button.")
			return []agentready.Issue{iss}
		}),

		newRule(agentready.RuleMetadata{
			ID:              "positive-tabindex",
			Title:           "Positive tabindex values",
			Category:        agentready.CategoryAccessibility,
			DefaultSeverity: agentready.SeverityLow,
			Priority:        20,
			Tags:            []string{"focus"},
			Description:     "Positive tabindex values override document order and confuse sequential readers.",
		}, func(meta agentready.RuleMetadata, _ *agentready.Document, page *goquery.Document) []agentready.Issue {
			count := 0
			page.Find("[tabindex]").Each(func(_ int, s *goquery.Selection) {
				v, _ := s.Attr("tabindex")
				if v != "" && v != "0" && v != "-1" && !strings.HasPrefix(v, "-") {
					count++
				}
			})
			if count == 0 {
				return nil
			}
			iss := issue(meta, 4,
				fmt.Sprintf("%d element(s) use a positive tabindex, overriding the document's natural order.", count),
				"Use tabindex 0 or restructure the markup so document order is the right order.")
			return []agentready.Issue{iss}
		}),
	}
}
