package goquery

import (
	"encoding/json"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/agentready"
)

// structuredRules checks machine-readable annotations: JSON-LD and
// microdata. Structured data is the one part of a page written for
// agents first.
func structuredRules() []agentready.Rule {
	return []agentready.Rule{
		newRule(agentready.RuleMetadata{
			ID:              "missing-structured-data",
			Title:           "Missing structured data",
			Category:        agentready.CategoryKnowledgeGraph,
			DefaultSeverity: agentready.SeverityMedium,
			Priority:        70,
			Tags:            []string{"json-ld", "schema.org"},
			Description:     "No JSON-LD or microdata annotations describe the page's entities.",
		}, func(meta agentready.RuleMetadata, _ *agentready.Document, page *goquery.Document) []agentready.Issue {
			if page.Find(`script[type="application/ld+json"]`).Length() > 0 {
				return nil
			}
			if page.Find("[itemscope]").Length() > 0 {
				return nil
			}
			iss := issue(meta, 15,
				"No JSON-LD or microdata was found. Agents must infer the page's entities and relationships from prose.",
				"Add a JSON-LD block describing the page with a schema.org type.")
			return []agentready.Issue{iss}
		}),

		newRule(agentready.RuleMetadata{
			ID:              "invalid-json-ld",
			Title:           "Invalid JSON-LD",
			Category:        agentready.CategoryKnowledgeGraph,
			DefaultSeverity: agentready.SeverityHigh,
			Priority:        72,
			Tags:            []string{"json-ld"},
			Description:     "A JSON-LD block fails to parse, so its annotations are silently dropped.",
		}, func(meta agentready.RuleMetadata, _ *agentready.Document, page *goquery.Document) []agentready.Issue {
			invalid := 0
			page.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
				if !json.Valid([]byte(s.Text())) {
					invalid++
				}
			})
			if invalid == 0 {
				return nil
			}
			iss := issue(meta, 18,
				fmt.Sprintf("%d JSON-LD block(s) are not valid JSON and will be ignored by consumers.", invalid),
				"Fix the JSON syntax; validate with a schema.org validator.")
			return []agentready.Issue{iss}
		}),

		newRule(agentready.RuleMetadata{
			ID:              "missing-schema-type",
			Title:           "Structured data without a type",
			Category:        agentready.CategoryKnowledgeGraph,
			DefaultSeverity: agentready.SeverityLow,
			Priority:        42,
			Tags:            []string{"json-ld", "schema.org"},
			Description:     "JSON-LD without @type gives consumers properties with no entity to hang them on.",
		}, func(meta agentready.RuleMetadata, _ *agentready.Document, page *goquery.Document) []agentready.Issue {
			untyped := 0
			page.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
				var payload map[string]any
				if err := json.Unmarshal([]byte(s.Text()), &payload); err != nil {
					return // invalid-json-ld covers parse failures
				}
				if _, ok := payload["@type"]; !ok {
					untyped++
				}
			})
			if untyped == 0 {
				return nil
			}
			iss := issue(meta, 6,
				fmt.Sprintf("%d JSON-LD block(s) declare no @type.", untyped),
				"Add a schema.org @type to every JSON-LD object.")
			return []agentready.Issue{iss}
		}),
	}
}
