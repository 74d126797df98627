// Package goquery implements the DOM-backed analysis passes: the rule
// plugins, the content chunking engine, and the extractability mapper.
// Each pass parses its own copy of the document's raw HTML, so concurrent
// passes never share a mutable DOM.
package goquery

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/agentready"
)

// parse builds a goquery document from the raw HTML.
// goquery parses malformed markup best-effort, which is what we want:
// absence of expected elements is signal for rules, not an error.
func parse(doc *agentready.Document) (*goquery.Document, error) {
	page, err := goquery.NewDocumentFromReader(strings.NewReader(doc.RawHTML))
	if err != nil {
		return nil, agentready.Errorf(agentready.EINVALID, "parsing HTML: %v", err)
	}
	return page, nil
}

// checkFunc inspects a parsed page and returns issues. The rule's own
// metadata is passed in so checks can build issues from their defaults.
type checkFunc func(meta agentready.RuleMetadata, doc *agentready.Document, page *goquery.Document) []agentready.Issue

// Ensure rule implements agentready.Rule at compile time.
var _ agentready.Rule = (*rule)(nil)

// rule adapts a checkFunc into an agentready.Rule. Every rule parses its
// own DOM copy, keeping the shared Document strictly read-only.
type rule struct {
	meta agentready.RuleMetadata
	fn   checkFunc
}

func newRule(meta agentready.RuleMetadata, fn checkFunc) *rule {
	return &rule{meta: meta, fn: fn}
}

func (r *rule) Metadata() agentready.RuleMetadata {
	return r.meta
}

func (r *rule) Check(ctx context.Context, doc *agentready.Document) ([]agentready.Issue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	page, err := parse(doc)
	if err != nil {
		return nil, err
	}
	return r.fn(r.meta, doc, page), nil
}

// issue builds an Issue carrying the rule's metadata defaults. Callers
// adjust severity, location, evidence, or confidence on the result.
func issue(meta agentready.RuleMetadata, impact int, description, remediation string) agentready.Issue {
	return agentready.Issue{
		ID:          meta.ID,
		Title:       meta.Title,
		Category:    meta.Category,
		Severity:    meta.DefaultSeverity,
		Description: description,
		Remediation: remediation,
		ImpactScore: impact,
		Tags:        meta.Tags,
		Confidence:  1.0,
		CreatedAt:   time.Now().UTC(),
	}
}

// snippet returns a trimmed rendering of the selection's first node for
// use in issue locations.
func snippet(sel *goquery.Selection) string {
	html, err := goquery.OuterHtml(sel.First())
	if err != nil {
		return ""
	}
	html = strings.Join(strings.Fields(html), " ")
	if len(html) > 120 {
		html = html[:120] + "..."
	}
	return html
}

// visibleText returns the selection's text with whitespace collapsed.
func visibleText(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}
