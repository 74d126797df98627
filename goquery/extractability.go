package goquery

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/agentready"
	"golang.org/x/net/html"
)

// DefaultMaxSampleNodes bounds the depth-first node sample so mapping
// stays O(1) on pathological documents.
const DefaultMaxSampleNodes = 500

// Threshold rules applied to the aggregated percentages.
const (
	hiddenContentThreshold      = 20
	interactiveContentThreshold = 30
	serverRenderedFloor         = 50
)

// Ensure Mapper implements agentready.ExtractabilityMapper at compile time.
var _ agentready.ExtractabilityMapper = (*Mapper)(nil)

// Mapper samples content-bearing DOM nodes depth-first and classifies
// each by where its content comes from: what a reader that does not
// execute scripts or interact with the page can actually recover.
type Mapper struct {
	heuristics Heuristics
	maxNodes   int
}

// NewMapper creates a Mapper. A nil heuristics falls back to the
// defaults; maxNodes <= 0 falls back to DefaultMaxSampleNodes.
func NewMapper(heuristics Heuristics, maxNodes int) *Mapper {
	if heuristics == nil {
		heuristics = NewDefaultHeuristics()
	}
	if maxNodes <= 0 {
		maxNodes = DefaultMaxSampleNodes
	}
	return &Mapper{heuristics: heuristics, maxNodes: maxNodes}
}

// Map implements agentready.ExtractabilityMapper.
func (m *Mapper) Map(ctx context.Context, doc *agentready.Document) (*agentready.ExtractabilityMap, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	page, err := parse(doc)
	if err != nil {
		return nil, err
	}

	result := &agentready.ExtractabilityMap{}
	body := page.Find("body")
	if body.Length() > 0 {
		walker := &nodeWalker{heuristics: m.heuristics, maxNodes: m.maxNodes}
		walker.walk(body, walkState{})
		result.Nodes = walker.nodes
	}

	m.aggregate(result)
	m.contentTypes(page, result)
	m.thresholds(result)
	return result, nil
}

// walkState carries inherited classification context down the tree.
type walkState struct {
	inIframe    bool
	hidden      bool
	interactive bool
	depth       int
	path        string
}

type nodeWalker struct {
	heuristics Heuristics
	maxNodes   int
	nodes      []agentready.ExtractableNode
}

// contentTags are element types that carry content even without text.
var contentTags = map[string]bool{
	"img": true, "iframe": true, "canvas": true, "video": true, "audio": true,
}

// skipTags never contribute readable content.
var skipTags = map[string]bool{
	"script": true, "style": true, "noscript": true, "head": true,
	"meta": true, "link": true, "br": true, "hr": true,
}

func (w *nodeWalker) walk(sel *goquery.Selection, state walkState) {
	sel.Children().Each(func(i int, child *goquery.Selection) {
		if len(w.nodes) >= w.maxNodes {
			return
		}
		tag := goquery.NodeName(child)
		if skipTags[tag] {
			return
		}

		childState := walkState{
			inIframe:    state.inIframe || tag == "iframe",
			hidden:      state.hidden || w.heuristics.Hidden(child),
			interactive: state.interactive || w.heuristics.Interactive(child),
			depth:       state.depth + 1,
			path:        childPath(state.path, tag, i),
		}

		if w.contentBearing(child, tag) {
			w.nodes = append(w.nodes, w.classify(child, tag, childState))
		}
		w.walk(child, childState)
	})
}

// contentBearing reports whether the element itself carries content: own
// text nodes, a media/embed tag, or an empty framework mount point whose
// content will only exist after scripts run.
func (w *nodeWalker) contentBearing(sel *goquery.Selection, tag string) bool {
	if contentTags[tag] {
		return true
	}
	if w.heuristics.ClientMount(sel) {
		return true
	}
	return ownText(sel) != ""
}

func (w *nodeWalker) classify(sel *goquery.Selection, tag string, state walkState) agentready.ExtractableNode {
	textLen := len(ownText(sel))

	// Priority order: the least recoverable applicable source wins.
	source := agentready.SourceServerRendered
	switch {
	case w.heuristics.ShadowHost(sel):
		source = agentready.SourceShadowDOM
	case state.inIframe:
		source = agentready.SourceIframe
	case state.interactive:
		source = agentready.SourceInteractive
	case state.hidden:
		source = agentready.SourceHidden
	case w.heuristics.ClientMount(sel):
		source = agentready.SourceClientRendered
	}

	node := agentready.ExtractableNode{
		Selector:    state.path,
		Tag:         tag,
		Source:      source,
		Level:       agentready.DeriveLevel(source, textLen),
		TextLength:  textLen,
		Hidden:      state.hidden,
		Interactive: state.interactive,
		Nested:      state.depth > 1,
		ChildCount:  sel.Children().Length(),
		Depth:       state.depth,
	}
	if id, ok := sel.Attr("id"); ok && id != "" {
		node.Attributes = map[string]string{"id": id}
	}
	return node
}

// aggregate fills the summary counts and percentages from the sample.
// An empty sample yields all zeros rather than dividing by zero.
func (m *Mapper) aggregate(result *agentready.ExtractabilityMap) {
	result.TotalNodes = len(result.Nodes)
	if result.TotalNodes == 0 {
		return
	}

	var extractable, server, hidden, interactive, iframe int
	for _, node := range result.Nodes {
		if node.Level.Extractable() {
			extractable++
		}
		switch node.Source {
		case agentready.SourceServerRendered:
			server++
		case agentready.SourceHidden:
			hidden++
		case agentready.SourceInteractive:
			interactive++
		case agentready.SourceIframe:
			iframe++
		}
	}

	percent := func(n int) int {
		return (n*100 + result.TotalNodes/2) / result.TotalNodes
	}
	result.ExtractableNodes = extractable
	result.ExtractabilityScore = percent(extractable)
	result.ServerRenderedPercent = percent(server)
	result.HiddenContentPercent = percent(hidden)
	result.InteractiveContentPercent = percent(interactive)
	result.IframeContentPercent = percent(iframe)
}

// contentTypes computes per-content-type recoverability over the whole
// page, independent of the node sample cap.
func (m *Mapper) contentTypes(page *goquery.Document, result *agentready.ExtractabilityMap) {
	body := page.Find("body")
	if body.Length() == 0 {
		return
	}

	ratio := func(total, reachable int) int {
		if total == 0 {
			return 100
		}
		return reachable * 100 / total
	}

	reachable := func(sel *goquery.Selection) bool {
		if w := m.heuristics; w.Hidden(sel) {
			return false
		}
		return sel.ParentsFiltered("iframe").Length() == 0
	}

	countReachable := func(selector string) (total, ok int) {
		body.Find(selector).Each(func(_ int, s *goquery.Selection) {
			total++
			if reachable(s) {
				ok++
			}
		})
		return total, ok
	}

	textTotal, textOK := countReachable("p, li, td, h1, h2, h3, h4, h5, h6, blockquote, pre")
	linkTotal, linkOK := countReachable("a[href]")

	imgTotal, imgOK := 0, 0
	body.Find("img").Each(func(_ int, s *goquery.Selection) {
		imgTotal++
		// An image is recoverable as text only through its alt attribute.
		if alt, has := s.Attr("alt"); has && strings.TrimSpace(alt) != "" && reachable(s) {
			imgOK++
		}
	})

	structTotal, structOK := 0, 0
	page.Find(`script[type="application/ld+json"], [itemscope]`).Each(func(_ int, s *goquery.Selection) {
		structTotal++
		structOK++
	})

	result.ContentTypes = agentready.ContentTypeExtractability{
		TextPercent:       ratio(textTotal, textOK),
		ImagePercent:      ratio(imgTotal, imgOK),
		LinkPercent:       ratio(linkTotal, linkOK),
		StructuredPercent: ratio(structTotal, structOK),
	}
}

// thresholds applies the aggregate threshold rules and derives the
// recommendation list.
func (m *Mapper) thresholds(result *agentready.ExtractabilityMap) {
	if result.TotalNodes == 0 {
		return
	}

	if result.HiddenContentPercent > hiddenContentThreshold {
		result.Issues = append(result.Issues, agentready.ExtractabilityIssue{
			Severity:       agentready.SeverityMedium,
			Title:          "Significant hidden content",
			Detail:         fmt.Sprintf("%d%% of sampled content is hidden from a non-interactive reader.", result.HiddenContentPercent),
			Recommendation: "Expose essential content by default instead of hiding it behind styles or attributes.",
		})
	}
	if result.InteractiveContentPercent > interactiveContentThreshold {
		result.Issues = append(result.Issues, agentready.ExtractabilityIssue{
			Severity:       agentready.SeverityHigh,
			Title:          "Content gated behind interaction",
			Detail:         fmt.Sprintf("%d%% of sampled content requires interaction to reveal.", result.InteractiveContentPercent),
			Recommendation: "Render tab panels, accordions, and disclosures expanded in the initial HTML.",
		})
	}
	if result.ServerRenderedPercent < serverRenderedFloor {
		result.Issues = append(result.Issues, agentready.ExtractabilityIssue{
			Severity:       agentready.SeverityHigh,
			Title:          "Majority of content is not server-rendered",
			Detail:         fmt.Sprintf("Only %d%% of sampled content arrives in the initial HTML.", result.ServerRenderedPercent),
			Recommendation: "Server-render or pre-render the primary content.",
		})
	}

	for _, issue := range result.Issues {
		result.Recommendations = append(result.Recommendations, issue.Recommendation)
	}
}

// ownText returns the element's direct text content, excluding
// descendants, with whitespace collapsed.
func ownText(sel *goquery.Selection) string {
	var sb strings.Builder
	for _, node := range sel.Nodes {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				sb.WriteString(c.Data)
			}
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

// childPath extends a CSS-ish selector path with a child element.
func childPath(parent, tag string, index int) string {
	segment := fmt.Sprintf("%s:nth-child(%d)", tag, index+1)
	if parent == "" {
		return "body > " + segment
	}
	return parent + " > " + segment
}
