package agentready

import "context"

// ContentSource classifies where a DOM node's content comes from, in terms
// of what a non-interactive reader can reach.
type ContentSource string

// Content sources, in classification priority order.
const (
	SourceShadowDOM      ContentSource = "shadow-dom"
	SourceIframe         ContentSource = "iframe"
	SourceInteractive    ContentSource = "interactive"
	SourceHidden         ContentSource = "hidden"
	SourceClientRendered ContentSource = "client-rendered"
	SourceServerRendered ContentSource = "server-rendered"
	SourceUnknown        ContentSource = "unknown"
)

// ExtractabilityLevel is a four-valued classification of how recoverable a
// node's content is without interactive execution.
type ExtractabilityLevel string

// Extractability levels.
const (
	ExtractEasy       ExtractabilityLevel = "easy"
	ExtractModerate   ExtractabilityLevel = "moderate"
	ExtractDifficult  ExtractabilityLevel = "difficult"
	ExtractImpossible ExtractabilityLevel = "impossible"
)

// Extractable reports whether content at this level counts toward the
// aggregate extractability score (easy or moderate).
func (l ExtractabilityLevel) Extractable() bool {
	return l == ExtractEasy || l == ExtractModerate
}

// DeriveLevel applies the extractability decision table:
//
//	shadow-dom, or hidden with no text  -> impossible
//	interactive, or inside an iframe    -> difficult
//	client-rendered, or hidden w/ text  -> moderate
//	otherwise                           -> easy
func DeriveLevel(source ContentSource, textLength int) ExtractabilityLevel {
	switch {
	case source == SourceShadowDOM,
		source == SourceHidden && textLength == 0:
		return ExtractImpossible
	case source == SourceInteractive, source == SourceIframe:
		return ExtractDifficult
	case source == SourceClientRendered, source == SourceHidden:
		return ExtractModerate
	default:
		return ExtractEasy
	}
}

// ExtractableNode is one sampled content-bearing DOM node with its
// recoverability classification.
type ExtractableNode struct {
	Selector    string              `json:"selector"`
	Tag         string              `json:"tag"`
	Source      ContentSource       `json:"source"`
	Level       ExtractabilityLevel `json:"level"`
	TextLength  int                 `json:"textLength"`
	Hidden      bool                `json:"hidden"`
	Interactive bool                `json:"interactive"`
	Nested      bool                `json:"nested"`
	Attributes  map[string]string   `json:"attributes,omitempty"`
	ChildCount  int                 `json:"childCount"`
	Depth       int                 `json:"depth"`
}

// ExtractabilityIssue is one threshold-rule hit with its recommendation.
type ExtractabilityIssue struct {
	Severity       Severity `json:"severity"`
	Title          string   `json:"title"`
	Detail         string   `json:"detail,omitempty"`
	Recommendation string   `json:"recommendation"`
}

// ContentTypeExtractability reports per-content-type recoverability as
// independent percentages.
type ContentTypeExtractability struct {
	TextPercent       int `json:"textPercent"`
	ImagePercent      int `json:"imagePercent"`
	LinkPercent       int `json:"linkPercent"`
	StructuredPercent int `json:"structuredPercent"`
}

// ExtractabilityMap aggregates sampled nodes into summary counts, ratio
// scores, a ranked issue list, and recommendations.
type ExtractabilityMap struct {
	Nodes []ExtractableNode `json:"nodes"`

	TotalNodes       int `json:"totalNodes"`
	ExtractableNodes int `json:"extractableNodes"`

	ExtractabilityScore       int `json:"extractabilityScore"`
	ServerRenderedPercent     int `json:"serverRenderedPercent"`
	HiddenContentPercent      int `json:"hiddenContentPercent"`
	InteractiveContentPercent int `json:"interactiveContentPercent"`
	IframeContentPercent      int `json:"iframeContentPercent"`

	ContentTypes ContentTypeExtractability `json:"contentTypes"`

	Issues          []ExtractabilityIssue `json:"issues,omitempty"`
	Recommendations []string              `json:"recommendations,omitempty"`
}

// ExtractabilityMapper classifies a bounded sample of content-bearing DOM
// nodes by how recoverable their content is to a non-interactive reader.
type ExtractabilityMapper interface {
	Map(ctx context.Context, doc *Document) (*ExtractabilityMap, error)
}
