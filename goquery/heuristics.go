package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Heuristics is the swappable detection strategy behind the extractability
// mapper and the content-type pass. Keeping it an interface lets the
// regex/class heuristics evolve and be tested independently of the
// traversal and aggregation logic.
type Heuristics interface {
	// Hidden reports whether the element is hidden from a non-interactive
	// reader via style, attribute, or class conventions.
	Hidden(sel *goquery.Selection) bool

	// Interactive reports whether the element requires user interaction
	// before its content becomes readable.
	Interactive(sel *goquery.Selection) bool

	// ClientMount reports whether the element is an empty container
	// carrying a known client-framework mount marker.
	ClientMount(sel *goquery.Selection) bool

	// ShadowHost reports whether the element looks like a shadow-DOM-style
	// component host.
	ShadowHost(sel *goquery.Selection) bool
}

// Ensure DefaultHeuristics implements Heuristics at compile time.
var _ Heuristics = (*DefaultHeuristics)(nil)

// DefaultHeuristics detects hidden, interactive, and framework-mounted
// content from markup conventions. Like framework detection, these checks
// key on the CSS classes, data attributes, and ARIA markers that specific
// toolchains leave behind.
type DefaultHeuristics struct{}

// NewDefaultHeuristics creates a new DefaultHeuristics.
func NewDefaultHeuristics() *DefaultHeuristics {
	return &DefaultHeuristics{}
}

var (
	hiddenStyleRe = regexp.MustCompile(`(?i)display\s*:\s*none|visibility\s*:\s*hidden|opacity\s*:\s*0(?:[;\s]|$)`)

	// Utility classes used by common CSS frameworks to hide elements.
	hiddenClasses = []string{"hidden", "hide", "d-none", "sr-only", "visually-hidden", "invisible", "collapse"}

	// ARIA roles whose content requires interaction to reveal.
	interactiveRoles = map[string]bool{
		"button": true, "tab": true, "menu": true, "menuitem": true,
		"dialog": true, "listbox": true, "combobox": true, "switch": true,
	}

	// Inline handler attributes that signal interaction-gated content.
	eventHandlerAttrs = []string{"onclick", "onmouseover", "onfocus", "ontoggle", "onmousedown"}

	// Container IDs used as client-framework mount points.
	mountIDs = map[string]bool{
		"app": true, "root": true, "__next": true, "___gatsby": true,
		"__nuxt": true, "svelte": true,
	}

	// Attributes left behind by client-framework bootstrapping.
	mountAttrs = []string{"data-reactroot", "data-react-helmet", "ng-app", "ng-version", "data-v-app", "data-server-rendered"}
)

// Hidden reports whether the element is hidden via inline style, the
// hidden/aria-hidden attributes, hiding utility classes, or an input of
// type hidden.
func (h *DefaultHeuristics) Hidden(sel *goquery.Selection) bool {
	if style, ok := sel.Attr("style"); ok && hiddenStyleRe.MatchString(style) {
		return true
	}
	if _, ok := sel.Attr("hidden"); ok {
		return true
	}
	if v, ok := sel.Attr("aria-hidden"); ok && v == "true" {
		return true
	}
	if t, ok := sel.Attr("type"); ok && goquery.NodeName(sel) == "input" && t == "hidden" {
		return true
	}
	if class, ok := sel.Attr("class"); ok {
		for _, name := range strings.Fields(class) {
			name = strings.ToLower(name)
			for _, hc := range hiddenClasses {
				if name == hc {
					return true
				}
			}
		}
	}
	return false
}

// Interactive reports whether reading the element's content requires user
// interaction: explicit interactive ARIA roles, collapsed disclosure
// widgets, or inline event handlers.
func (h *DefaultHeuristics) Interactive(sel *goquery.Selection) bool {
	if role, ok := sel.Attr("role"); ok && interactiveRoles[strings.ToLower(role)] {
		return true
	}

	// A <details> without the open attribute hides its content behind a
	// toggle; same for anything marked aria-expanded="false".
	if goquery.NodeName(sel) == "details" {
		if _, open := sel.Attr("open"); !open {
			return true
		}
	}
	if v, ok := sel.Attr("aria-expanded"); ok && v == "false" {
		return true
	}

	for _, attr := range eventHandlerAttrs {
		if _, ok := sel.Attr(attr); ok {
			return true
		}
	}
	return false
}

// ClientMount reports whether the element is an empty container bearing a
// known client-framework mount marker. Only empty containers qualify:
// a mount point that already carries server-rendered text is readable.
func (h *DefaultHeuristics) ClientMount(sel *goquery.Selection) bool {
	if strings.TrimSpace(sel.Text()) != "" {
		return false
	}

	if id, ok := sel.Attr("id"); ok && mountIDs[strings.ToLower(id)] {
		return true
	}
	for _, attr := range mountAttrs {
		if _, ok := sel.Attr(attr); ok {
			return true
		}
	}
	if class, ok := sel.Attr("class"); ok {
		lower := strings.ToLower(class)
		if strings.Contains(lower, "react-root") || strings.Contains(lower, "vue-app") {
			return true
		}
	}
	return false
}

// ShadowHost reports whether the element looks like a shadow-DOM-style
// component: a hyphenated custom-element tag or a declarative shadow root
// template.
func (h *DefaultHeuristics) ShadowHost(sel *goquery.Selection) bool {
	name := goquery.NodeName(sel)
	if strings.Contains(name, "-") && name != "#text" {
		return true
	}
	if name == "template" {
		if _, ok := sel.Attr("shadowrootmode"); ok {
			return true
		}
		if _, ok := sel.Attr("shadowroot"); ok {
			return true
		}
	}
	return false
}
