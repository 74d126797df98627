package goquery_test

import (
	"strings"
	"testing"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/agentready/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// firstMatch parses the HTML and returns the first selection matching the
// selector.
func firstMatch(t *testing.T, html, selector string) *gq.Selection {
	t.Helper()

	page, err := gq.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	sel := page.Find(selector).First()
	require.Equal(t, 1, sel.Length(), "selector %q matched nothing", selector)
	return sel
}

func TestDefaultHeuristics_Hidden(t *testing.T) {
	t.Parallel()

	h := goquery.NewDefaultHeuristics()

	tests := []struct {
		name     string
		html     string
		selector string
		want     bool
	}{
		{"display none style", `<div style="display: none">x</div>`, "div", true},
		{"visibility hidden style", `<div style="visibility:hidden">x</div>`, "div", true},
		{"hidden attribute", `<div hidden>x</div>`, "div", true},
		{"aria-hidden true", `<span aria-hidden="true">x</span>`, "span", true},
		{"sr-only class", `<span class="sr-only">x</span>`, "span", true},
		{"hidden input", `<input type="hidden" name="token">`, "input", true},
		{"visible div", `<div class="content">x</div>`, "div", false},
		{"class containing hidden as substring", `<div class="unhidden-panel">x</div>`, "div", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, h.Hidden(firstMatch(t, tt.html, tt.selector)))
		})
	}
}

func TestDefaultHeuristics_Interactive(t *testing.T) {
	t.Parallel()

	h := goquery.NewDefaultHeuristics()

	tests := []struct {
		name     string
		html     string
		selector string
		want     bool
	}{
		{"tab role", `<div role="tab">Pricing</div>`, "div", true},
		{"closed details", `<details><summary>More</summary><p>x</p></details>`, "details", true},
		{"open details", `<details open><summary>More</summary><p>x</p></details>`, "details", false},
		{"collapsed aria-expanded", `<div aria-expanded="false">x</div>`, "div", true},
		{"onclick handler", `<div onclick="reveal()">x</div>`, "div", true},
		{"plain paragraph", `<p>x</p>`, "p", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, h.Interactive(firstMatch(t, tt.html, tt.selector)))
		})
	}
}

func TestDefaultHeuristics_ClientMount(t *testing.T) {
	t.Parallel()

	h := goquery.NewDefaultHeuristics()

	t.Run("empty root container", func(t *testing.T) {
		t.Parallel()
		assert.True(t, h.ClientMount(firstMatch(t, `<div id="root"></div>`, "div")))
	})

	t.Run("empty next.js container", func(t *testing.T) {
		t.Parallel()
		assert.True(t, h.ClientMount(firstMatch(t, `<div id="__next"></div>`, "div")))
	})

	t.Run("mount container with server-rendered text is not a shell", func(t *testing.T) {
		t.Parallel()
		assert.False(t, h.ClientMount(firstMatch(t, `<div id="root"><p>content</p></div>`, "div#root")))
	})

	t.Run("plain empty div", func(t *testing.T) {
		t.Parallel()
		assert.False(t, h.ClientMount(firstMatch(t, `<div class="spacer"></div>`, "div")))
	})
}

func TestDefaultHeuristics_ShadowHost(t *testing.T) {
	t.Parallel()

	h := goquery.NewDefaultHeuristics()

	t.Run("custom element tag", func(t *testing.T) {
		t.Parallel()
		assert.True(t, h.ShadowHost(firstMatch(t, `<my-widget>x</my-widget>`, "my-widget")))
	})

	t.Run("declarative shadow root template", func(t *testing.T) {
		t.Parallel()
		assert.True(t, h.ShadowHost(firstMatch(t, `<div><template shadowrootmode="open"><p>x</p></template></div>`, "template")))
	})

	t.Run("regular elements", func(t *testing.T) {
		t.Parallel()
		assert.False(t, h.ShadowHost(firstMatch(t, `<div>x</div>`, "div")))
	})
}
