package goquery_test

import (
	"context"
	"strings"
	"testing"

	"github.com/fwojciec/agentready"
	"github.com/fwojciec/agentready/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapDocument(t *testing.T, html string) *agentready.ExtractabilityMap {
	t.Helper()

	mapper := goquery.NewMapper(nil, 0)
	result, err := mapper.Map(context.Background(), &agentready.Document{
		URL:     "https://example.com/page",
		RawHTML: html,
	})
	require.NoError(t, err)
	return result
}

func TestMapper(t *testing.T) {
	t.Parallel()

	t.Run("classifies plain server-rendered content as easy", func(t *testing.T) {
		t.Parallel()

		result := mapDocument(t, `<html><body><main><h1>Title</h1><p>Visible text.</p></main></body></html>`)

		require.NotZero(t, result.TotalNodes)
		assert.Equal(t, result.TotalNodes, result.ExtractableNodes)
		assert.Equal(t, 100, result.ExtractabilityScore)
		assert.Equal(t, 100, result.ServerRenderedPercent)
		for _, node := range result.Nodes {
			assert.Equal(t, agentready.SourceServerRendered, node.Source)
			assert.Equal(t, agentready.ExtractEasy, node.Level)
		}
	})

	t.Run("empty document yields all zeros", func(t *testing.T) {
		t.Parallel()

		result := mapDocument(t, `<html><body></body></html>`)

		assert.Zero(t, result.TotalNodes)
		assert.Zero(t, result.ExtractabilityScore)
		assert.Zero(t, result.ServerRenderedPercent)
		assert.Empty(t, result.Issues)
	})

	t.Run("hidden ancestors propagate to descendants", func(t *testing.T) {
		t.Parallel()

		result := mapDocument(t, `<html><body><div style="display:none"><p>hidden text</p></div></body></html>`)

		require.NotEmpty(t, result.Nodes)
		for _, node := range result.Nodes {
			assert.True(t, node.Hidden)
			assert.Equal(t, agentready.SourceHidden, node.Source)
			// Hidden but present in markup: recoverable with effort.
			assert.Equal(t, agentready.ExtractModerate, node.Level)
		}
	})

	t.Run("majority hidden content raises a medium issue", func(t *testing.T) {
		t.Parallel()

		var sb strings.Builder
		sb.WriteString(`<html><body><p>visible one</p><p>visible two</p>`)
		for range [4]int{} {
			sb.WriteString(`<p hidden>hidden text</p>`)
		}
		sb.WriteString(`</body></html>`)

		result := mapDocument(t, sb.String())

		// 4 of 6 sampled nodes are hidden; the percentage rounds up.
		assert.Equal(t, 67, result.HiddenContentPercent)
		assert.Greater(t, result.HiddenContentPercent, 20)
		found := false
		for _, issue := range result.Issues {
			if issue.Title == "Significant hidden content" {
				found = true
				assert.Equal(t, agentready.SeverityMedium, issue.Severity)
			}
		}
		assert.True(t, found)
		assert.NotEmpty(t, result.Recommendations)
	})

	t.Run("interaction-gated content classifies as difficult", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div role="tab">Pricing</div><details><summary>More</summary><p>fine print</p></details></body></html>`
		result := mapDocument(t, html)

		difficult := 0
		for _, node := range result.Nodes {
			if node.Source == agentready.SourceInteractive {
				assert.Equal(t, agentready.ExtractDifficult, node.Level)
				difficult++
			}
		}
		assert.NotZero(t, difficult)
	})

	t.Run("custom elements classify as impossible shadow hosts", func(t *testing.T) {
		t.Parallel()

		result := mapDocument(t, `<html><body><my-widget>rendered elsewhere</my-widget></body></html>`)

		require.NotEmpty(t, result.Nodes)
		assert.Equal(t, agentready.SourceShadowDOM, result.Nodes[0].Source)
		assert.Equal(t, agentready.ExtractImpossible, result.Nodes[0].Level)
	})

	t.Run("an empty framework mount classifies as client-rendered", func(t *testing.T) {
		t.Parallel()

		result := mapDocument(t, `<html><body><div id="app" data-reactroot></div></body></html>`)

		require.Len(t, result.Nodes, 1)
		assert.Equal(t, agentready.SourceClientRendered, result.Nodes[0].Source)
		assert.Equal(t, agentready.ExtractModerate, result.Nodes[0].Level)
		assert.Zero(t, result.Nodes[0].TextLength)
		assert.Zero(t, result.ServerRenderedPercent)
	})

	t.Run("a client-rendered shell raises a server-rendering issue", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div id="root"></div><div role="dialog">Sign up</div><p hidden>tracking</p></body></html>`
		result := mapDocument(t, html)

		assert.Less(t, result.ServerRenderedPercent, 50)
		found := false
		for _, issue := range result.Issues {
			if issue.Title == "Majority of content is not server-rendered" {
				found = true
				assert.Equal(t, agentready.SeverityHigh, issue.Severity)
			}
		}
		assert.True(t, found)
	})

	t.Run("percentages stay within bounds", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>a</p><p hidden>b</p><div role="menu">c</div><my-el>d</my-el><img src="x.png"></body></html>`
		result := mapDocument(t, html)

		for name, v := range map[string]int{
			"score":       result.ExtractabilityScore,
			"server":      result.ServerRenderedPercent,
			"hidden":      result.HiddenContentPercent,
			"interactive": result.InteractiveContentPercent,
			"iframe":      result.IframeContentPercent,
		} {
			assert.GreaterOrEqual(t, v, 0, name)
			assert.LessOrEqual(t, v, 100, name)
		}
	})

	t.Run("node sample respects the cap", func(t *testing.T) {
		t.Parallel()

		var sb strings.Builder
		sb.WriteString(`<html><body>`)
		for range [50]int{} {
			sb.WriteString(`<p>text</p>`)
		}
		sb.WriteString(`</body></html>`)

		mapper := goquery.NewMapper(goquery.NewDefaultHeuristics(), 10)
		result, err := mapper.Map(context.Background(), &agentready.Document{
			URL:     "https://example.com/page",
			RawHTML: sb.String(),
		})
		require.NoError(t, err)
		assert.Len(t, result.Nodes, 10)
		assert.Equal(t, 10, result.TotalNodes)
	})

	t.Run("selectors are stable element paths", func(t *testing.T) {
		t.Parallel()

		result := mapDocument(t, `<html><body><main><p>one</p><p>two</p></main></body></html>`)

		require.Len(t, result.Nodes, 2)
		assert.Equal(t, "body > main:nth-child(1) > p:nth-child(1)", result.Nodes[0].Selector)
		assert.Equal(t, "body > main:nth-child(1) > p:nth-child(2)", result.Nodes[1].Selector)
	})

	t.Run("image alt text drives the image content-type percentage", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>text</p><img src="a.png" alt="Chart of results"><img src="b.png"></body></html>`
		result := mapDocument(t, html)

		assert.Equal(t, 50, result.ContentTypes.ImagePercent)
		assert.Equal(t, 100, result.ContentTypes.TextPercent)
	})
}
