package htmltomarkdown_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/agentready"
	"github.com/fwojciec/agentready/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert("   ")

		require.Error(t, err)
		assert.Equal(t, agentready.EINVALID, agentready.ErrorCode(err))
	})

	t.Run("converts headings", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert("<h1>Title</h1><h2>Section</h2><p>Body text.</p>")

		require.NoError(t, err)
		assert.Contains(t, md, "# Title")
		assert.Contains(t, md, "## Section")
		assert.Contains(t, md, "Body text.")
	})

	t.Run("converts links", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<p>See the <a href="/docs">docs</a>.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "[docs](/docs)")
	})

	t.Run("converts code blocks with fences", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert("<pre><code>func main() {}\n</code></pre>")

		require.NoError(t, err)
		assert.Contains(t, md, "```")
		assert.Contains(t, md, "func main() {}")
	})

	t.Run("converts tables", func(t *testing.T) {
		t.Parallel()

		html := `<table>
<tr><th>Name</th><th>Value</th></tr>
<tr><td>alpha</td><td>1</td></tr>
</table>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		// Cells come back padded for alignment; compare with collapsed spaces.
		normalized := strings.Join(strings.Fields(md), " ")
		assert.Contains(t, normalized, "| Name | Value |")
		assert.Contains(t, normalized, "| alpha | 1 |")
	})

	t.Run("converts lists", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert("<ul><li>first</li><li>second</li></ul>")

		require.NoError(t, err)
		assert.Contains(t, md, "- first")
		assert.Contains(t, md, "- second")
	})

	t.Run("collapses runs of blank lines", func(t *testing.T) {
		t.Parallel()

		html := "<p>one</p><div></div><div></div><div></div><p>two</p>"

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.NotContains(t, md, "\n\n\n")
		assert.Contains(t, md, "one")
		assert.Contains(t, md, "two")
	})

	t.Run("blocks split cleanly on blank lines", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert("<h2>A</h2><p>First paragraph.</p><p>Second paragraph.</p>")

		require.NoError(t, err)
		blocks := strings.Split(strings.TrimSpace(md), "\n\n")
		assert.Len(t, blocks, 3)
	})
}
