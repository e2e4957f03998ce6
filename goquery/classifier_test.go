package goquery_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/fwojciec/showreel"
	"github.com/fwojciec/showreel/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projectLinks(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, `<a href="/work/project-%d">Project %d</a>`, i, i)
	}
	return b.String()
}

func TestClassifier_Classify(t *testing.T) {
	t.Parallel()

	c := goquery.NewClassifier()

	t.Run("project links with role info classify as project_with_credits", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>` + projectLinks(15) +
			`<p>Director: Ana Reyes</p><p>Producer: Ben Ochoa</p></body></html>`

		sig := c.Classify(html, "https://example.com/work")

		assert.Equal(t, showreel.LayoutProjectWithCredits, sig.Label)
		assert.Equal(t, 15, sig.ProjectLinks)
		assert.True(t, sig.HasRoleInfo)
		assert.Contains(t, sig.RolesDetected, "director")
		assert.Contains(t, sig.RolesDetected, "producer")
		assert.GreaterOrEqual(t, sig.Confidence, 0.7)
		assert.LessOrEqual(t, sig.Confidence, 0.95)
	})

	t.Run("project links without role info classify as basic_gallery", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>` + projectLinks(15) + `</body></html>`

		sig := c.Classify(html, "https://example.com/work")

		assert.Equal(t, showreel.LayoutBasicGallery, sig.Label)
		assert.False(t, sig.HasRoleInfo)
		assert.GreaterOrEqual(t, sig.Confidence, 0.5)
		assert.LessOrEqual(t, sig.Confidence, 0.7)
	})

	t.Run("company links classify as directory_style", func(t *testing.T) {
		t.Parallel()

		var b strings.Builder
		b.WriteString(`<html><body>`)
		for i := 0; i < 12; i++ {
			fmt.Fprintf(&b, `<a href="/company/%d">Studio %d</a>`, i, i)
		}
		b.WriteString(`</body></html>`)

		sig := c.Classify(b.String(), "https://example.com/companies")

		assert.Equal(t, showreel.LayoutDirectory, sig.Label)
		assert.Equal(t, 12, sig.CompanyLinks)
		assert.LessOrEqual(t, sig.Confidence, 0.6)
	})

	t.Run("a handful of company links still classify as directory_style", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<a href="/company/1">Stink Films</a>
			<a href="/company/2">Brandhouse</a>
			<a href="/company/3">String and Tins</a>
		</body></html>`

		sig := c.Classify(html, "https://example.com/companies")

		assert.Equal(t, showreel.LayoutDirectory, sig.Label)
		assert.Equal(t, 3, sig.CompanyLinks)
		assert.InDelta(t, 0.4, sig.Confidence, 0.001)
	})

	t.Run("next page link text counts as pagination", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>` + projectLinks(15) + `<a href="/work/archive">Next Page</a></body></html>`

		sig := c.Classify(html, "https://example.com/work")

		assert.True(t, sig.HasPagination)
	})

	t.Run("sparse page classifies as unknown", func(t *testing.T) {
		t.Parallel()

		sig := c.Classify(`<html><body><p>Hello</p></body></html>`, "https://example.com")

		assert.Equal(t, showreel.LayoutUnknown, sig.Label)
		assert.InDelta(t, 0.1, sig.Confidence, 0.001)
	})

	t.Run("empty markup classifies as unknown", func(t *testing.T) {
		t.Parallel()

		sig := c.Classify("", "https://example.com")

		require.NotNil(t, sig)
		assert.Equal(t, showreel.LayoutUnknown, sig.Label)
	})

	t.Run("richer signature never scores lower for the same label", func(t *testing.T) {
		t.Parallel()

		sparse := c.Classify(`<html><body>`+projectLinks(11)+
			`<p>Director: Ana</p></body></html>`, "https://example.com")
		rich := c.Classify(`<html><body><h2>Awards</h2>`+projectLinks(30)+
			`<p>Director: Ana</p><p>Producer: Ben</p><p>Editor: Cleo</p></body></html>`,
			"https://example.com")

		require.Equal(t, sparse.Label, rich.Label)
		assert.GreaterOrEqual(t, rich.Confidence, sparse.Confidence)
	})

	t.Run("detects pagination and max page", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<a href="/work?page=2">2</a>
			<a href="/work?page=7">7</a>
			<a href="/work?page=3">3</a>
		</body></html>`

		sig := c.Classify(html, "https://example.com/work")

		assert.True(t, sig.HasPagination)
		assert.Equal(t, 7, sig.MaxPage)
	})

	t.Run("rel next marks pagination without page numbers", func(t *testing.T) {
		t.Parallel()

		sig := c.Classify(`<html><body><a rel="next" href="/more">Next</a></body></html>`,
			"https://example.com")

		assert.True(t, sig.HasPagination)
		assert.Zero(t, sig.MaxPage)
	})

	t.Run("role keywords inside scripts are ignored", func(t *testing.T) {
		t.Parallel()

		sig := c.Classify(`<html><body><script>var director = "Ana";</script></body></html>`,
			"https://example.com")

		assert.False(t, sig.HasRoleInfo)
	})

	t.Run("detects grouping sections", func(t *testing.T) {
		t.Parallel()

		sig := c.Classify(`<html><body><h2>Collections</h2></body></html>`,
			"https://example.com")

		assert.True(t, sig.HasSections)
	})
}
