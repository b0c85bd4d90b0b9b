package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdown(t *testing.T) {
	html := RenderMarkdown("# Title\n\nsome **bold** text")
	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "<strong>bold</strong>")
}

func TestRenderMarkdown_SanitizesHTML(t *testing.T) {
	html := RenderMarkdown("hello <script>alert('x')</script> world")
	assert.NotContains(t, html, "<script")
	assert.Contains(t, html, "hello")
}

func TestRenderMarkdown_GFMTable(t *testing.T) {
	html := RenderMarkdown("| a | b |\n|---|---|\n| 1 | 2 |")
	assert.Contains(t, html, "<table")
}
