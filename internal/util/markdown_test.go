package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdownEmpty(t *testing.T) {
	out, err := RenderMarkdown("")
	assert.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestRenderMarkdownBasic(t *testing.T) {
	out, err := RenderMarkdown("# 标题\n\n一段 **加粗** 文本")
	assert.NoError(t, err)
	assert.Contains(t, out, "<h1>")
	assert.Contains(t, out, "<strong>")
}

func TestRenderMarkdownStripsScript(t *testing.T) {
	out, err := RenderMarkdown("hello <script>alert(1)</script> world")
	assert.NoError(t, err)
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "alert(1)")
}

func TestRenderMarkdownKeepsCodeClass(t *testing.T) {
	out, err := RenderMarkdown("```python\nprint('hi')\n```")
	assert.NoError(t, err)
	assert.Contains(t, out, "<pre>")
	assert.Contains(t, out, "language-python")
}
