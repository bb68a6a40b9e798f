package util

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

var markdownRenderer = goldmark.New(
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// markdownPolicy 只放行课程描述需要的标签，其余全部剥除防 XSS
// code/pre 保留 class 属性，高亮器靠 language-* class 识别语言
var markdownPolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"h1", "h2", "h3", "h4", "h5", "h6",
		"p", "ul", "ol", "li", "br", "hr",
		"strong", "em", "b", "i",
		"code", "pre", "blockquote", "a",
	)
	p.AllowAttrs("href", "title").OnElements("a")
	p.AllowAttrs("class").OnElements("code", "pre")
	p.AllowStandardURLs()
	return p
}()

// RenderMarkdown 把 Markdown 渲染成净化后的 HTML，支持 fenced code block
func RenderMarkdown(text string) (string, error) {
	if text == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := markdownRenderer.Convert([]byte(text), &buf); err != nil {
		return "", err
	}
	return markdownPolicy.Sanitize(buf.String()), nil
}
