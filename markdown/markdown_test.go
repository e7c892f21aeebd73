package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestConvertInline(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"**bold**", "<p><strong>bold</strong></p>\n"},
		{"*italic*", "<p><em>italic</em></p>\n"},
		{"use `fmt.Println` here", "<p>use <code>fmt.Println</code> here</p>\n"},
		{"`**not bold**`", "<p><code>**not bold**</code></p>\n"},
		{"~~gone~~", "<p><del>gone</del></p>\n"},
	}
	for _, tt := range tests {
		got, err := Convert(tt.input)
		if err != nil {
			t.Fatalf("Convert(%q) failed: %v", tt.input, err)
		}
		if got != tt.expected {
			t.Errorf("Convert(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestConvertLinkWithUnderscoresInURL(t *testing.T) {
	got, err := Convert("[Wikipedia](https://en.wikipedia.org/wiki/Some_Article_Title)")
	if err != nil {
		t.Fatal(err)
	}
	want := `<a href="https://en.wikipedia.org/wiki/Some_Article_Title">Wikipedia</a>`
	if !strings.Contains(got, want) {
		t.Errorf("Convert link = %q, want it to contain %q", got, want)
	}
}

func TestConvertHeadingsGetIDs(t *testing.T) {
	got, err := Convert("## Getting Started")
	if err != nil {
		t.Fatal(err)
	}
	if got != "<h2 id=\"getting-started\">Getting Started</h2>\n" {
		t.Errorf("Convert heading = %q", got)
	}
}

func TestConvertCodeBlockWithLanguage(t *testing.T) {
	got, err := Convert("```go\nfmt.Println(\"<hello>\")\n```")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, `<code class="language-go">`) {
		t.Errorf("code block should have language-go class: %q", got)
	}
	if !strings.Contains(got, `<span class="code-lang code-lang-go">go</span>`) {
		t.Errorf("code block should have language badge: %q", got)
	}
	if !strings.Contains(got, `<div class="code-block-wrapper">`) || !strings.Contains(got, "</div>") {
		t.Errorf("code block should be wrapped in div: %q", got)
	}
	if !strings.Contains(got, "fmt.Println(&#34;&lt;hello&gt;&#34;)") {
		t.Errorf("code should be escaped: %q", got)
	}
}

func TestConvertCodeBlockWithoutLanguage(t *testing.T) {
	got, err := Convert("```\nplain code\n```")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got, "code-lang") || strings.Contains(got, "code-block-wrapper") {
		t.Errorf("code block without language should not have badge: %q", got)
	}
	if !strings.Contains(got, "<pre class=\"code-block\"><code>plain code\n</code></pre>") {
		t.Errorf("unexpected code block: %q", got)
	}
}

func TestConvertTable(t *testing.T) {
	got, err := Convert("| a | b |\n|---|---|\n| 1 | 2 |")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"<table>", "<th>a</th>", "<td>2</td>"} {
		if !strings.Contains(got, want) {
			t.Errorf("table output %q missing %q", got, want)
		}
	}
}

func TestConvertFootnote(t *testing.T) {
	got, err := Convert("Claim.[^1]\n\n[^1]: Source.")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, `class="footnotes"`) {
		t.Errorf("expected footnotes section: %q", got)
	}
}

func TestMarkdownComponent(t *testing.T) {
	var buf bytes.Buffer
	if err := Markdown("- item 1\n- item 2").Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "<ul>\n<li>item 1</li>\n<li>item 2</li>\n</ul>\n" {
		t.Errorf("Markdown component = %q", got)
	}
}

func TestHTMLComponentWritesVerbatim(t *testing.T) {
	var buf bytes.Buffer
	if err := HTML("<p>x</p>").Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "<p>x</p>" {
		t.Errorf("HTML component = %q", buf.String())
	}
}

func TestSafeURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"https://example.com", "https://example.com"},
		{"/local/path", "/local/path"},
		{"#anchor", "#anchor"},
		{"mailto:a@b.c", "mailto:a@b.c"},
		{"javascript:alert(1)", ""},
		{"relative/path", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SafeURL(tt.input); got != tt.expected {
			t.Errorf("SafeURL(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
