package dom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", ``, ``},
		{"text", `  hello   world  `, `hello world`},
		{"inline", "<p>Hello   <b>big</b>\n world</p>", `Hello big world`},
		{
			"paragraphs",
			`<div><p>Simple HTML DOM Parser</p><p>A lenient DOM parser</p></div>`,
			"Simple HTML DOM Parser\n\nA lenient DOM parser",
		},
		{"heading", `<h1>T</h1>x<p>y</p>z`, "T\n\nx\n\ny\n\nz"},
		{"list", `<ul><li>a</li><li>b</li></ul><p>c</p>`, "a\r\nb\n\nc"},
		{"br", `a<br>b<br/><br>c<br>`, "a\r\nb\r\n\r\nc"},
		{"leading_br", `<br>a`, "a"},
		{"hidden", `<div>x<script>y</script><style>z</style><!-- c -->w</div>`, "xw"},
		{"entities", `<p>a &amp; b &lt;c&gt; &nbsp;&copy;</p>`, "a & b <c> \u00a0©"},
		{"table", `<table><tr><td>a</td><td>b</td></tr><tr><td>c</td></tr></table>`, "a b\r\nc"},
		{"textarea", `<textarea>a  b</textarea>`, "a  b"},
		{"cdata", `x<![CDATA[ y ]]>z`, "x y z"},
		{"nested_blocks", `<div><div><p>a</p></div></div><div>b</div>`, "a\n\nb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Parse(tt.input, DefaultOptions()).PlainText())
		})
	}
}

func TestPlainTextPre(t *testing.T) {
	opts := DefaultOptions()
	opts.NormalizeLineEndings = false
	doc := Parse("<p>a\n  b</p><pre>  x\n  y</pre>", opts)
	require.Equal(t, "a b\n\n  x\n  y", doc.PlainText())
}

func TestPlainTextWith(t *testing.T) {
	opts := DefaultOptions()
	opts.BlockBreakText = "\n"
	opts.InlineBreakText = " / "
	doc := Parse(`<ol><li>a<li>b</ol>c<br>d`, opts)
	require.Equal(t, "a\nb\n\nc / d", doc.PlainTextWith(opts))
}

func TestPlainTextSubtree(t *testing.T) {
	doc := Parse(`<div><span>---> Simple HTML DOM Parser <--- A /lenient DOM parser</span></div>`, DefaultOptions())
	span := doc.FindIndex("span", 0)
	require.Equal(t, "---> Simple HTML DOM Parser <--- A /lenient DOM parser", span.PlainText())
	require.Equal(t, "x", NewText(" x ").PlainText())
}
