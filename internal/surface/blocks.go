package surface

import (
	"html"
	"regexp"
	"strings"
)

var (
	blockPattern = regexp.MustCompile(`^<(p|h[1-6])>(.*)</(p|h[1-6])>$`)
	listPattern  = regexp.MustCompile(`^<(ul|ol)><li>(.*)</li></(ul|ol)>$`)
	itemPattern  = regexp.MustCompile(`^<li>(.*)</li>$`)
	codePattern  = regexp.MustCompile(`^<pre><code>(.*)</code></pre>$`)
	hrefPattern  = regexp.MustCompile(`^<a href="[^"]*">(.*)</a>$`)
)

// line is one block of the serialized document
type line struct {
	kind  string // p, h1..h6, ul, ol, li, pre or "" for unrecognized text
	inner string
}

func parseLine(s string) line {
	trimmed := strings.TrimSpace(s)
	if m := blockPattern.FindStringSubmatch(trimmed); m != nil && m[1] == m[3] {
		return line{kind: m[1], inner: m[2]}
	}
	if m := listPattern.FindStringSubmatch(trimmed); m != nil && m[1] == m[3] {
		return line{kind: m[1], inner: m[2]}
	}
	if m := itemPattern.FindStringSubmatch(trimmed); m != nil {
		return line{kind: "li", inner: m[1]}
	}
	if m := codePattern.FindStringSubmatch(trimmed); m != nil {
		return line{kind: "pre", inner: m[1]}
	}
	return line{inner: s}
}

func (l line) String() string {
	switch l.kind {
	case "":
		return l.inner
	case "ul", "ol":
		return "<" + l.kind + "><li>" + l.inner + "</li></" + l.kind + ">"
	case "li":
		return "<li>" + l.inner + "</li>"
	case "pre":
		return "<pre><code>" + l.inner + "</code></pre>"
	default:
		return "<" + l.kind + ">" + l.inner + "</" + l.kind + ">"
	}
}

func (l line) withKind(kind string) line {
	l.kind = kind
	return l
}

// toggleKind switches the block to kind, or back to a paragraph when it
// already is one
func (l line) toggleKind(kind string) line {
	if l.kind == kind {
		return l.withKind("p")
	}
	return l.withKind(kind)
}

// toggleMark wraps the inner text in tag, or unwraps it when the whole
// inner text is already wrapped
func (l line) toggleMark(tag string) line {
	open, close := "<"+tag+">", "</"+tag+">"
	if strings.HasPrefix(l.inner, open) && strings.HasSuffix(l.inner, close) &&
		len(l.inner) >= len(open)+len(close) {
		l.inner = l.inner[len(open) : len(l.inner)-len(close)]
		return l
	}
	l.inner = open + l.inner + close
	return l
}

func (l line) withLink(href string) line {
	text := l.inner
	if m := hrefPattern.FindStringSubmatch(text); m != nil {
		text = m[1]
	}
	l.inner = `<a href="` + html.EscapeString(href) + `">` + text + "</a>"
	return l
}

func (l line) hasMark(tag string) bool {
	return strings.Contains(l.inner, "<"+tag+">") || strings.Contains(l.inner, "<"+tag+" ")
}
