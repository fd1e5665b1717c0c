package parser

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// TextParser handles wikitext-style plain text: "== Heading ==" lines open
// sections, and lines prefixed with ':', '*', '#' or ';' become indented
// list items. Blank lines separate paragraphs. Inline markup is not
// interpreted; text is escaped as is.
type TextParser struct{}

var wikiHeading = regexp.MustCompile(`^(={1,6})\s*(.+?)\s*(={1,6})\s*$`)

func (p *TextParser) Parse(r io.Reader, filename string) (*Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var out strings.Builder
	var paragraph []string
	prefix := ""

	flushParagraph := func() {
		if len(paragraph) > 0 {
			out.WriteString("<p>" + strings.Join(paragraph, "\n") + "</p>")
			paragraph = nil
		}
	}
	closeLists := func() {
		out.WriteString(listTransition(prefix, ""))
		prefix = ""
	}

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		switch {
		case strings.TrimSpace(line) == "":
			flushParagraph()
			closeLists()

		case wikiHeading.MatchString(line):
			flushParagraph()
			closeLists()
			m := wikiHeading.FindStringSubmatch(line)
			level := min(len(m[1]), len(m[3]))
			fmt.Fprintf(&out, "<h%d>%s</h%d>", level, html.EscapeString(m[2]), level)

		case strings.ContainsRune(":*#;", rune(line[0])):
			flushParagraph()
			next := listPrefix(line)
			out.WriteString(listTransition(prefix, next))
			out.WriteString(html.EscapeString(strings.TrimSpace(line[len(next):])))
			prefix = next

		default:
			closeLists()
			paragraph = append(paragraph, html.EscapeString(line))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flushParagraph()
	closeLists()

	doc, err := html.Parse(strings.NewReader(out.String()))
	if err != nil {
		return nil, fmt.Errorf("parse wikitext markup: %w", err)
	}
	Sectionize(doc)
	return &Document{Title: titleFromFilename(filename), Root: doc}, nil
}

func listPrefix(line string) string {
	i := 0
	for i < len(line) && strings.IndexByte(":*#;", line[i]) >= 0 {
		i++
	}
	return line[:i]
}

// listTransition returns the markup that moves from list nesting prev to
// next, where each prefix character is one level of nesting.
func listTransition(prev, next string) string {
	common := 0
	for common < len(prev) && common < len(next) && prev[common] == next[common] {
		common++
	}

	var sb strings.Builder
	for i := len(prev) - 1; i >= common; i-- {
		sb.WriteString(closeList(prev[i]))
	}
	if common > 0 && common == len(next) {
		// Same level: start a sibling item.
		sb.WriteString(closeItem(next[common-1]) + openItem(next[common-1]))
	}
	for i := common; i < len(next); i++ {
		sb.WriteString(openList(next[i]))
	}
	return sb.String()
}

func openList(c byte) string {
	switch c {
	case '*':
		return "<ul>" + openItem(c)
	case '#':
		return "<ol>" + openItem(c)
	default:
		return "<dl>" + openItem(c)
	}
}

func closeList(c byte) string {
	switch c {
	case '*':
		return closeItem(c) + "</ul>"
	case '#':
		return closeItem(c) + "</ol>"
	default:
		return closeItem(c) + "</dl>"
	}
}

func openItem(c byte) string {
	switch c {
	case '*', '#':
		return "<li>"
	case ';':
		return "<dt>"
	default:
		return "<dd>"
	}
}

func closeItem(c byte) string {
	switch c {
	case '*', '#':
		return "</li>"
	case ';':
		return "</dt>"
	default:
		return "</dd>"
	}
}
