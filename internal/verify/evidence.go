package verify

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/wzhuo/factgate/internal/model"
)

// AssembleEvidence builds the two views of an event's source articles used
// by the audit: an annotated ground-truth text with per-article outlet
// attribution (fed to the judgment capability, capped at maxRunes), and a
// plain concatenation (fed to the deterministic checks, uncapped).
func AssembleEvidence(ev *model.Event, maxRunes int) (annotated, plain string) {
	var annotatedSB, plainSB strings.Builder
	for _, art := range ev.Articles {
		text := VisibleText(art.Text)
		if strings.TrimSpace(text) == "" {
			continue
		}
		fmt.Fprintf(&annotatedSB, "【来源: %s】 %s\n", art.Outlet, text)
		plainSB.WriteString(text)
		plainSB.WriteString("\n")
	}

	annotated = annotatedSB.String()
	if maxRunes > 0 {
		if runes := []rune(annotated); len(runes) > maxRunes {
			annotated = string(runes[:maxRunes])
		}
	}
	return annotated, plainSB.String()
}

// VisibleText reduces article content to its visible text. Upstream
// gatherers sometimes hand over raw page markup instead of extracted
// prose; plain text passes through untouched.
func VisibleText(text string) string {
	if !strings.Contains(text, "<") {
		return text
	}

	doc, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return text
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			t := strings.TrimSpace(n.Data)
			if t != "" {
				buf.WriteString(t)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.TrimSpace(buf.String())
}
