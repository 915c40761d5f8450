package window

import (
	"strings"
	"unicode"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/PixPMusic/gopher-mpd/internal/actions"
)

// tokenKind classifies a run of highlighted code
type tokenKind int

const (
	tokenPlain tokenKind = iota
	tokenKeyword
	tokenString
	tokenNumber
	tokenComment
)

type token struct {
	Text string
	Kind tokenKind
}

// language describes how one action type's code is tokenised
type language struct {
	keywords      []string
	commentPrefix string
}

var languages = map[actions.ActionType]language{
	actions.ActionTypeAppleScript: {
		keywords: []string{
			"end tell", "end if", "end repeat", "end try", "on error",
			"with timeout", "giving up after", "do shell script",
			"display dialog", "display notification",
			"tell", "if", "then", "else", "repeat", "set", "to", "get", "return",
			"on", "end", "try", "true", "false", "application", "property",
			"as", "of", "the",
		},
		commentPrefix: "--",
	},
	actions.ActionTypeShellCommand: {
		keywords: []string{
			"if", "then", "else", "elif", "fi", "for", "do", "done",
			"while", "until", "case", "esac", "function",
			"return", "exit", "break", "continue",
			"export", "local", "readonly", "declare",
			"echo", "read", "source", "eval", "true", "false", "in",
		},
		commentPrefix: "#",
	},
	actions.ActionTypeMidi: {
		keywords: []string{"true", "false", "null"},
	},
}

// SyntaxHighlighter renders action code as rich text
type SyntaxHighlighter struct{}

// NewSyntaxHighlighter creates a new syntax highlighter
func NewSyntaxHighlighter() *SyntaxHighlighter {
	return &SyntaxHighlighter{}
}

// HighlightCode returns a RichText widget with syntax-highlighted code
func (h *SyntaxHighlighter) HighlightCode(code string, actionType actions.ActionType) *widget.RichText {
	if code == "" {
		return widget.NewRichText(&widget.TextSegment{
			Text:  "(no code)",
			Style: widget.RichTextStyle{Inline: true, TextStyle: fyne.TextStyle{Italic: true}},
		})
	}

	toks := tokenize(code, actionType)
	segments := make([]widget.RichTextSegment, 0, len(toks))
	for _, t := range toks {
		segments = append(segments, &widget.TextSegment{Text: t.Text, Style: styleFor(t.Kind)})
	}
	return widget.NewRichText(segments...)
}

func styleFor(k tokenKind) widget.RichTextStyle {
	style := widget.RichTextStyle{Inline: true}
	switch k {
	case tokenKeyword:
		style.TextStyle = fyne.TextStyle{Bold: true}
		style.ColorName = theme.ColorNamePrimary
	case tokenString:
		style.ColorName = theme.ColorNameSuccess
	case tokenNumber:
		style.ColorName = theme.ColorNameWarning
	case tokenComment:
		style.TextStyle = fyne.TextStyle{Italic: true}
		style.ColorName = theme.ColorNameDisabled
	}
	return style
}

// tokenize splits code into highlighted runs. Adjacent plain text is merged.
func tokenize(code string, actionType actions.ActionType) []token {
	lang, known := languages[actionType]
	if !known {
		return []token{{Text: code}}
	}

	var out []token
	emit := func(text string, kind tokenKind) {
		if text == "" {
			return
		}
		if n := len(out); n > 0 && kind == tokenPlain && out[n-1].Kind == tokenPlain {
			out[n-1].Text += text
			return
		}
		out = append(out, token{Text: text, Kind: kind})
	}

	lines := strings.Split(code, "\n")
	for i, line := range lines {
		codePart, comment := splitComment(line, lang.commentPrefix)
		tokenizeCode(codePart, lang.keywords, emit)
		emit(comment, tokenComment)
		if i < len(lines)-1 {
			emit("\n", tokenPlain)
		}
	}
	return out
}

// splitComment cuts a line at the first comment prefix that is not inside
// an open quote.
func splitComment(line, prefix string) (code, comment string) {
	if prefix == "" {
		return line, ""
	}
	for from := 0; ; {
		i := strings.Index(line[from:], prefix)
		if i < 0 {
			return line, ""
		}
		at := from + i
		before := line[:at]
		single := strings.Count(before, "'") - strings.Count(before, `\'`)
		double := strings.Count(before, `"`) - strings.Count(before, `\"`)
		if single%2 == 0 && double%2 == 0 {
			return before, line[at:]
		}
		from = at + len(prefix)
	}
}

func tokenizeCode(code string, keywords []string, emit func(string, tokenKind)) {
	rest := code
	atBoundary := true
	for rest != "" {
		if q := rest[0]; q == '"' || q == '\'' {
			if end := findStringEnd(rest[1:], q); end >= 0 {
				emit(rest[:end+2], tokenString)
				rest = rest[end+2:]
				atBoundary = true
				continue
			}
		}

		if atBoundary {
			if kw := matchKeyword(rest, keywords); kw != "" {
				emit(rest[:len(kw)], tokenKeyword)
				rest = rest[len(kw):]
				continue
			}
			if n := numberPrefix(rest); n > 0 {
				emit(rest[:n], tokenNumber)
				rest = rest[n:]
				continue
			}
		}

		emit(rest[:1], tokenPlain)
		atBoundary = isBoundary(rest[0])
		rest = rest[1:]
	}
}

func matchKeyword(s string, keywords []string) string {
	for _, kw := range keywords {
		if len(s) < len(kw) || !strings.EqualFold(s[:len(kw)], kw) {
			continue
		}
		if len(s) == len(kw) || isBoundary(s[len(kw)]) {
			return kw
		}
	}
	return ""
}

func numberPrefix(s string) int {
	n := 0
	for n < len(s) && (unicode.IsDigit(rune(s[n])) || (n > 0 && s[n] == '.')) {
		n++
	}
	if n < len(s) && !isBoundary(s[n]) && s[n] != ':' {
		return 0
	}
	return n
}

func isBoundary(b byte) bool {
	return strings.IndexByte(" \t\n\r()[]{};,.:=|&<>", b) >= 0
}

// findStringEnd returns the index of the closing quote in s, or -1
func findStringEnd(s string, quote byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
			continue
		}
		if s[i] == quote {
			return i
		}
	}
	return -1
}
