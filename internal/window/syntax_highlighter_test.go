package window

import (
	"testing"

	"github.com/PixPMusic/gopher-mpd/internal/actions"
	"github.com/stretchr/testify/assert"
)

func kinds(toks []token) map[string]tokenKind {
	out := make(map[string]tokenKind, len(toks))
	for _, t := range toks {
		out[t.Text] = t.Kind
	}
	return out
}

func TestTokenizeShell(t *testing.T) {
	toks := tokenize(`if true; then echo "a # b" # done`, actions.ActionTypeShellCommand)
	k := kinds(toks)

	assert.Equal(t, tokenKeyword, k["if"])
	assert.Equal(t, tokenKeyword, k["echo"])
	assert.Equal(t, tokenString, k[`"a # b"`])
	assert.Equal(t, tokenComment, k["# done"])
}

func TestTokenizeKeepsKeywordsInsideWords(t *testing.T) {
	toks := tokenize("fifo", actions.ActionTypeShellCommand)
	assert.Equal(t, []token{{Text: "fifo", Kind: tokenPlain}}, toks)
}

func TestTokenizeAppleScript(t *testing.T) {
	toks := tokenize("tell application \"Music\" to play -- go\nend tell", actions.ActionTypeAppleScript)
	k := kinds(toks)

	assert.Equal(t, tokenKeyword, k["tell"])
	assert.Equal(t, tokenKeyword, k["application"])
	assert.Equal(t, tokenString, k[`"Music"`])
	assert.Equal(t, tokenComment, k["-- go"])
	assert.Equal(t, tokenKeyword, k["end tell"])
}

func TestTokenizeMidiJSON(t *testing.T) {
	toks := tokenize(`{"msg_type": "cc", "number": 7, "value": 100}`, actions.ActionTypeMidi)
	k := kinds(toks)

	assert.Equal(t, tokenString, k[`"msg_type"`])
	assert.Equal(t, tokenNumber, k["7"])
	assert.Equal(t, tokenNumber, k["100"])
}

func TestTokenizeUnknownTypeIsPlain(t *testing.T) {
	toks := tokenize("Intro Scene", actions.ActionTypeOBSScene)
	assert.Equal(t, []token{{Text: "Intro Scene"}}, toks)
}

func TestSplitComment(t *testing.T) {
	code, comment := splitComment(`echo "#1" # note`, "#")
	assert.Equal(t, `echo "#1" `, code)
	assert.Equal(t, "# note", comment)

	code, comment = splitComment(`echo "#open`, "#")
	assert.Equal(t, `echo "#open`, code)
	assert.Empty(t, comment)
}
