package converter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathID(t *testing.T) {
	tests := []struct {
		href string
		kind string
		want uint32
	}{
		{"/team/6665/astralis", "team", 6665},
		{"https://www.hltv.org/matches/2346065/astralis-vs-vitality", "matches", 2346065},
		{"/player/7398/dupreeh#stats", "player", 7398},
		{"/events/5206/blast?x=1", "events", 5206},
		{"/team/0", "team", 0},
	}

	for _, tt := range tests {
		got, err := pathID(tt.href, tt.kind)
		require.NoError(t, err, tt.href)
		assert.Equal(t, tt.want, got, tt.href)
	}
}

func TestPathIDFailures(t *testing.T) {
	for _, href := range []string{
		"/team/astralis/6665",
		"/team/-1/x",
		"/team/",
		"/player/7398/dupreeh",
		"/team/99999999999/x",
	} {
		_, err := pathID(href, "team")
		assert.True(t, errors.Is(err, ErrValueParse), "%s: %v", href, err)
	}
}

func TestLinkIDErrors(t *testing.T) {
	doc := parse(t, `<div class="box"><span>no link</span></div><div class="nohref"><a>x</a></div>`)

	_, err := linkID(doc.Root().Find("box"), "team", "team")
	assert.True(t, errors.Is(err, ErrStructureNotFound), err)

	_, err = linkID(doc.Root().Find("nohref"), "team", "team")
	assert.True(t, errors.Is(err, ErrAttributeMissing), err)
}
