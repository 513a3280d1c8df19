package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	require.Equal(t, "OK Computer", CleanText("  OK   Computer\n"))
	require.Equal(t, "a b", CleanText("a\t\t b"))
}

func TestAnchors(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<div><a href="/albums/42">  Details </a><a>no href</a></div>`,
	))
	require.NoError(t, err)

	anchors := Anchors(doc.Find("a"))
	require.Len(t, anchors, 2)
	require.Equal(t, "Details", anchors[0].Name)
	require.Equal(t, "/albums/42", anchors[0].Href)
	require.Equal(t, "", anchors[1].Href)
}

func TestFirstAnchor(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<p>no links</p>`))
	require.NoError(t, err)

	_, ok := FirstAnchor(doc.Find("a"))
	require.False(t, ok)
}
