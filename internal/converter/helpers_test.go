package converter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"hltv-parser/internal/dom"
)

func fixture(t *testing.T, name string) *dom.Document {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", name))
	require.NoError(t, err)
	defer f.Close()

	doc, err := dom.Parse(f)
	require.NoError(t, err)
	return doc
}

func parse(t *testing.T, html string) *dom.Document {
	t.Helper()
	doc, err := dom.ParseString(html)
	require.NoError(t, err)
	return doc
}
