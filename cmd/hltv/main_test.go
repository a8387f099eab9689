package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func fixturePath(name string) string {
	return filepath.Join("..", "..", "internal", "converter", "testdata", name)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConvertMatchTable(t *testing.T) {
	out, err := execute(t, "convert", fixturePath("match_finished_bo3.html"))
	require.NoError(t, err)

	assert.Contains(t, out, "Astralis vs Vitality")
	assert.Contains(t, out, "BLAST Premier Global Final 2020")
	assert.Contains(t, out, "ZywOo")
	assert.Contains(t, out, "Overpass")
}

func TestConvertMatchYAML(t *testing.T) {
	out, err := execute(t, "convert", "-o", "yaml", fixturePath("match_finished_bo3.html"))
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 2346065, doc["id"])
	assert.Equal(t, "bo3", doc["format"])
	assert.Equal(t, "finished", doc["status"])
}

func TestConvertLists(t *testing.T) {
	out, err := execute(t, "convert", "--layout", "results", fixturePath("results.html"))
	require.NoError(t, err)
	assert.Contains(t, out, "*Sprout")
	assert.Contains(t, out, "skipped:")

	out, err = execute(t, "convert", "--layout", "upcoming", fixturePath("upcoming.html"))
	require.NoError(t, err)
	assert.Contains(t, out, "TBD vs TBD")

	out, err = execute(t, "convert", "--layout", "players", fixturePath("team_page.html"))
	require.NoError(t, err)
	assert.Contains(t, out, "gla1ve")
}

func TestConvertErrors(t *testing.T) {
	_, err := execute(t, "convert", "--layout", "team", fixturePath("results.html"))
	assert.ErrorContains(t, err, "structure not found")

	_, err = execute(t, "convert", "--layout", "bracket", fixturePath("results.html"))
	assert.ErrorContains(t, err, "unknown layout")

	_, err = execute(t, "convert", "-o", "json", fixturePath("results.html"))
	assert.ErrorContains(t, err, "--output")
}
