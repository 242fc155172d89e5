package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"img2puz/internal/extract"
	"img2puz/internal/puz"
)

func TestWriteSample(t *testing.T) {
	dir := t.TempDir()

	res, err := writeSample(dir)
	require.NoError(t, err)
	assert.Equal(t, 5, res.Width)
	assert.Equal(t, 5, res.Height)
	assert.Equal(t, 6, res.ClueCount)

	data, err := os.ReadFile(filepath.Join(dir, "sample.puz"))
	require.NoError(t, err)
	assert.Equal(t, res.Puz, data)

	f, err := puz.Decode(data)
	require.NoError(t, err)
	require.NoError(t, f.Verify())
	assert.Equal(t, "Sample Title", f.TitleText())
	assert.Equal(t, "ABCDEF.G.HIJKLMN.O.PQRSTU", string(f.Solution))
	assert.Equal(t, []string{"First row", "First column", "Middle column", "Last column", "Middle row", "Last row"}, f.ClueTexts())

	// the written image converts back to the same grid
	img, err := os.ReadFile(filepath.Join(dir, "sample.png"))
	require.NoError(t, err)
	g, err := extract.Extract(img)
	require.NoError(t, err)
	assert.Equal(t, ".....\n.#.#.\n.....\n.#.#.\n.....\n", g.String())
}
