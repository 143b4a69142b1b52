package scorelayout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/scorelayout/config"
	"github.com/npillmayer/scorelayout/sym"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func textStyle() config.Style {
	st := config.Default()
	st.Font.CodePoints = "ascii"
	st.Font.SpacesPerEm = 4
	return st
}

func TestParseMusicFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scorelayout")
	defer teardown()
	//
	mf, err := ParseMusicFont(goregular.TTF, textStyle())
	require.NoError(t, err)
	assert.Empty(t, mf.Missing(), "Go Regular has all ASCII stand-ins")
	box := mf.Metrics.BBox(sym.SharpSym, 1)
	assert.False(t, box.Empty())

	tm, err := mf.TypesettingMetrics()
	require.NoError(t, err)
	other := tm.BBox(sym.SharpSym, 1)
	assert.InDelta(t, box.Dx(), other.Dx(), 0.05)
	assert.InDelta(t, box.Dy(), other.Dy(), 0.05)
}

func TestSMuFLGlyphsMissingInTextFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scorelayout")
	defer teardown()
	//
	mf, err := ParseMusicFont(goregular.TTF, config.Default())
	require.NoError(t, err)
	assert.Len(t, mf.Missing(), len(sym.All()))
}

func TestLoadMusicFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scorelayout")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "Go-Regular.ttf")
	require.NoError(t, os.WriteFile(path, goregular.TTF, 0o644))
	mf, err := LoadMusicFont(path, textStyle())
	require.NoError(t, err)
	assert.Equal(t, path, mf.Filepath)

	st := textStyle()
	st.Font.SpacesPerEm = 0
	_, err = LoadMusicFont(path, st)
	assert.Error(t, err)
}
