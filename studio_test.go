package gifanim

import (
	"bytes"
	stdgif "image/gif"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testScript = `
fill wall
color tree 2
cell 1 1 tree
frame
cell 2 2 tree
frame 25
`

var testColors = [][3]uint8{
	{0x00, 0x00, 0x00},
	{0xFF, 0xFF, 0xFF},
	{0x00, 0xFF, 0x00},
	{0xFF, 0x00, 0x00},
}

func testStudio(logger *log.Logger) *Studio {
	return New(testColors, Options{
		Width:       4,
		Height:      4,
		Transparent: -1,
	}, logger)
}

func TestStudioEncodeScript(t *testing.T) {
	dir, err := ioutil.TempDir("", "gifanim")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	src := filepath.Join(dir, "walk.anim")
	require.NoError(t, ioutil.WriteFile(src, []byte(testScript), 0644))

	dst := filepath.Join(dir, "walk.gif")
	require.NoError(t, testStudio(log.New(ioutil.Discard, "", 0)).EncodeScript(src, dst))

	out, err := ioutil.ReadFile(dst)
	require.NoError(t, err)

	g, err := stdgif.DecodeAll(bytes.NewReader(out))
	require.NoError(t, err)
	require.Len(t, g.Image, 3)

	assert.Equal(t, 4, g.Image[0].Bounds().Dx())
	assert.Equal(t, uint8(2), g.Image[1].ColorIndexAt(1, 1))
	assert.Equal(t, uint8(2), g.Image[2].ColorIndexAt(2, 2))
	assert.Equal(t, 25, g.Delay[2])
}

func TestStudioEncodeScriptBadScript(t *testing.T) {
	dir, err := ioutil.TempDir("", "gifanim")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	src := filepath.Join(dir, "bad.anim")
	require.NoError(t, ioutil.WriteFile(src, []byte("warp 0 0\n"), 0644))

	err = testStudio(log.New(ioutil.Discard, "", 0)).EncodeScript(src, filepath.Join(dir, "bad.gif"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown instruction")
}

func TestStudioEncodeAll(t *testing.T) {
	dir, err := ioutil.TempDir("", "gifanim")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0755))

	for _, name := range []string{"one.anim", filepath.Join("nested", "two.anim")} {
		require.NoError(t, ioutil.WriteFile(filepath.Join(dir, name), []byte(testScript), 0644))
	}
	// Hidden files and other extensions are left alone.
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, ".hidden.anim"), []byte(testScript), 0644))
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a script"), 0644))

	require.NoError(t, testStudio(log.New(ioutil.Discard, "", 0)).EncodeAll(dir))

	for _, name := range []string{"one.gif", filepath.Join("nested", "two.gif")} {
		out, err := ioutil.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, []byte("GIF89a"), out[:6])
		assert.Equal(t, byte(0x3B), out[len(out)-1])
	}

	_, err = os.Stat(filepath.Join(dir, ".hidden.gif"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "notes.gif"))
	assert.True(t, os.IsNotExist(err))
}
