package license

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projvar/cli/internal/testutil"
)

const mitText = `MIT License

Copyright (c) 2021 Someone

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
`

func TestIsSPDX(t *testing.T) {
	assert.True(t, IsSPDX("GPL-3.0-or-later"))
	assert.True(t, IsSPDX("MIT"))
	assert.True(t, IsSPDX("MIT-0"))
	assert.True(t, IsSPDX("LGPL-2.0-only"))
	assert.True(t, IsSPDX("Apache-1.0"))
	assert.True(t, IsSPDX("Beerware"))
	assert.True(t, IsSPDX("GPL-3.0"), "deprecated identifiers are still known")
	assert.False(t, IsSPDX("mit"))
	assert.False(t, IsSPDX("Some Unknown License"))
	assert.False(t, IsSPDX(""))
}

func TestCanonical(t *testing.T) {
	id, ok := Canonical(" apache-2.0 ")
	require.True(t, ok)
	assert.Equal(t, "Apache-2.0", id)

	_, ok = Canonical("nope")
	assert.False(t, ok)
}

func TestSplitJoin(t *testing.T) {
	assert.Equal(t, []string{"MIT", "Apache-2.0"}, Split(" MIT, ,Apache-2.0 "))
	assert.Nil(t, Split(""))
	assert.Equal(t, "MIT, CC0-1.0", Join([]string{"MIT", "CC0-1.0"}))
}

func TestClassifyText(t *testing.T) {
	assert.Equal(t, "MIT", ClassifyText([]byte(mitText)))
	assert.Equal(t, "", ClassifyText([]byte("All rights reserved.")))
	assert.Equal(t, "", ClassifyText(nil))
}

func TestClassifyFile_ByName(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "LICENSE-MIT", "whatever")
	id, err := ClassifyFile(path)
	require.NoError(t, err)
	assert.Equal(t, "MIT", id)

	path = testutil.WriteFile(t, dir, "LICENSE.CC0-1.0.txt", "whatever")
	id, err = ClassifyFile(path)
	require.NoError(t, err)
	assert.Equal(t, "CC0-1.0", id)
}

func TestFromFiles(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "LICENSE", mitText)
	testutil.WriteFile(t, dir, "COPYING", "All rights reserved.\n")
	testutil.WriteFile(t, dir, "LICENSE-APACHE", "whatever")
	testutil.WriteFile(t, dir, "README.md", "# readme")
	testutil.WriteFile(t, dir, "LICENSE.txt", mitText)

	ids, err := FromFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"MIT", "Apache-2.0"}, ids)
}

func TestFromDir(t *testing.T) {
	dir := t.TempDir()

	ids, err := FromDir(dir)
	require.NoError(t, err)
	assert.Nil(t, ids, "no LICENSES dir")

	testutil.WriteFile(t, dir, filepath.Join(DirName, "MIT.txt"), mitText)
	testutil.WriteFile(t, dir, filepath.Join(DirName, "CC0-1.0.txt"), "")
	testutil.WriteFile(t, dir, filepath.Join(DirName, "README"), "")
	require.NoError(t, os.Mkdir(filepath.Join(dir, DirName, "sub.txt"), 0o755))

	ids, err = FromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"CC0-1.0", "MIT"}, ids)
}
