package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra/doc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/part-price-tracker/cmd/ppt/cmd"
)

func TestGenMarkdownTree(t *testing.T) {
	dir := t.TempDir()

	root := cmd.Root()
	root.DisableAutoGenTag = true
	require.NoError(t, doc.GenMarkdownTree(root, dir))

	for _, name := range []string{"ppt.md", "ppt_refresh.md", "ppt_urls_set.md", "ppt_settings_set.md"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}
