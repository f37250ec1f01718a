package theme

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTemplateMetadata(t *testing.T) {
	css := `/* license header */
/*
  Template: dashboard
  Display: Dashboard Shell
  Description: Cards and charts.
*/
/* @theme:background */`

	meta := ParseTemplateMetadata(css)
	assert.Equal(t, "dashboard", meta.Template)
	assert.Equal(t, "Dashboard Shell", meta.Display)
	assert.Equal(t, "Cards and charts.", meta.Description)
}

func TestParseTemplateMetadata_StarPrefixedLines(t *testing.T) {
	css := "/**\n * Template: docs\n * Display: Docs\n */\n"

	meta := ParseTemplateMetadata(css)
	assert.Equal(t, "docs", meta.Template)
	assert.Equal(t, "Docs", meta.Display)
}

func TestParseTemplateMetadata_None(t *testing.T) {
	assert.Equal(t, TemplateMetadata{}, ParseTemplateMetadata("body { margin: 0 }"))
	assert.Equal(t, TemplateMetadata{}, ParseTemplateMetadata("/* unterminated"))
}

func TestParseTemplate(t *testing.T) {
	info, err := ParseTemplate("file-name", "/* @theme:background */")
	require.NoError(t, err)
	assert.Equal(t, "file-name", info.Name)
	assert.Equal(t, "File Name", info.Display)

	info, err = ParseTemplate("ignored", "/* Template: named */\n/* @theme:background */")
	require.NoError(t, err)
	assert.Equal(t, "named", info.Name)
	assert.Equal(t, "Named", info.Display)
}

func TestParseTemplate_MissingAnchor(t *testing.T) {
	_, err := ParseTemplate("broken", "/* Template: broken */\nbody {}")
	assert.True(t, errors.Is(err, ErrMissingAnchor))
}
