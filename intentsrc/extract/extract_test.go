package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fusix/intentsrc/intentsrc/annotate"
	"github.com/fusix/intentsrc/intentsrc/component"
)

func TestStripLicenseHeader(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("\nclass A {}", StripLicenseHeader("/* Licensed under the Apache License */\nclass A {}"))
	assert.Equal("/* helper */\nclass A {}", StripLicenseHeader("/* helper */\nclass A {}"))
	assert.Equal("class A {}", StripLicenseHeader("class A {}"))
}

func TestFileGranularity(t *testing.T) {
	src := []byte("/*\n * LICENSE: MIT\n */\npackage a;\n")
	set, err := New().Extract(context.Background(), src, "src/A.java", "Java", annotate.File, true)
	require.NoError(t, err)
	require.Equal(t, 1, set.Len())
	c, ok := set.Get("src/A.java")
	require.True(t, ok)
	assert.True(t, c.IsWholeFile())
	assert.Equal(t, "\npackage a;\n", c.Content())
}

func TestFileGranularityNoContent(t *testing.T) {
	set, err := New().Extract(context.Background(), []byte("package a"), "a.go", "Go", annotate.File, false)
	require.NoError(t, err)
	c, ok := set.Get("a.go")
	require.True(t, ok)
	assert.Equal(t, "", c.Content())
	assert.Equal(t, component.WholeFile, c.StartLine())
}

func TestUnsupportedGranularity(t *testing.T) {
	_, err := New().Extract(context.Background(), nil, "a.go", "Go", annotate.Granularity(0), false)
	assert.True(t, errors.Is(err, annotate.ErrUnsupportedGranularity))
}
