//go:build cgo

package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fusix/intentsrc/intentsrc/annotate"
)

const javaSrc = `package demo;

public class Foo {
    public int lookup(String key, int hint) {
        return key.length() + hint;
    }

    abstract static class Base {
        abstract void run();

        void stop() {
            Runnable r = new Runnable() {
                public void run() {
                    System.out.println("x");
                }
            };
        }
    }
}
`

func TestJavaMethods(t *testing.T) {
	set, err := New().Extract(context.Background(), []byte(javaSrc), "src/Foo.java", "Java", annotate.Method, true)
	require.NoError(t, err)

	var paths []string
	for _, c := range set.Slice() {
		paths = append(paths, c.Path())
	}
	assert.Equal(t, []string{
		"src/Foo.java::Base_void_stop()",
		"src/Foo.java::Foo_int_lookup(Stringkey,inthint)",
	}, paths)

	c, ok := set.Get("src/Foo.java::Foo_int_lookup(Stringkey,inthint)")
	require.True(t, ok)
	assert.Equal(t, 4, c.StartLine())
	assert.Equal(t, 6, c.EndLine())
	assert.Contains(t, c.Content(), "return key.length() + hint;")
	assert.Equal(t, "src/Foo.java", c.FilePath())
}

const goSrc = `package store

type Cache[K comparable] struct{}

func (c *Cache[K]) Get(key K) (string, bool) {
	return "", false
}

func Open(dir string) error {
	return nil
}
`

func TestGoMethods(t *testing.T) {
	set, err := New().Extract(context.Background(), []byte(goSrc), "store/cache.go", "Go", annotate.Method, false)
	require.NoError(t, err)
	require.Equal(t, 2, set.Len())

	c, ok := set.Get("store/cache.go::Cache_Get(keyK)(string,bool)")
	require.True(t, ok)
	assert.Equal(t, 5, c.StartLine())
	assert.Equal(t, 7, c.EndLine())
	assert.Equal(t, "", c.Content())

	c, ok = set.Get("store/cache.go::store_Open(dirstring)error")
	require.True(t, ok)
	assert.Equal(t, 9, c.StartLine())
}

func TestMethodsUnsupportedLanguage(t *testing.T) {
	_, err := New().Extract(context.Background(), []byte("x = 1"), "a.py", "Python", annotate.Method, false)
	assert.True(t, errors.Is(err, ErrUnsupportedLanguage))
}
