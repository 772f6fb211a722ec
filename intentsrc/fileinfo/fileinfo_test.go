package fileinfo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasic(t *testing.T) {
	p := New()
	info, err := p.GetInfo(makeArgs("dir1/main.go",
		`package main
		
		func main(){
		}`,
	))
	require.NoError(t, err)
	assert.Equal(t, "", info.SkipReason)
	assert.False(t, info.Skipped())
	assert.Equal(t, "Go", info.Language)
}

func makeArgs(filePath string, content string) InfoArgs {
	args := InfoArgs{}
	args.FilePath = filePath
	args.Content = []byte(content)
	return args
}

var testOKFilePath = "main.go"
var testOKContent = `package main
	
	func main(){
	}`

var testJavaContent = `package a;

public class A {
	void run() {}
}
`

func TestFilePaths(t *testing.T) {
	cases := []struct {
		Path       string
		SkipReason string
	}{
		{"dir1/a.go", ""},
		{"config.json", skipConfigFile},
		{".config", skipDotFile},
		{"go.sum", skipBlacklisted},
		{"web/node_modules/x/a.go", skipBlacklisted},
		{"api/service.pb.go", skipBlacklisted},
		{"dependencies/a.go", skipVendoredFile},
		// enry matches this as vendored
		{"src/com/foo/android/cache/DiskLruCache.java", ""},
	}
	p := New()
	for _, c := range cases {
		content := testOKContent
		if strings.HasSuffix(c.Path, ".java") {
			content = testJavaContent
		}
		info, err := p.GetInfo(makeArgs(c.Path, content))
		require.NoError(t, err)
		if info.SkipReason != c.SkipReason {
			t.Errorf("wanted skip reason %v for path %v, got %v", c.SkipReason, c.Path, info.SkipReason)
		}
	}
}

func TestSupportedLanguages(t *testing.T) {
	p := New("Java")
	info, err := p.GetInfo(makeArgs("src/A.java", testJavaContent))
	require.NoError(t, err)
	assert.Equal(t, "Java", info.Language)
	assert.False(t, info.Skipped())

	info, err = p.GetInfo(makeArgs(testOKFilePath, testOKContent))
	require.NoError(t, err)
	assert.Equal(t, "Language Go is not supported", info.SkipReason)
}

func TestBinary(t *testing.T) {
	p := New()
	info, err := p.GetInfo(makeArgs("data.go", "package a\x00\x00\x01"))
	require.NoError(t, err)
	assert.Equal(t, skipBinary, info.SkipReason)
}

func BenchmarkFilePaths(b *testing.B) {
	p := New()
	for i := 0; i < b.N; i++ {
		p.GetInfo(makeArgs(strings.Repeat("dir1/", 20)+"a.go", testOKContent))
	}
}

func makeArgsWithContentLen(l int) InfoArgs {
	content := make([]byte, l)
	for i := 0; i < len(content); i++ {
		if i%1000 == 0 {
			content[i] = '\n'
		} else {
			content[i] = 'a'
		}
	}
	copy(content, testOKContent)
	return makeArgs(testOKFilePath, string(content))
}

func TestMaxFileSize(t *testing.T) {
	p := New()
	info, err := p.GetInfo(makeArgsWithContentLen(maxFileSize + 1))
	require.NoError(t, err)
	assert.Equal(t, "File size was 1000K which exceeds limit of 1000K", info.SkipReason)
}

func TestMaxLines(t *testing.T) {
	p := New()
	info, err := p.GetInfo(makeArgs(testOKFilePath, strings.Repeat("a\n", maxLinePerFile+1)))
	require.NoError(t, err)
	assert.Equal(t, "File has more than 40000 lines", info.SkipReason)
}

func TestMaxLineBytes(t *testing.T) {
	p := New()
	info, err := p.GetInfo(makeArgs(testOKFilePath, "package main\n"+strings.Repeat("a", maxBytesPerLine+1)+"\n"))
	require.NoError(t, err)
	assert.Equal(t, "File has a line width of 1097 which is greater than max of 1096", info.SkipReason)
}
