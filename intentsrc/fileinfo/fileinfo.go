// Package fileinfo decides which blobs at the revision are source files worth extracting.
package fileinfo

import (
	"fmt"
	"strings"
	"sync"

	enry "gopkg.in/src-d/enry.v1"
)

type Process struct {
	supported map[string]bool

	mu                 sync.Mutex
	checkFilePathCache map[string]string
}

// New returns a Process that only accepts the given enry language names.
// With no languages every detected language is accepted.
func New(languages ...string) *Process {
	s := &Process{}
	s.checkFilePathCache = map[string]string{}
	if len(languages) != 0 {
		s.supported = map[string]bool{}
		for _, l := range languages {
			s.supported[l] = true
		}
	}
	return s
}

const (
	skipLanguageUnknown      = "Language was unknown"
	skipLanguageUnsupported  = "Language %v is not supported"
	skipFileSize             = "File size was %dK which exceeds limit of %dK"
	skipMaxLinesExceeded     = "File has more than %d lines"
	skipMaxLineBytesExceeded = "File has a line width of %d which is greater than max of %d"
	skipConfigFile           = "File was a config file"
	skipDotFile              = "File was a dot file"
	skipBlacklisted          = "File was on an exclusion list"
	skipVendoredFile         = "File was a vendored file"
	skipBinary               = "File was binary"
	skipLicense              = "File is a license file"
)

type InfoArgs struct {
	FilePath string
	Content  []byte
}

type Info struct {
	Language string
	License  *License
	// SkipReason is empty when the file should be extracted.
	SkipReason string
}

// Skipped reports whether the file should not be extracted.
func (s Info) Skipped() bool {
	return s.SkipReason != ""
}

// maxFileSize controls the size of the overall file we will process before
// determining that it's not a human written source file (generated, etc)
// and skip it
const maxFileSize = 1000000

// maxLinePerFile controls how many lines of code (LOC) we will process before
// determining that it's not a human written source file (generated, etc)
// and skip it
const maxLinePerFile = 40000

// maxBytesPerLine controls the size of one line we will process before
// determining that it's not a human written source file (generated, etc)
// and skip it
const maxBytesPerLine = 1096

func (s *Process) GetInfo(args InfoArgs) (res Info, _ error) {
	fileSize := len(args.Content)

	if fileSize > maxFileSize {
		res.SkipReason = fmt.Sprintf(skipFileSize, fileSize/1000, maxFileSize/1000)
		return
	}

	if possibleLicense(args.FilePath) {
		l, err := detect(args.FilePath, args.Content)
		if err != nil {
			return res, fmt.Errorf("could not detect license of %v: %w", args.FilePath, err)
		}
		if l != nil {
			res.License = l
			res.SkipReason = skipLicense
			return
		}
	}

	if skip := s.checkFilePath(args.FilePath); skip != "" {
		res.SkipReason = skip
		return
	}

	if enry.IsBinary(args.Content) {
		res.SkipReason = skipBinary
		return
	}

	lines := 0
	lineStart := 0
	for i, b := range args.Content {
		if b != '\n' {
			continue
		}
		lines++
		if i-lineStart > maxBytesPerLine {
			res.SkipReason = fmt.Sprintf(skipMaxLineBytesExceeded, i-lineStart, maxBytesPerLine)
			return
		}
		lineStart = i + 1
	}
	if len(args.Content)-lineStart > maxBytesPerLine {
		res.SkipReason = fmt.Sprintf(skipMaxLineBytesExceeded, len(args.Content)-lineStart, maxBytesPerLine)
		return
	}
	if lines > maxLinePerFile {
		res.SkipReason = fmt.Sprintf(skipMaxLinesExceeded, maxLinePerFile)
		return
	}

	res.Language = enry.GetLanguage(args.FilePath, args.Content)
	if res.Language == "" {
		res.SkipReason = skipLanguageUnknown
		return
	}
	if s.supported != nil && !s.supported[res.Language] {
		res.SkipReason = fmt.Sprintf(skipLanguageUnsupported, res.Language)
		return
	}

	return res, nil
}

func (s *Process) checkFilePath(filePath string) (skipReason string) {
	s.mu.Lock()
	res, ok := s.checkFilePathCache[filePath]
	s.mu.Unlock()
	if ok {
		return res
	}
	res = s.checkFilePathUncached(filePath)
	s.mu.Lock()
	s.checkFilePathCache[filePath] = res
	s.mu.Unlock()
	return res
}

func (s *Process) checkFilePathUncached(filePath string) (skipReason string) {
	if enry.IsConfiguration(filePath) {
		return skipConfigFile
	}
	if enry.IsDotFile(filePath) {
		return skipDotFile
	}
	if ignorePatterns.MatchString(filePath) {
		return skipBlacklisted
	}
	if s.isVendored(filePath) {
		return skipVendoredFile
	}
	return ""
}

func (s *Process) isVendored(filePath string) bool {
	if enry.IsVendor(filePath) {
		// enry matches paths like src/com/foo/android/cache/DiskLruCache.java
		// as vendored, source roots are never vendored
		if strings.HasPrefix(filePath, "src/") {
			return false
		}
		return true
	}
	return false
}
