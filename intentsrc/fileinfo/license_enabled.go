//go:build !no_license

package fileinfo

import (
	"sort"
	"sync"

	"gopkg.in/src-d/go-license-detector.v2/licensedb"
	"gopkg.in/src-d/go-license-detector.v2/licensedb/filer"
)

// memoryfiler serves a single in-memory file to the license detector.
type memoryfiler struct {
	filename string
	buf      []byte
}

func (f *memoryfiler) ReadFile(path string) (content []byte, err error) {
	return f.buf, nil
}

func (f *memoryfiler) ReadDir(path string) ([]filer.File, error) {
	return []filer.File{
		{
			Name:  f.filename,
			IsDir: false,
		},
	}, nil
}

func (f *memoryfiler) Close() {
}

const minConfidenceLevel float32 = 0.85

// the detector is not safe for concurrent use
var detectMu sync.Mutex

func detect(filename string, buf []byte) (*License, error) {
	mf := &memoryfiler{filename, buf}
	detectMu.Lock()
	kv, err := licensedb.Detect(mf)
	detectMu.Unlock()
	if err != nil {
		if err == licensedb.ErrNoLicenseFound {
			return nil, nil
		}
		return nil, err
	}
	matches := make([]License, 0, len(kv))
	for k, v := range kv {
		matches = append(matches, License{k, v})
	}
	if len(matches) == 0 {
		return nil, nil
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Confidence != matches[j].Confidence {
			return matches[i].Confidence > matches[j].Confidence
		}
		return matches[i].Name < matches[j].Name
	})
	if matches[0].Confidence >= minConfidenceLevel {
		return &matches[0], nil
	}
	return nil, nil
}
