package fileinfo

import (
	"fmt"
	"path"
	"regexp"
)

// License is the license found in a file skipped as a license file.
type License struct {
	Name       string
	Confidence float32
}

func (l License) String() string {
	return fmt.Sprintf("%v (%.0f%%)", l.Name, 100*l.Confidence)
}

// licenseFileName matches the base names worth running license detection on.
var licenseFileName = regexp.MustCompile(`(?i)^(licen[cs]e|unlicen[cs]e|copying|readme|licen[cs]e-.+?)(\.(md|txt))?$`)

// possibleLicense expects a slash separated path as listed by git.
func possibleLicense(filePath string) bool {
	return licenseFileName.MatchString(path.Base(filePath))
}
