// Package parentsp parses git log --pretty=format:%H@%P output.
package parentsp

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
)

type Parser struct {
	r io.Reader
}

func New(r io.Reader) *Parser {
	p := &Parser{}
	p.r = r
	return p
}

// Parents maps a commit to its ordered parents. Root commits map to nil.
type Parents map[string][]string

const mb = 1000 * 1000
const maxLine = 1 * mb

func (s *Parser) Run() (Parents, error) {
	res := Parents{}

	scanner := bufio.NewScanner(s.r)
	scanner.Buffer(nil, maxLine)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		parts := bytes.Split(line, []byte("@"))
		if len(parts) != 2 {
			return res, fmt.Errorf("invalid parents line: %q", line)
		}

		commit := string(parts[0])
		if len(commit) != 40 {
			return res, fmt.Errorf("invalid commit id in parents line: %q", line)
		}
		var parents []string
		if len(parts[1]) != 0 {
			parents = strings.Split(string(parts[1]), " ")
		}
		res[commit] = parents
	}
	if err := scanner.Err(); err != nil {
		return res, err
	}
	return res, nil
}
