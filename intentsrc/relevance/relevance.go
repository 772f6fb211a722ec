// Package relevance classifies commit messages as signal or noise and reduces
// a commit set to the text appended to a component.
package relevance

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fusix/intentsrc/intentsrc/commitmeta"
	"github.com/fusix/intentsrc/intentsrc/textproc"
)

// MinTokens is the number of distinct terms a message needs to carry intent.
const MinTokens = 3

// maintenance holds stemmed terms of administrative activity. Compound and
// prefixed words stem on their own ("cleanup", "restructur", "reorgan").
var maintenance = map[string]bool{
	"clean":      true,
	"cleanup":    true,
	"licens":     true,
	"merg":       true,
	"releas":     true,
	"structur":   true,
	"restructur": true,
	"integr":     true,
	"copyright":  true,
	"document":   true,
	"manual":     true,
	"javadoc":    true,
	"comment":    true,
	"migrat":     true,
	"repositori": true,
	"code":       true,
	"review":     true,
	"polish":     true,
	"upgrad":     true,
	"style":      true,
	"format":     true,
	"organ":      true,
	"reorgan":    true,
	"todo":       true,
}

// IsMaintenanceTerm reports whether the stemmed term denotes administrative activity.
func IsMaintenanceTerm(term string) bool {
	return maintenance[term]
}

// IsSignal reports whether the commit message describes intent.
func IsSignal(c commitmeta.Commit) bool {
	return IsSignalMessage(c.Message)
}

// IsSignalMessage is IsSignal for a bare message.
func IsSignalMessage(msg string) bool {
	tokens := textproc.MessageAnalyzer.TokenSet(msg)
	if len(tokens) < MinTokens {
		return false
	}
	for t := range tokens {
		if maintenance[t] {
			return false
		}
	}
	return true
}

// Mode selects which commits contribute their message.
type Mode int

const (
	// Unfiltered keeps every commit.
	Unfiltered Mode = iota
	// Filtered drops noise commits.
	Filtered
	// FilteredNoMerges drops noise commits and commits with a parent count other than 1.
	FilteredNoMerges
)

func (m Mode) String() string {
	switch m {
	case Unfiltered:
		return "unfiltered"
	case Filtered:
		return "filtered"
	case FilteredNoMerges:
		return "filtered-no-merges"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Keep reports whether c survives the mode.
func (m Mode) Keep(c commitmeta.Commit) bool {
	switch m {
	case Filtered:
		return IsSignal(c)
	case FilteredNoMerges:
		return len(c.Parents) == 1 && IsSignal(c)
	}
	return true
}

// Select returns the commits that survive the mode, ordered by date then id.
func Select(commits []commitmeta.Commit, m Mode) []commitmeta.Commit {
	res := make([]commitmeta.Commit, 0, len(commits))
	for _, c := range commits {
		if m.Keep(c) {
			res = append(res, c)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		a, b := res[i], res[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.SHA < b.SHA
	})
	return res
}

// Reduce joins the trimmed messages of the surviving commits with a single space.
func Reduce(commits []commitmeta.Commit, m Mode) string {
	var parts []string
	for _, c := range Select(commits, m) {
		msg := strings.TrimSpace(c.Message)
		if msg == "" {
			continue
		}
		parts = append(parts, msg)
	}
	return strings.Join(parts, " ")
}
