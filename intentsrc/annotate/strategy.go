package annotate

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedGranularity is returned before any work when the granularity is unknown.
	ErrUnsupportedGranularity = errors.New("unsupported granularity")

	// ErrUnsupportedRecency is returned before any work when the recency strategy is unknown.
	ErrUnsupportedRecency = errors.New("unsupported recency")
)

// Recency selects which commits of a component's history are collected.
type Recency int

const (
	// Recent uses the commits blame attributes the component's lines to.
	Recent Recency = iota + 1
	// All uses every commit that touched the component over the lifetime of its path.
	All
	// RecentClustered promotes recent commits to the members of their branch cluster.
	RecentClustered
)

func (r Recency) String() string {
	switch r {
	case Recent:
		return "RECENT"
	case All:
		return "ALL"
	case RecentClustered:
		return "RECENT_CLUSTERED"
	}
	return fmt.Sprintf("Recency(%d)", int(r))
}

// ParseRecency accepts RECENT, ALL or RECENT_CLUSTERED in any case.
func ParseRecency(s string) (Recency, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "RECENT":
		return Recent, nil
	case "ALL":
		return All, nil
	case "RECENT_CLUSTERED", "RECENT+CLUSTER", "HYBRID":
		return RecentClustered, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedRecency, s)
}

// Granularity is the unit size components are extracted at.
type Granularity int

const (
	File Granularity = iota + 1
	Method
)

func (g Granularity) String() string {
	switch g {
	case File:
		return "FILE"
	case Method:
		return "METHOD"
	}
	return fmt.Sprintf("Granularity(%d)", int(g))
}

// ParseGranularity accepts FILE or METHOD in any case.
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "FILE":
		return File, nil
	case "METHOD":
		return Method, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedGranularity, s)
}

// LineTracking selects how ALL finds the commits of a method's line range.
type LineTracking int

const (
	// Native delegates to git log -L.
	Native LineTracking = iota
	// Replay walks the path history and shifts the range back through every diff.
	Replay
)

func (t LineTracking) String() string {
	switch t {
	case Native:
		return "native"
	case Replay:
		return "replay"
	}
	return fmt.Sprintf("LineTracking(%d)", int(t))
}

// ParseLineTracking accepts native or replay.
func ParseLineTracking(s string) (LineTracking, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "native", "":
		return Native, nil
	case "replay":
		return Replay, nil
	}
	return 0, fmt.Errorf("unknown line tracking %q", s)
}

// Strategy is the recency and granularity pair a batch is annotated with.
type Strategy struct {
	Recency     Recency
	Granularity Granularity
}

// NewStrategy validates the pair.
func NewStrategy(r Recency, g Granularity) (Strategy, error) {
	switch g {
	case File, Method:
	default:
		return Strategy{}, fmt.Errorf("%w: %v", ErrUnsupportedGranularity, g)
	}
	switch r {
	case Recent, All, RecentClustered:
	default:
		return Strategy{}, fmt.Errorf("%w: %v", ErrUnsupportedRecency, r)
	}
	return Strategy{Recency: r, Granularity: g}, nil
}

// NeedsBlame reports whether the file group needs a blame result.
func (s Strategy) NeedsBlame() bool {
	return s.Recency == Recent || s.Recency == RecentClustered
}

func (s Strategy) String() string {
	return s.Recency.String() + "/" + s.Granularity.String()
}
