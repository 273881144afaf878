package server

import (
	"strconv"

	"github.com/urlstat/urlstat/pkg/checker"
)

// Summary aggregates a ResultSet into reachability counts. A URL is up
// when its outcome is a numeric status code: any HTTP answer, including
// 4xx and 5xx, means the server responded. Everything else is a
// transport-level failure and counts as down.
type Summary struct {
	Total int
	Up    int
	Down  int
}

func summarize(results checker.ResultSet) Summary {
	sum := Summary{Total: len(results)}
	for _, outcome := range results {
		if _, err := strconv.Atoi(outcome); err == nil {
			sum.Up++
		} else {
			sum.Down++
		}
	}
	return sum
}
