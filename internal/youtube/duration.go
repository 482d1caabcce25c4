package youtube

import (
	"regexp"
	"strconv"
)

var durationPattern = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// ParseDuration converts a Data API duration token such as "PT1H30M45S" into
// whole seconds. Missing groups count as zero and tokens without a
// recognizable "PT" prefix yield 0.
func ParseDuration(token string) int {
	m := durationPattern.FindStringSubmatch(token)
	if m == nil {
		return 0
	}
	return group(m[1])*3600 + group(m[2])*60 + group(m[3])
}

func group(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
