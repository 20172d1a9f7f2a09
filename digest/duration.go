package digest

import (
	"fmt"
	"strconv"
	"strings"
)

// ReadableDuration turns an ISO-8601 duration of the form PT[nH][nM][nS] into
// H:MM:SS, or M:SS when there are no hours. Input that does not parse is
// returned unchanged.
func ReadableDuration(iso string) string {
	rest, ok := strings.CutPrefix(iso, "PT")
	if !ok {
		return iso
	}

	var parts [3]int
	for i, marker := range []string{"H", "M", "S"} {
		value, after, found := strings.Cut(rest, marker)
		if !found {
			continue
		}
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return iso
		}
		parts[i] = n
		rest = after
	}
	if rest != "" {
		return iso
	}

	h, m, s := parts[0], parts[1], parts[2]
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
