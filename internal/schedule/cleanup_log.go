package schedule

import (
	"os"
	"strings"
)

// TailCleanupLog returns up to n trailing lines of the cleanup log. A missing
// file is not an error; the page shows an empty log.
func TailCleanupLog(path string, n int) ([]string, error) {
	if n <= 0 {
		n = 50
	}
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return nil, nil
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines, nil
}
