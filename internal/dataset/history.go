package dataset

import (
	"log"
	"strconv"
	"strings"
)

// readHistory returns the index stored in the history sidecar, or 0 when
// it is missing or unreadable.
func readHistory(fsys FS, dir string) int {
	data, err := fsys.ReadFile(fsys.Join(dir, HistoryFile))
	if err != nil {
		return 0
	}
	idx, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0
	}
	return idx
}

// writeHistory is best-effort; failures are logged and dropped.
func writeHistory(fsys FS, dir string, idx int) {
	if err := fsys.WriteFile(fsys.Join(dir, HistoryFile), []byte(strconv.Itoa(idx))); err != nil {
		log.Printf("dataset: write %s: %v", HistoryFile, err)
	}
}
