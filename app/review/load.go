package review

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// The scraper escaped dots in spec headings because its document store
// could not hold them in key position.
const dotEscape = "&#46;"

// LoadJSONL reads reviews from a JSONL file, one review per line.
// Malformed lines are logged and skipped rather than failing the whole
// load.
func LoadJSONL(path string) ([]Review, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file %s: %w", path, err)
	}
	defer file.Close()
	return ReadJSONL(file)
}

// ReadJSONL decodes reviews from r, applying heading unescaping and
// the spec-value cleaning rules to every record.
func ReadJSONL(r io.Reader) ([]Review, error) {
	scanner := bufio.NewScanner(r)
	var reviews []Review
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rv Review
		if err := json.Unmarshal(line, &rv); err != nil {
			slog.Warn("failed to unmarshal line", "err", err)
			continue
		}
		rv.Spec = cleanSpec(rv.Spec)
		reviews = append(reviews, rv)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %w", err)
	}
	return reviews, nil
}

func cleanSpec(spec map[string]any) map[string]any {
	if spec == nil {
		return nil
	}
	out := make(map[string]any, len(spec))
	for k, v := range spec {
		k = strings.ReplaceAll(k, dotEscape, ".")
		out[k] = CleanSpecValue(k, v)
	}
	return out
}
