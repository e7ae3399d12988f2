package corpus

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"io"
	"log"
	"os"
	"strings"

	"github.com/jacobduba/sd18-isu/internal/models"
)

// record mirrors the raw CodeSearchNet export. Every field is optional; missing
// values default to the zero value and never fail ingestion.
type record struct {
	ID                  *int64   `json:"id"`
	RepositoryName      string   `json:"repository_name"`
	FuncPathInRepo      string   `json:"func_path_in_repository"`
	FuncName            string   `json:"func_name"`
	WholeFuncString     string   `json:"whole_func_string"`
	Language            string   `json:"language"`
	FuncCodeString      string   `json:"func_code_string"`
	FuncCodeTokens      []string `json:"func_code_tokens"`
	FuncDocString       string   `json:"func_documentation_string"`
	FuncDocStringTokens []string `json:"func_documentation_string_tokens"`
	SplitName           string   `json:"split_name"`
	FuncCodeURL         string   `json:"func_code_url"`
}

// Load reads corpus records from a JSONL (optionally gzipped) CodeSearchNet
// export. Records without an explicit id get the next free position in the
// file, which is stable across re-runs of the same export. Ids are unique
// within one load; a record repeating an earlier id is logged and skipped.
// limit <= 0 means no limit.
func Load(path string, limit int) ([]models.CorpusRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer func() { _ = gz.Close() }()
		r = gz
	}
	return Read(r, limit)
}

// Read decodes records line by line. Malformed lines are logged and skipped so
// one bad record cannot abort ingestion.
func Read(r io.Reader, limit int) ([]models.CorpusRecord, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)

	var out []models.CorpusRecord
	seen := make(map[int64]struct{})
	nextPos := int64(0)
	line := 0
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		line++
		if text == "" {
			continue
		}
		var rec record
		if err := json.Unmarshal([]byte(text), &rec); err != nil {
			log.Printf("corpus: skip malformed record at line %d: %v", line, err)
			continue
		}
		var id int64
		if rec.ID != nil {
			id = *rec.ID
			if _, dup := seen[id]; dup {
				log.Printf("corpus: skip record with duplicate id %d at line %d", id, line)
				continue
			}
		} else {
			// positional fallback: next position not taken by an explicit id,
			// stable across re-runs of the same export
			for {
				if _, taken := seen[nextPos]; !taken {
					break
				}
				nextPos++
			}
			id = nextPos
			nextPos++
		}
		seen[id] = struct{}{}
		out = append(out, models.CorpusRecord{
			ID:                  id,
			RepositoryName:      rec.RepositoryName,
			FuncPathInRepo:      rec.FuncPathInRepo,
			FuncName:            rec.FuncName,
			WholeFuncString:     rec.WholeFuncString,
			Language:            rec.Language,
			FuncCodeString:      rec.FuncCodeString,
			FuncCodeTokens:      rec.FuncCodeTokens,
			FuncDocString:       rec.FuncDocString,
			FuncDocStringTokens: rec.FuncDocStringTokens,
			SplitName:           rec.SplitName,
			FuncCodeURL:         rec.FuncCodeURL,
		})
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
