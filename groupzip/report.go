package groupzip

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dendrascience/groupzip/version"
)

// Report is the JSON document written for a run.
type Report struct {
	GroupzipVersion string          `json:"groupzip_version"`
	Release         bool            `json:"release"`
	Generated       time.Time       `json:"generated"`
	Directory       string          `json:"directory"`
	Count           int             `json:"count"`
	Archives        []string        `json:"archives"`
	Skipped         []Skip          `json:"skipped,omitempty"`
	Failures        []FailureRecord `json:"failures,omitempty"`
}

// FailureRecord is the serialized form of a GroupArchiveError.
type FailureRecord struct {
	BaseName string `json:"base_name"`
	Op       string `json:"op"`
	Error    string `json:"error"`
}

// NewReport builds the report for a finished run.
func NewReport(res *Result) Report {
	r := Report{
		GroupzipVersion: version.GetVersion(),
		Release:         version.IsRelease(),
		Generated:       time.Now().UTC(),
		Directory:       res.Directory,
		Count:           res.Count,
		Archives:        res.Archives,
		Skipped:         res.Skipped,
	}
	if r.Archives == nil {
		r.Archives = []string{}
	}
	for _, f := range res.Failures {
		r.Failures = append(r.Failures, FailureRecord{BaseName: f.BaseName, Op: f.Op, Error: f.Err.Error()})
	}
	return r
}

// Save writes the report as JSON to path.
func (r Report) Save(path string) error {
	return WriteJSONFile(path, r)
}

// WriteJSONFile writes any value as JSON to the specified file path.
// It creates the file and encodes the value using the standard JSON encoder.
func WriteJSONFile(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
