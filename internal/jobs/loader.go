package jobs

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// LoadFile reads a JSON array of jobs. Numeric fields may be encoded as strings.
func LoadFile(path string) (*Listings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading jobs file %q: %w", path, err)
	}

	l, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("jobs file %q: %w", path, err)
	}
	return l, nil
}

// Decode parses raw JSON job items.
func Decode(data []byte) (*Listings, error) {
	var items []map[string]any
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}

	var jobs []*Job
	cfg := &mapstructure.DecoderConfig{
		Result:           &jobs,
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(items); err != nil {
		return nil, fmt.Errorf("decode jobs: %w", err)
	}

	seen := make(map[string]struct{}, len(jobs))
	for i, job := range jobs {
		if job == nil {
			return nil, fmt.Errorf("job %d: item is null", i)
		}
		job.ID = strings.TrimSpace(job.ID)
		if job.ID == "" {
			return nil, fmt.Errorf("job %d: job_id is required", i)
		}
		if _, ok := seen[job.ID]; ok {
			return nil, fmt.Errorf("job %d: duplicate job_id %q", i, job.ID)
		}
		seen[job.ID] = struct{}{}
		job.EmploymentType = strings.ToUpper(strings.TrimSpace(job.EmploymentType))
	}

	return &Listings{Items: jobs}, nil
}
