package store

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rcliao/helpdesk/internal/model"
)

//go:embed seed.yaml
var defaultSeed []byte

// seedRecord is the on-disk shape of a call. Dates stay strings so JSON and
// YAML files parse the same way.
type seedRecord struct {
	ID               string `json:"id" yaml:"id"`
	CallerName       string `json:"callerName" yaml:"callerName"`
	CallerEmail      string `json:"callerEmail" yaml:"callerEmail"`
	CallerPhone      string `json:"callerPhone" yaml:"callerPhone"`
	IssueDescription string `json:"issueDescription" yaml:"issueDescription"`
	Priority         string `json:"priority" yaml:"priority"`
	Status           string `json:"status" yaml:"status"`
	DateCreated      string `json:"dateCreated" yaml:"dateCreated"`
	IssueImage       string `json:"issueImage,omitempty" yaml:"issueImage,omitempty"`
}

// DefaultCalls returns the built-in demo collection.
func DefaultCalls() []model.Call {
	calls, err := ParseCalls(defaultSeed, false)
	if err != nil {
		panic(fmt.Sprintf("store: embedded seed: %v", err))
	}
	return calls
}

// LoadCalls reads a seed file. Files ending in .json are parsed as JSON,
// anything else as YAML.
func LoadCalls(path string) ([]model.Call, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	calls, err := ParseCalls(data, strings.EqualFold(filepath.Ext(path), ".json"))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return calls, nil
}

// ParseCalls decodes a list of calls and checks their enumerated fields.
func ParseCalls(data []byte, isJSON bool) ([]model.Call, error) {
	var recs []seedRecord
	var err error
	if isJSON {
		err = json.Unmarshal(data, &recs)
	} else {
		err = yaml.Unmarshal(data, &recs)
	}
	if err != nil {
		return nil, err
	}

	calls := make([]model.Call, 0, len(recs))
	for i, r := range recs {
		c, err := r.call()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		calls = append(calls, c)
	}
	return calls, nil
}

// EncodeCalls writes calls in the seed file format, so the output of an
// export can be loaded back with LoadCalls.
func EncodeCalls(calls []model.Call, asJSON bool) ([]byte, error) {
	recs := make([]seedRecord, len(calls))
	for i, c := range calls {
		recs[i] = seedRecord{
			ID:               c.ID,
			CallerName:       c.CallerName,
			CallerEmail:      c.CallerEmail,
			CallerPhone:      c.CallerPhone,
			IssueDescription: c.IssueDescription,
			Priority:         string(c.Priority),
			Status:           string(c.Status),
			IssueImage:       c.IssueImage,
		}
		if !c.DateCreated.IsZero() {
			recs[i].DateCreated = c.DateCreated.UTC().Format(time.RFC3339Nano)
		}
	}
	if asJSON {
		return json.MarshalIndent(recs, "", "  ")
	}
	return yaml.Marshal(recs)
}

func (r seedRecord) call() (model.Call, error) {
	p, err := model.ParsePriority(r.Priority)
	if err != nil {
		return model.Call{}, err
	}
	st, err := model.ParseStatus(r.Status)
	if err != nil {
		return model.Call{}, err
	}
	var created time.Time
	if r.DateCreated != "" {
		created, err = time.Parse(time.RFC3339, r.DateCreated)
		if err != nil {
			return model.Call{}, fmt.Errorf("dateCreated: %w", err)
		}
	}
	return model.Call{
		ID:               r.ID,
		CallerName:       r.CallerName,
		CallerEmail:      r.CallerEmail,
		CallerPhone:      r.CallerPhone,
		IssueDescription: r.IssueDescription,
		Priority:         p,
		Status:           st,
		DateCreated:      created,
		IssueImage:       r.IssueImage,
	}, nil
}

// Seed opens an in-memory store and fills it from path, or from the
// built-in collection when path is empty.
func Seed(ctx context.Context, path string) (*SQLiteStore, error) {
	calls := DefaultCalls()
	if path != "" {
		var err error
		if calls, err = LoadCalls(path); err != nil {
			return nil, err
		}
	}

	s, err := NewSQLiteStore()
	if err != nil {
		return nil, err
	}
	if _, err := s.Import(ctx, calls); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}
