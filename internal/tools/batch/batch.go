package batch

import (
	"context"
	"encoding/json"
	"fmt"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Result is the outcome of one item in a batch operation.
type Result struct {
	ID     string `json:"id"`
	Status string `json:"status"` // "success" or "error"
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// BatchResult aggregates the per-item outcomes a tool reports back.
type BatchResult struct {
	Total      int      `json:"total"`
	Successful int      `json:"successful"`
	Failed     int      `json:"failed"`
	Results    []Result `json:"results"`
}

// NewSuccessResult creates a success result.
func NewSuccessResult(id, message string) Result {
	return Result{ID: id, Status: statusSuccess, Result: message}
}

// NewErrorResult creates an error result.
func NewErrorResult(id string, err error) Result {
	return Result{ID: id, Status: statusError, Error: err.Error()}
}

// ParseStringOrArray parses a tool argument that accepts either a single
// ID or an array of IDs, so callers can write "fileIds": "abc" as well
// as "fileIds": ["abc", "def"].
func ParseStringOrArray(param interface{}, paramName string) ([]string, error) {
	switch v := param.(type) {
	case nil:
		return nil, fmt.Errorf("%s is required", paramName)
	case string:
		if v == "" {
			return nil, fmt.Errorf("%s cannot be empty", paramName)
		}
		return []string{v}, nil
	case []interface{}:
		return parseIDArray(v, paramName)
	default:
		return nil, fmt.Errorf("%s must be a string or array of strings", paramName)
	}
}

func parseIDArray(items []interface{}, paramName string) ([]string, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%s cannot be empty", paramName)
	}
	ids := make([]string, len(items))
	for i, item := range items {
		str, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%s[%d] must be a string", paramName, i)
		}
		if str == "" {
			return nil, fmt.Errorf("%s[%d] cannot be empty", paramName, i)
		}
		ids[i] = str
	}
	return ids, nil
}

// ProcessBatch runs fn for each ID in order and collects the outcomes.
// When ctx is cancelled mid-batch the remaining IDs are reported as
// errors without calling fn, so every requested ID appears in the
// results exactly once.
func ProcessBatch(ctx context.Context, ids []string, fn func(ctx context.Context, id string) (string, error)) []Result {
	results := make([]Result, 0, len(ids))
	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			for _, remaining := range ids[i:] {
				results = append(results, NewErrorResult(remaining, err))
			}
			return results
		}

		if res, err := fn(ctx, id); err != nil {
			results = append(results, NewErrorResult(id, err))
		} else {
			results = append(results, NewSuccessResult(id, res))
		}
	}
	return results
}

// FormatResults renders the outcomes as indented JSON for a tool result.
func FormatResults(results []Result) string {
	br := BatchResult{Total: len(results), Results: results}
	for _, r := range results {
		if r.Status == statusSuccess {
			br.Successful++
		}
	}
	br.Failed = br.Total - br.Successful

	jsonBytes, _ := json.MarshalIndent(br, "", "  ")
	return string(jsonBytes)
}
