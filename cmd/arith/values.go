package main

import (
	"encoding/json"
	"fmt"

	"github.com/born-ml/arith/internal/tensor"
)

// parseValue decodes a JSON number, array of numbers or array of arrays.
func parseValue(s string) (tensor.Value, error) {
	var raw any
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	switch x := raw.(type) {
	case float64:
		return tensor.Scalar(x), nil
	case []any:
		if len(x) > 0 {
			if _, nested := x[0].([]any); nested {
				return parseMatrix(x)
			}
		}
		return parseVector(x)
	default:
		return nil, fmt.Errorf("expected number or array, got %T", raw)
	}
}

func parseVector(items []any) (tensor.Vector, error) {
	out := make(tensor.Vector, len(items))
	for i, item := range items {
		n, ok := item.(float64)
		if !ok {
			return nil, fmt.Errorf("element %d: expected number, got %T", i, item)
		}
		out[i] = float32(n)
	}
	return out, nil
}

func parseMatrix(rows []any) (tensor.Matrix, error) {
	out := make(tensor.Matrix, len(rows))
	for i, row := range rows {
		items, ok := row.([]any)
		if !ok {
			return nil, fmt.Errorf("row %d: expected array, got %T", i, row)
		}
		v, err := parseVector(items)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = v
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}
