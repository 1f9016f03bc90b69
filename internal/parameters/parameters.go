// Package parameters handles generic configuration Params, a map[string]string that the
// user can set with a configuration string like "astar,sight=6,chase_radius=4".
package parameters

import (
	"strconv"
	"strings"

	"github.com/janpfeifer/chaseGo/internal/generics"
	"github.com/pkg/errors"
)

// Params represent generic configuration parameters.
type Params map[string]string

// NewFromConfigString create params from user's configuration string.
// See GetParamOr and PopParamOr to parse values from this map.
//
// Empty parts (e.g. a trailing comma) are ignored, and spaces around keys and values are trimmed.
func NewFromConfigString(config string) Params {
	params := make(Params)
	for _, part := range strings.Split(config, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		subParts := strings.SplitN(part, "=", 2) // Split into up to 2 parts to handle '=' in values
		if len(subParts) == 1 {
			params[subParts[0]] = ""
		} else {
			params[strings.TrimSpace(subParts[0])] = strings.TrimSpace(subParts[1])
		}
	}
	return params
}

// Value types supported by GetParamOr and PopParamOr.
type Value interface {
	bool | int | uint64 | float32 | float64 | string
}

// PopParamOr is like GetParamOr, but it also deletes from the params map the retrieved parameter.
func PopParamOr[T Value](params Params, key string, defaultValue T) (T, error) {
	value, err := GetParamOr(params, key, defaultValue)
	if err != nil {
		return value, err
	}
	delete(params, key)
	return value, nil
}

// GetParamOr attempts to parse a parameter to the given type if the key is present, or returns the defaultValue
// if not.
//
// For bool types, a key without a value is interpreted as true.
func GetParamOr[T Value](params Params, key string, defaultValue T) (T, error) {
	vAny := (any)(defaultValue)
	var t T
	toT := func(v any) T { return v.(T) }
	value, exists := params[key]
	if !exists {
		return defaultValue, nil
	}
	switch vAny.(type) {
	case string:
		return toT(value), nil
	case int:
		if value == "" {
			return defaultValue, nil
		}
		parsedValue, err := strconv.Atoi(value)
		if err != nil {
			return t, errors.Wrapf(err, "failed to parse configuration %s=%q to int", key, value)
		}
		return toT(parsedValue), nil
	case uint64:
		if value == "" {
			return defaultValue, nil
		}
		parsedValue, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return t, errors.Wrapf(err, "failed to parse configuration %s=%q to uint64", key, value)
		}
		return toT(parsedValue), nil
	case float32:
		if value == "" {
			return defaultValue, nil
		}
		parsedValue, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return t, errors.Wrapf(err, "failed to parse configuration %s=%q to float", key, value)
		}
		return toT(float32(parsedValue)), nil
	case float64:
		if value == "" {
			return defaultValue, nil
		}
		parsedValue, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return t, errors.Wrapf(err, "failed to parse configuration %s=%q to float", key, value)
		}
		return toT(parsedValue), nil
	case bool:
		if value == "" || strings.ToLower(value) == "true" || value == "1" { // Empty value is considered "true"
			return toT(true), nil
		}
		if strings.ToLower(value) == "false" || value == "0" {
			return toT(false), nil
		}
		return defaultValue, errors.Errorf("failed to parse configuration %s=%q to bool", key, value)
	}
	return defaultValue, nil
}

// CheckAllUsed returns an error listing the keys still in params.
// Use it after all the PopParamOr calls, to catch misspelled configurations.
func CheckAllUsed(params Params) error {
	if len(params) == 0 {
		return nil
	}
	var keys []string
	for key := range generics.SortedKeys(params) {
		keys = append(keys, key)
	}
	return errors.Errorf("unknown configuration parameter(s): %q", keys)
}
