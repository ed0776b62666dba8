package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// ParseEnv fills target from the process environment. Every malformed
// variable is listed on its own line instead of only the first one.
func ParseEnv(target any) error {
	err := env.Parse(target)
	if err == nil {
		return nil
	}
	var agg env.AggregateError
	if !errors.As(err, &agg) || len(agg.Errors) < 2 {
		return fmt.Errorf("parse env: %w", err)
	}
	lines := make([]string, 0, len(agg.Errors))
	for _, e := range agg.Errors {
		lines = append(lines, "  "+e.Error())
	}
	return fmt.Errorf("parse env: %d invalid variables:\n%s", len(agg.Errors), strings.Join(lines, "\n"))
}
