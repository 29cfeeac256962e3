package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Env variable names.
const (
	envPrefix  = "JOBREC_"
	envFileKey = "JOBREC_CONFIG"
)

// maxSubScore is the top of the 0..100 sub-score scale.
const maxSubScore = 100

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if JOBREC_CONFIG is set
//  3. env (prefix JOBREC_; double underscore nests, e.g.
//     JOBREC_SCORE_WEIGHTS__SKILL_MATCH -> score_weights.skill_match)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(envFileKey); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, WrapLoad(err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
		// Single underscores stay literal to match the koanf struct tags;
		// double underscores descend into nested structs.
		return strings.ReplaceAll(s, "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, WrapLoad(err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, WrapLoad(err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate fails fast on configuration that would corrupt scoring. Weight
// tables that do not sum to 1.0 are the canonical case: they silently skew
// every overall score, so the process must not start with one.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return WrapInvalid(fmt.Errorf("addr must not be empty"))
	}
	if err := c.ScoreWeights.Validate(); err != nil {
		return WrapInvalid(err)
	}
	if c.FuzzyThreshold <= 0 || c.FuzzyThreshold > 1 {
		return WrapInvalid(fmt.Errorf("fuzzy_threshold %v outside (0,1]", c.FuzzyThreshold))
	}
	if c.SynonymScore <= 0 || c.SynonymScore > 1 {
		return WrapInvalid(fmt.Errorf("synonym_score %v outside (0,1]", c.SynonymScore))
	}
	if c.NeutralScore < 0 || c.NeutralScore > maxSubScore {
		return WrapInvalid(fmt.Errorf("neutral_score %v outside [0,100]", c.NeutralScore))
	}
	if c.CoverageBonus < 0 {
		return WrapInvalid(fmt.Errorf("coverage_bonus %v is negative", c.CoverageBonus))
	}
	if c.DefaultTopK < 0 {
		return WrapInvalid(fmt.Errorf("default_top_k %d is negative", c.DefaultTopK))
	}
	return nil
}
