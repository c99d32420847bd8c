package scoring

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultMandatoryPenaltyFactor = 5.0

// Policy carries the tunable parameters of the scoring formula. The penalty
// factor is deliberately configuration, not code: the right value depends on
// acceptance data.
type Policy struct {
	MandatoryPenaltyFactor float64 `yaml:"mandatory_penalty_factor"`
}

func DefaultPolicy() Policy {
	return Policy{MandatoryPenaltyFactor: defaultMandatoryPenaltyFactor}
}

// LoadPolicyFile reads a YAML policy file. Missing or non-positive values
// fall back to the defaults.
func LoadPolicyFile(path string) (Policy, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("read scoring policy: %w", err)
	}

	p := Policy{}
	if err := yaml.Unmarshal(b, &p); err != nil {
		return Policy{}, fmt.Errorf("parse scoring policy: %w", err)
	}
	return p.withDefaults(), nil
}

func (p Policy) withDefaults() Policy {
	if p.MandatoryPenaltyFactor <= 0 {
		p.MandatoryPenaltyFactor = defaultMandatoryPenaltyFactor
	}
	return p
}
