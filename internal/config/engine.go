package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Engine holds every tunable the recommendation engine reads. Values ship as
// compiled-in defaults and can be overridden per deployment via a YAML file,
// so tests and ops can retune without a rebuild.
type Engine struct {
	// ActionWeights maps an interaction action to its signed feedback weight.
	ActionWeights map[string]float64 `yaml:"actionWeights"`

	// TypeCompletionWeights scales the completion-rate contribution per content type.
	TypeCompletionWeights map[string]float64 `yaml:"typeCompletionWeights"`

	// Weight learner
	MaxLearningEvents int     `yaml:"maxLearningEvents"` // most-recent events considered
	MinInteractions   int     `yaml:"minInteractions"`   // below this: no personalization
	AvoidTagShare     float64 `yaml:"avoidTagShare"`     // normalized negative share threshold
	BoostTagShare     float64 `yaml:"boostTagShare"`     // normalized positive share threshold
	TimeSlotShare     float64 `yaml:"timeSlotShare"`     // bucket share for preferred time slot
	DiversityHigh     float64 `yaml:"diversityHigh"`     // distinct/total ratio above: broad sampler
	DiversityLow      float64 `yaml:"diversityLow"`      // distinct/total ratio below: repeater

	// Content scorer
	RecencyHalfLifeDays float64 `yaml:"recencyHalfLifeDays"`
	OversampleFactor    int     `yaml:"oversampleFactor"`

	// Collaborative scorer
	HistoryLimit       int     `yaml:"historyLimit"`       // recent content ids per user
	MinSharedContent   int     `yaml:"minSharedContent"`   // shared ids required for a neighbor
	MinSimilarity      float64 `yaml:"minSimilarity"`      // Jaccard cutoff
	MaxNeighbors       int     `yaml:"maxNeighbors"`       // similarity list cap
	ColdStartThreshold int     `yaml:"coldStartThreshold"` // events below: no neighbors

	// Blender
	DefaultContentWeight float64 `yaml:"defaultContentWeight"` // content vs collaborative mix
	CoOccurrenceBonus    float64 `yaml:"coOccurrenceBonus"`    // multiplier for items in both lists
	MaxPerPrimaryTag     int     `yaml:"maxPerPrimaryTag"`     // diversity cap per tag group

	// Seasonal boost
	DefaultPromotionBoost float64 `yaml:"defaultPromotionBoost"`
	DefaultTypeBoost      float64 `yaml:"defaultTypeBoost"`
}

// DefaultEngine returns the shipped tuning table.
func DefaultEngine() *Engine {
	return &Engine{
		ActionWeights: map[string]float64{
			"view":     0.5,
			"click":    0.8,
			"like":     1.0,
			"comment":  1.2,
			"complete": 1.5,
			"save":     2.0,
			"share":    2.0,
			"dislike":  -1.5,
		},
		TypeCompletionWeights: map[string]float64{
			"article":  1.0,
			"recipe":   0.8,
			"quiz":     1.2,
			"tutorial": 1.0,
			"video":    1.1,
		},
		MaxLearningEvents: 500,
		MinInteractions:   20,
		AvoidTagShare:     0.2,
		BoostTagShare:     0.2,
		TimeSlotShare:     0.3,
		DiversityHigh:     0.7,
		DiversityLow:      0.3,

		RecencyHalfLifeDays: 30,
		OversampleFactor:    3,

		HistoryLimit:       100,
		MinSharedContent:   3,
		MinSimilarity:      0.1,
		MaxNeighbors:       50,
		ColdStartThreshold: 5,

		DefaultContentWeight: 0.4,
		CoOccurrenceBonus:    1.2,
		MaxPerPrimaryTag:     3,

		DefaultPromotionBoost: 1.5,
		DefaultTypeBoost:      1.3,
	}
}

// LoadEngine reads engine tunables from a YAML file. An empty path returns the
// defaults. Fields missing from the file keep their default value.
func LoadEngine(path string) (*Engine, error) {
	engine := DefaultEngine()
	if path == "" {
		return engine, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read engine config: %w", err)
	}

	if err := yaml.Unmarshal(data, engine); err != nil {
		return nil, fmt.Errorf("failed to parse engine config: %w", err)
	}

	return engine, nil
}

// ActionWeight returns the signed weight for an action, 0 for unknown actions.
func (e *Engine) ActionWeight(action string) float64 {
	return e.ActionWeights[action]
}
