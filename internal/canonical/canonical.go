package canonical

import (
	_ "embed"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed canonical.yaml
var canonicalYAML []byte

var (
	labelsOnce sync.Once
	labels     []string
)

// Labels returns the canonical category list in declaration order.
func Labels() []string {
	labelsOnce.Do(func() {
		if err := yaml.Unmarshal(canonicalYAML, &labels); err != nil {
			panic("canonical: invalid canonical.yaml: " + err.Error())
		}
	})
	return labels
}

// Mapping is the result of matching one raw label against the canonical list.
type Mapping struct {
	Category   string  `json:"category"`
	Score      float64 `json:"score"`
	Method     string  `json:"method"` // exact|fuzzy
	Original   string  `json:"original,omitempty"`
	Normalized string  `json:"normalized,omitempty"`
}

type Action string

const (
	ActionAutoAccept Action = "auto_accept"
	ActionReview     Action = "review"
	ActionCreateNew  Action = "create_new"
	ActionReject     Action = "reject"
)

// Thresholds are caller-supplied per call, not global state.
type Thresholds struct {
	AutoAccept float64 `json:"autoAccept"`
	Review     float64 `json:"review"`
	CreateNew  float64 `json:"createNew"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{AutoAccept: 0.8, Review: 0.5, CreateNew: 0.3}
}

// Decision is a Mapping plus its confidence-based disposition.
type Decision struct {
	Mapping
	Action     Action  `json:"action"`
	Confidence float64 `json:"confidence"`
}

// Summary aggregates a batch of decisions for human review workflows.
type Summary struct {
	Total       int            `json:"total"`
	ByAction    map[Action]int `json:"byAction"`
	Decisions   []Decision     `json:"decisions"`
	NeedsReview []Decision     `json:"needsReview"`
}

// Mapper matches raw category labels against a fixed canonical list.
// Stateless across calls; safe for concurrent use.
type Mapper struct {
	sim        Similarity
	categories []string
	normalized []string
}

// NewMapper builds a mapper over the embedded canonical list.
func NewMapper(sim Similarity) *Mapper {
	return NewMapperWith(sim, Labels())
}

// NewMapperWith builds a mapper over an explicit canonical list. Each entry
// is normalized once up front with the same function applied to inputs.
func NewMapperWith(sim Similarity, categories []string) *Mapper {
	m := &Mapper{
		sim:        sim,
		categories: categories,
		normalized: make([]string, len(categories)),
	}
	for i, c := range categories {
		m.normalized[i] = NormalizeText(c)
	}
	return m
}

// MapToCanonical normalizes raw and resolves it to the closest canonical
// entry: exact match first (score 1), otherwise the single best fuzzy score.
// Ties keep the earlier list entry.
func (m *Mapper) MapToCanonical(raw string) Mapping {
	norm := NormalizeText(raw)
	for i, cn := range m.normalized {
		if cn == norm {
			return Mapping{
				Category:   m.categories[i],
				Score:      1,
				Method:     "exact",
				Original:   raw,
				Normalized: norm,
			}
		}
	}
	best := Mapping{Method: "fuzzy", Original: raw, Normalized: norm}
	for i, cn := range m.normalized {
		s := m.sim.Score(norm, cn)
		if best.Category == "" || s > best.Score {
			best.Category = m.categories[i]
			best.Score = s
		}
	}
	return best
}

// ProcessCategory maps raw and picks an action by descending threshold
// comparison.
func (m *Mapper) ProcessCategory(raw string, t Thresholds) Decision {
	mp := m.MapToCanonical(raw)
	d := Decision{Mapping: mp, Confidence: mp.Score}
	switch {
	case mp.Score >= t.AutoAccept:
		d.Action = ActionAutoAccept
	case mp.Score >= t.Review:
		d.Action = ActionReview
	case mp.Score >= t.CreateNew:
		d.Action = ActionCreateNew
	default:
		d.Action = ActionReject
	}
	return d
}

// ProcessCategories runs ProcessCategory over every input and aggregates
// per-action counts plus the non-auto-accepted subset. No side effects.
func (m *Mapper) ProcessCategories(raws []string, t Thresholds) Summary {
	sum := Summary{
		Total:    len(raws),
		ByAction: make(map[Action]int, 4),
	}
	for _, raw := range raws {
		d := m.ProcessCategory(raw, t)
		sum.ByAction[d.Action]++
		sum.Decisions = append(sum.Decisions, d)
		if d.Action != ActionAutoAccept {
			sum.NeedsReview = append(sum.NeedsReview, d)
		}
	}
	return sum
}
