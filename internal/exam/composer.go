// Package exam composes practice exams from stored questions.
package exam

import (
	"context"
	"log/slog"
	"math/rand"
	"sort"
	"time"

	"examforge/internal/common"
	"examforge/internal/entity"
	"examforge/internal/repository"
)

// Mode picks the selection strategy for a composed exam.
type Mode string

const (
	ModeRandom Mode = "random"
	ModeUnseen Mode = "unseen"
	ModeWeak   Mode = "weak"
)

// ParseMode maps a request string onto a Mode. Empty means random.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "":
		return ModeRandom, nil
	case ModeRandom, ModeUnseen, ModeWeak:
		return Mode(s), nil
	}
	return "", common.InvalidArgumentErrorf("unknown exam mode %q", s)
}

// Composer selects questions for practice exams. Only graded questions
// with at least two choices are eligible; a series is either included
// whole, in sequence order, or not at all.
type Composer struct {
	questions repository.QuestionStore
	stats     repository.DomainStatStore
	logger    *slog.Logger
	rng       *rand.Rand
}

func NewComposer(questions repository.QuestionStore, stats repository.DomainStatStore, logger *slog.Logger) *Composer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Composer{
		questions: questions,
		stats:     stats,
		logger:    logger,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// unit is one atomic block of the selection: a whole series, or a single
// standalone question.
type unit struct {
	members []*entity.Question
}

// Compose returns up to count questions picked by mode. Series blocks are
// placed first, standalone questions fill the remainder.
func (c *Composer) Compose(ctx context.Context, mode Mode, count int) ([]*entity.Question, error) {
	if count <= 0 {
		return nil, common.InvalidArgumentError("question count must be positive")
	}

	all, err := c.questions.List(ctx)
	if err != nil {
		return nil, err
	}

	var eligible []*entity.Question
	for _, q := range all {
		if q.QuestionType.Graded() && len(q.Choices) >= 2 {
			eligible = append(eligible, q)
		}
	}
	if len(eligible) == 0 {
		return nil, common.NotFoundError("no questions available")
	}

	series, standalone := partition(eligible)
	if err := c.order(ctx, mode, series, standalone); err != nil {
		return nil, err
	}

	selected := make([]*entity.Question, 0, count)
	remaining := count
	for _, u := range series {
		if remaining == 0 {
			break
		}
		if len(u.members) > remaining {
			continue
		}
		selected = append(selected, u.members...)
		remaining -= len(u.members)
	}
	for _, q := range standalone {
		if remaining == 0 {
			break
		}
		selected = append(selected, q)
		remaining--
	}

	c.logger.Info("exam.compose.ok",
		"mode", string(mode),
		"requested", count,
		"selected", len(selected),
		"series_blocks", len(series))
	return selected, nil
}

// partition splits eligible questions into series units (first-appearance
// order, members sorted by sequence number) and standalone questions.
func partition(eligible []*entity.Question) ([]*unit, []*entity.Question) {
	var series []*unit
	var standalone []*entity.Question
	byID := make(map[string]*unit)

	for _, q := range eligible {
		if q.SeriesID == nil || *q.SeriesID == "" {
			standalone = append(standalone, q)
			continue
		}
		u, ok := byID[*q.SeriesID]
		if !ok {
			u = &unit{}
			byID[*q.SeriesID] = u
			series = append(series, u)
		}
		u.members = append(u.members, q)
	}

	for _, u := range series {
		sort.SliceStable(u.members, func(i, j int) bool {
			return u.members[i].SequenceNumber < u.members[j].SequenceNumber
		})
	}
	return series, standalone
}

// order arranges series units and standalone questions for the mode.
// Weak mode without any answer history degrades to random.
func (c *Composer) order(ctx context.Context, mode Mode, series []*unit, standalone []*entity.Question) error {
	switch mode {
	case ModeUnseen:
		sort.SliceStable(series, func(i, j int) bool {
			return minShown(series[i]) < minShown(series[j])
		})
		sort.SliceStable(standalone, func(i, j int) bool {
			return standalone[i].TimesShown < standalone[j].TimesShown
		})
		return nil

	case ModeWeak:
		weights, err := c.weights(ctx, series, standalone)
		if err != nil {
			return err
		}
		if len(weights) > 0 {
			sort.SliceStable(series, func(i, j int) bool {
				return unitWeight(series[i], weights) > unitWeight(series[j], weights)
			})
			sort.SliceStable(standalone, func(i, j int) bool {
				return weights[standalone[i].StableID] > weights[standalone[j].StableID]
			})
			return nil
		}
	}

	c.rng.Shuffle(len(series), func(i, j int) {
		series[i], series[j] = series[j], series[i]
	})
	c.rng.Shuffle(len(standalone), func(i, j int) {
		standalone[i], standalone[j] = standalone[j], standalone[i]
	})
	return nil
}

// weights scores every eligible question in [0.1, 1], higher meaning
// historically weaker. The weight lives in this map keyed by stable id,
// never on the question itself. An empty map means no domain has any
// recorded answers yet.
func (c *Composer) weights(ctx context.Context, series []*unit, standalone []*entity.Question) (map[string]float64, error) {
	stats, err := c.stats.List(ctx)
	if err != nil {
		return nil, err
	}

	domainWeights := make(map[string]float64)
	for _, st := range stats {
		if st.TotalShown == 0 {
			continue
		}
		domainWeights[st.DomainID] = clampWeight(1.0 - st.Accuracy())
	}
	if len(domainWeights) == 0 {
		return nil, nil
	}

	weights := make(map[string]float64)
	score := func(q *entity.Question) {
		w, ok := domainWeights[q.DomainID]
		if !ok {
			w = 0.5
		}
		if q.TimesShown > 0 {
			w = (w + clampWeight(1.0-q.Accuracy())) / 2
		}
		weights[q.StableID] = w
	}
	for _, u := range series {
		for _, q := range u.members {
			score(q)
		}
	}
	for _, q := range standalone {
		score(q)
	}
	return weights, nil
}

func unitWeight(u *unit, weights map[string]float64) float64 {
	if len(u.members) == 0 {
		return 0
	}
	sum := 0.0
	for _, q := range u.members {
		sum += weights[q.StableID]
	}
	return sum / float64(len(u.members))
}

func minShown(u *unit) int {
	least := u.members[0].TimesShown
	for _, q := range u.members[1:] {
		if q.TimesShown < least {
			least = q.TimesShown
		}
	}
	return least
}

func clampWeight(w float64) float64 {
	if w < 0.1 {
		return 0.1
	}
	return w
}
