// Package placement fuses independent heuristic signals into a single
// zone classification per visual element. The fusion is a deterministic
// weighted-max reduction, not a cascade of conditionals: every signal
// contributes a {zone, weight} pair and the zone with the highest
// accumulated weight wins, ties broken by signal-source precedence.
package placement

import (
	"github.com/sitetruth/sitetruth/models"
	"github.com/sitetruth/sitetruth/pkg/signals"
)

// MaxConfidence caps every classification below full certainty. The
// signals are heuristics and a perfect 1.0 would misrepresent them.
const MaxConfidence = 0.95

// fallbackConfidence is assigned when no signal fires. A plain inline
// image is the common case, not an error.
const fallbackConfidence = 0.25

// sourceRank orders signal sources for tie-breaking:
// DOM context > URL pattern > geometry.
var sourceRank = map[models.SignalSource]int{
	models.SourceDOMContext: 0,
	models.SourceURLPattern: 1,
	models.SourceGeometry:   2,
}

// Classify fuses the DOM-context, URL-pattern, and geometry signals for
// one element into a PlacementRef. Geometry is optional; pass nil when
// the element carries no dimensions.
func Classify(ctx signals.DOMContext, src string, geo *signals.Geometry) models.PlacementRef {
	var contributing []models.Signal

	if sig := signals.FromDOM(ctx); sig != nil {
		contributing = append(contributing, *sig)
	}
	if sig := signals.FromURL(src); sig != nil {
		contributing = append(contributing, *sig)
	}
	if geo != nil {
		if sig := signals.FromGeometry(*geo); sig != nil {
			contributing = append(contributing, *sig)
		}
	}

	if len(contributing) == 0 {
		return models.PlacementRef{Zone: models.ZoneInline, Confidence: fallbackConfidence}
	}

	return models.PlacementRef{
		Zone:       reduce(contributing),
		Confidence: confidence(contributing),
		Signals:    contributing,
	}
}

// zoneTally tracks the accumulated evidence for one candidate zone.
type zoneTally struct {
	weight float64
	rank   int // best (lowest) source rank among supporting signals
	order  int // first evaluation index, preserves determinism
}

// reduce picks the zone with the highest accumulated weight. Ties
// resolve by source precedence, never by averaging: a DOM logo match
// against a URL hero match must yield logo, not some blend.
func reduce(sigs []models.Signal) models.PlacementZone {
	tallies := make(map[models.PlacementZone]*zoneTally)
	for i, sig := range sigs {
		tally, ok := tallies[sig.Zone]
		if !ok {
			tally = &zoneTally{rank: sourceRank[sig.Source], order: i}
			tallies[sig.Zone] = tally
		}
		tally.weight += sig.Weight
		if r := sourceRank[sig.Source]; r < tally.rank {
			tally.rank = r
		}
	}

	var winner models.PlacementZone
	var best *zoneTally
	for zone, tally := range tallies {
		if best == nil || better(tally, best) {
			winner = zone
			best = tally
		}
	}
	return winner
}

func better(a, b *zoneTally) bool {
	if a.weight != b.weight {
		return a.weight > b.weight
	}
	if a.rank != b.rank {
		return a.rank < b.rank
	}
	return a.order < b.order
}

// confidence normalizes the winning zone's accumulated weight into
// [0, MaxConfidence].
func confidence(sigs []models.Signal) float64 {
	winner := reduce(sigs)
	var total float64
	for _, sig := range sigs {
		if sig.Zone == winner {
			total += sig.Weight
		}
	}
	if total < 0 {
		return 0
	}
	if total > MaxConfidence {
		return MaxConfidence
	}
	return total
}
