package resolve

import (
	"sort"

	"github.com/nikeokoronkwo/swift-devenv/pkg/manifest"
	"github.com/nikeokoronkwo/swift-devenv/pkg/platform"
)

// Candidate is a source that applies to the host, paired with its rank.
type Candidate struct {
	Source manifest.Source
	Rank   platform.Vector
}

// Select filters sources to those applicable to host and orders them by
// descending specificity. A source with an empty platform list is always
// eligible and ranks as the all-false vector, so it loses to any source
// pinning at least one host axis but survives as the universal fallback.
//
// The sort is stable: equally specific sources keep their declaration
// order, which makes file order the designed tie-break. An empty result
// means no declared source applies to the host.
func Select(host platform.Identifier, sources []manifest.Source) []Candidate {
	var out []Candidate
	for _, src := range sources {
		rank, eligible := sourceRank(host, src)
		if !eligible {
			continue
		}
		out = append(out, Candidate{Source: src, Rank: rank})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rank.Compare(out[j].Rank) > 0
	})
	return out
}

// sourceRank computes a source's rank against host: the maximum specificity
// vector over its matching platform identifiers. Identifiers that do not
// match the host contribute nothing; a declaration for another machine
// must not raise a source's rank here.
func sourceRank(host platform.Identifier, src manifest.Source) (platform.Vector, bool) {
	platforms := src.Platforms()
	if len(platforms) == 0 {
		return platform.Vector{}, true
	}

	var best platform.Vector
	matched := false
	for _, id := range platforms {
		if !id.Matches(host) {
			continue
		}
		v := platform.Specificity(id, host)
		if !matched {
			best = v
			matched = true
			continue
		}
		best = best.Max(v)
	}
	return best, matched
}
