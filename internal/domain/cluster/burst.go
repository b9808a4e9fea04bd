package cluster

import (
	"github.com/lumeo/reel/internal/domain/model"
)

// refineBursts splits a temporally clustered group into burst and non-burst
// clusters. It only tightens grouping: every emitted cluster is a contiguous
// sub-sequence of the group, so boundaries drawn by the temporal pass are
// never widened. A maximal run of assets whose adjacent gaps are all within
// BurstThreshold becomes a burst when its length fits the configured bounds;
// everything else stays in ordinary clusters.
func (e *Engine) refineBursts(group []model.MediaAsset) []model.EventCluster {
	if len(group) == 1 {
		// A single asset is never a burst.
		return []model.EventCluster{{Assets: group}}
	}

	var out []model.EventCluster
	var pending []model.MediaAsset

	flush := func() {
		if len(pending) > 0 {
			out = append(out, model.EventCluster{Assets: pending})
			pending = nil
		}
	}

	i := 0
	for i < len(group) {
		// Extend the run while adjacent gaps stay within the burst window.
		j := i
		for j+1 < len(group) && group[j+1].CreatedAt.Sub(group[j].CreatedAt) <= e.cfg.BurstThreshold {
			j++
		}

		run := group[i : j+1]
		if len(run) >= e.cfg.MinBurstSize {
			flush()
			out = append(out, e.splitBurstRun(run)...)
		} else {
			// Too short for a burst: fold into the surrounding cluster.
			pending = append(pending, run...)
		}
		i = j + 1
	}
	flush()

	return out
}

// splitBurstRun turns a qualifying run into burst clusters. Runs longer than
// MaxBurstSize are split into maximal valid sub-bursts; a trailing remainder
// shorter than MinBurstSize is demoted to an ordinary cluster so the size
// bound holds for every flagged burst.
func (e *Engine) splitBurstRun(run []model.MediaAsset) []model.EventCluster {
	var out []model.EventCluster

	for len(run) > e.cfg.MaxBurstSize {
		out = append(out, model.EventCluster{
			Assets:  run[:e.cfg.MaxBurstSize],
			IsBurst: true,
		})
		run = run[e.cfg.MaxBurstSize:]
	}

	if len(run) >= e.cfg.MinBurstSize {
		out = append(out, model.EventCluster{Assets: run, IsBurst: true})
	} else if len(run) > 0 {
		out = append(out, model.EventCluster{Assets: run})
	}

	return out
}
