package matching

import (
	"math"
	"runtime"
	"sort"

	"skill-passport/internal/domain/job"

	"golang.org/x/sync/errgroup"
)

// minJobsPerWorker keeps small catalogs on a single goroutine.
const minJobsPerWorker = 64

type MatchResult struct {
	Job              job.Posting
	HardSkillPercent int
	SoftSkillPercent int
	MatchPercent     int
}

func (r MatchResult) JobID() string {
	return r.Job.ID
}

// ScoreJob scores a single posting against the hard and soft skill vectors.
// A posting without an embedding scores zero on every axis.
func ScoreJob(hard, soft []float64, j job.Posting) (MatchResult, error) {
	res := MatchResult{Job: j}
	if !j.HasEmbedding() {
		return res, nil
	}

	hardScore, err := CosineSimilarity(hard, j.Embedding)
	if err != nil {
		return MatchResult{}, err
	}
	softScore, err := CosineSimilarity(soft, j.Embedding)
	if err != nil {
		return MatchResult{}, err
	}
	overall := (hardScore + softScore) / 2

	res.HardSkillPercent = toPercent(hardScore)
	res.SoftSkillPercent = toPercent(softScore)
	res.MatchPercent = toPercent(overall)
	return res, nil
}

// ScoreAll scores every posting and returns them ranked by MatchPercent,
// highest first. Equal percentages keep their input order. The output always
// has one entry per input posting.
func ScoreAll(hard, soft []float64, jobs []job.Posting) ([]MatchResult, error) {
	out := make([]MatchResult, len(jobs))
	if len(jobs) == 0 {
		return out, nil
	}

	workers := runtime.GOMAXPROCS(0)
	if limit := (len(jobs) + minJobsPerWorker - 1) / minJobsPerWorker; workers > limit {
		workers = limit
	}
	chunk := (len(jobs) + workers - 1) / workers

	var g errgroup.Group
	for start := 0; start < len(jobs); start += chunk {
		end := start + chunk
		if end > len(jobs) {
			end = len(jobs)
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				res, err := ScoreJob(hard, soft, jobs[i])
				if err != nil {
					return err
				}
				out[i] = res
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchPercent > out[j].MatchPercent
	})
	return out, nil
}

// toPercent rounds half away from zero and clamps to [0,100].
func toPercent(score float64) int {
	p := int(math.Round(score * 100))
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
