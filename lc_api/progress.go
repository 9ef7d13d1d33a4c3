package lc_api

import (
	"github.com/nraghuveer/lc-status/protocols"
)

type DifficultyProgress struct {
	Difficulty  string
	Solved      int
	Total       int
	Submissions int
}

// Fraction is Solved/Total in [0, 1]; 0 when the total is unknown.
func (dp DifficultyProgress) Fraction() float64 {
	if dp.Total <= 0 {
		return 0
	}
	f := float64(dp.Solved) / float64(dp.Total)
	if f > 1 {
		return 1
	}
	return f
}

// Progress is the per-difficulty breakdown of a profile, "All" first.
type Progress struct {
	rows []DifficultyProgress
}

func NewProgress(p *Profile) Progress {
	if p == nil {
		return Progress{}
	}
	rows := make([]DifficultyProgress, 0, len(p.SubmitStats))
	for _, stat := range p.SubmitStats {
		row := DifficultyProgress{
			Difficulty:  stat.Difficulty,
			Solved:      stat.Count,
			Total:       countFor(p.QuestionCounts, stat.Difficulty),
			Submissions: stat.Submissions,
		}
		if stat.Difficulty == DifficultyAll {
			rows = append([]DifficultyProgress{row}, rows...)
			continue
		}
		rows = append(rows, row)
	}
	return Progress{rows: rows}
}

func (p Progress) Len() int { return len(p.rows) }

func (p Progress) CreateIterator() protocols.Iterator[DifficultyProgress] {
	return protocols.FromSlice(p.rows)
}
