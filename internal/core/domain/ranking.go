package domain

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/qualitec/erp-backend/internal/core/errors"
)

// Scoring policy. The base and the per-severity deductions are fixed business
// rules, not configuration; changing them changes the visible contract of
// every published ranking.
const (
	BaseScore = 100

	PenaltyLeve       = 5
	PenaltyMedia      = 10
	PenaltyGrave      = 20
	PenaltyGravissima = 40

	// PodiumSize is how many leading entries are highlighted.
	PodiumSize = 3
)

// RankingEntry is the derived, never-persisted score line for one employee.
type RankingEntry struct {
	EmployeeID   uuid.UUID
	EmployeeName string
	BranchID     uuid.UUID
	BranchName   string

	LeveCount       int
	MediaCount      int
	GraveCount      int
	GravissimaCount int

	TotalCount int
	Score      int
	Position   int
}

// Perfect reports whether the employee had no incidents in the period.
func (e RankingEntry) Perfect() bool {
	return e.TotalCount == 0
}

// Ranking is the full leaderboard for one period plus its aggregate stats,
// all reduced from the same entry set.
type Ranking struct {
	Entries        []RankingEntry
	TotalEmployees int
	PerfectCount   int
	PerfectPercent float64
	AverageScore   float64

	// OrphanCount is the number of incidents that referenced an employee
	// outside the scored roster. They never count toward any score, but the
	// caller is expected to log them; a data anomaly must not be invisible.
	OrphanCount int
}

// Podium returns up to the top three entries.
func (r *Ranking) Podium() []RankingEntry {
	if len(r.Entries) <= PodiumSize {
		return r.Entries
	}
	return r.Entries[:PodiumSize]
}

// ComputeRanking scores every employee in the roster against the given
// incidents and produces the sorted leaderboard.
//
// The incidents are expected to be employee-linked records already filtered
// to the reporting period and branch scope; client-attributed records
// (nil employee reference) are skipped. An incident carrying a severity
// outside the closed set aborts the whole computation: silently miscounting
// is worse than failing.
//
// Ordering is deterministic: score descending, then employee name ascending
// (case-folded), then employee id.
func ComputeRanking(employees []*Employee, incidents []*NonConformance) (*Ranking, error) {
	type counts struct {
		leve, media, grave, gravissima int
	}

	roster := make(map[uuid.UUID]*Employee, len(employees))
	for _, emp := range employees {
		roster[emp.ID] = emp
	}

	perEmployee := make(map[uuid.UUID]counts)
	orphans := 0

	for _, nc := range incidents {
		if !nc.IsEmployeeLinked() {
			continue
		}
		if !nc.Severity.Valid() {
			return nil, apperrors.ErrUnknownSeverity
		}
		if _, ok := roster[*nc.EmployeeID]; !ok {
			orphans++
			continue
		}

		c := perEmployee[*nc.EmployeeID]
		switch nc.Severity {
		case SeverityLeve:
			c.leve++
		case SeverityMedia:
			c.media++
		case SeverityGrave:
			c.grave++
		case SeverityGravissima:
			c.gravissima++
		}
		perEmployee[*nc.EmployeeID] = c
	}

	entries := make([]RankingEntry, 0, len(employees))
	for _, emp := range employees {
		c := perEmployee[emp.ID]
		total := c.leve + c.media + c.grave + c.gravissima

		score := BaseScore -
			PenaltyLeve*c.leve -
			PenaltyMedia*c.media -
			PenaltyGrave*c.grave -
			PenaltyGravissima*c.gravissima
		if score < 0 {
			score = 0
		}

		entries = append(entries, RankingEntry{
			EmployeeID:      emp.ID,
			EmployeeName:    emp.FullName,
			BranchID:        emp.BranchID,
			BranchName:      emp.BranchName,
			LeveCount:       c.leve,
			MediaCount:      c.media,
			GraveCount:      c.grave,
			GravissimaCount: c.gravissima,
			TotalCount:      total,
			Score:           score,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		ni := strings.ToLower(entries[i].EmployeeName)
		nj := strings.ToLower(entries[j].EmployeeName)
		if ni != nj {
			return ni < nj
		}
		return entries[i].EmployeeID.String() < entries[j].EmployeeID.String()
	})

	perfect := 0
	scoreSum := 0
	for i := range entries {
		entries[i].Position = i + 1
		if entries[i].Perfect() {
			perfect++
		}
		scoreSum += entries[i].Score
	}

	ranking := &Ranking{
		Entries:        entries,
		TotalEmployees: len(entries),
		PerfectCount:   perfect,
		OrphanCount:    orphans,
	}

	// Both averages are defined as zero for an empty roster.
	if len(entries) > 0 {
		ranking.PerfectPercent = float64(perfect) / float64(len(entries)) * 100
		ranking.AverageScore = float64(scoreSum) / float64(len(entries))
	}

	return ranking, nil
}
