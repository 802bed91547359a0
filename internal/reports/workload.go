package reports

import (
	"math"
	"sort"

	"ria-analytics/internal/sla"
	"ria-analytics/internal/snapshot"
)

// WorkloadStatus labels an officer's current load.
type WorkloadStatus string

const (
	WorkloadNormal     WorkloadStatus = "normal"
	WorkloadBusy       WorkloadStatus = "busy"
	WorkloadOverloaded WorkloadStatus = "overloaded"
)

// OfficerWorkload summarizes one officer's assigned submissions and
// historical handling time. AvgHandlingDays averages completed submissions
// only; those missing either timestamp are excluded from the mean rather
// than counted as zero.
type OfficerWorkload struct {
	OfficerID       string         `json:"officerId"`
	OfficerName     string         `json:"officerName"`
	TotalAssigned   int            `json:"totalAssigned"`
	Active          int            `json:"active"`
	Completed       int            `json:"completed"`
	AvgHandlingDays float64        `json:"avgHandlingDays"`
	Status          WorkloadStatus `json:"status"`
}

func classifyWorkload(active int) WorkloadStatus {
	switch {
	case active > 5:
		return WorkloadOverloaded
	case active > 3:
		return WorkloadBusy
	default:
		return WorkloadNormal
	}
}

// OfficerWorkloads groups submissions by assigned officer. Officers with no
// assigned submissions never appear. Sorted by officer name, then ID.
func OfficerWorkloads(snap *snapshot.Snapshot) []OfficerWorkload {
	type accum struct {
		workload    OfficerWorkload
		handlingSum int
		handlingObs int
	}
	byOfficer := make(map[string]*accum)

	for _, sub := range snap.Submissions {
		if sub.AssignedOfficerID == "" {
			continue
		}

		acc, ok := byOfficer[sub.AssignedOfficerID]
		if !ok {
			name := sub.AssignedOfficerName
			if name == "" {
				if p, found := snap.StaffByID(sub.AssignedOfficerID); found {
					name = p.FullName
				}
			}
			acc = &accum{workload: OfficerWorkload{
				OfficerID:   sub.AssignedOfficerID,
				OfficerName: name,
			}}
			byOfficer[sub.AssignedOfficerID] = acc
		}

		acc.workload.TotalAssigned++
		if sub.IsCompleted() {
			acc.workload.Completed++
			if sub.SubmittedAt != nil && sub.CompletedAt != nil {
				acc.handlingSum += sla.DaysBetween(*sub.SubmittedAt, *sub.CompletedAt)
				acc.handlingObs++
			}
		} else {
			acc.workload.Active++
		}
	}

	var out []OfficerWorkload
	for _, acc := range byOfficer {
		w := acc.workload
		if acc.handlingObs > 0 {
			w.AvgHandlingDays = math.Round(float64(acc.handlingSum)/float64(acc.handlingObs)*10) / 10
		}
		w.Status = classifyWorkload(w.Active)
		out = append(out, w)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].OfficerName != out[j].OfficerName {
			return out[i].OfficerName < out[j].OfficerName
		}
		return out[i].OfficerID < out[j].OfficerID
	})

	return out
}
