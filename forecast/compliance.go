package forecast

// Compliance aggregation: pure arithmetic over projected and completed
// totals already filtered to the caller's year/month/eps selection.

// ProjectedTotal is a projected quantity grouped by (eps, specialty).
type ProjectedTotal struct {
	EPSID         uint   `json:"eps_id"`
	EPSName       string `json:"eps_name"`
	SpecialtyID   uint   `json:"specialty_id"`
	SpecialtyName string `json:"specialty_name"`
	ProjectedQty  int    `json:"projected_qty"`
}

// CompletedTotal is a completed-appointment sum grouped by (eps, specialty).
type CompletedTotal struct {
	EPSID        uint `json:"eps_id"`
	SpecialtyID  uint `json:"specialty_id"`
	CompletedQty int  `json:"completed_qty"`
}

// ReportRow is one compliance tuple of the report output.
type ReportRow struct {
	EPSID         uint   `json:"eps_id"`
	EPSName       string `json:"eps_name"`
	SpecialtyID   uint   `json:"specialty_id"`
	SpecialtyName string `json:"specialty_name"`
	ProjectedQty  int    `json:"projected_qty"`
	CompletedQty  int    `json:"completed_qty"`
	PendingQty    int    `json:"pending_qty"`
	Compliance    int    `json:"compliance"`
	Status        string `json:"status"`
}

// CalculateCompliance returns the integer compliance percentage, capped at
// 100. Over-delivery is never reported above 100 and a zero projection
// yields zero rather than dividing by it.
func CalculateCompliance(completed, projected int) int {
	if projected <= 0 {
		return 0
	}
	pct := completed * 100 / projected
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// ComplianceStatus classifies a percentage against the thresholds. Both
// checks are strict, so a value equal to a threshold lands in the higher
// bucket.
func ComplianceStatus(percentage int, t Thresholds) string {
	switch {
	case percentage < t.Red:
		return "danger"
	case percentage < t.Yellow:
		return "warning"
	default:
		return "success"
	}
}

// BuildReport joins projected totals with their completed counterparts into
// compliance tuples. Projected rows without a completed match count as zero
// completed; they are never dropped.
func BuildReport(projected []ProjectedTotal, completed []CompletedTotal, t Thresholds) []ReportRow {
	completedByKey := make(map[[2]uint]int, len(completed))
	for _, c := range completed {
		completedByKey[[2]uint{c.EPSID, c.SpecialtyID}] = c.CompletedQty
	}

	report := make([]ReportRow, 0, len(projected))
	for _, p := range projected {
		completedQty := completedByKey[[2]uint{p.EPSID, p.SpecialtyID}]
		pending := p.ProjectedQty - completedQty
		if pending < 0 {
			pending = 0
		}
		compliance := CalculateCompliance(completedQty, p.ProjectedQty)
		report = append(report, ReportRow{
			EPSID:         p.EPSID,
			EPSName:       p.EPSName,
			SpecialtyID:   p.SpecialtyID,
			SpecialtyName: p.SpecialtyName,
			ProjectedQty:  p.ProjectedQty,
			CompletedQty:  completedQty,
			PendingQty:    pending,
			Compliance:    compliance,
			Status:        ComplianceStatus(compliance, t),
		})
	}
	return report
}
