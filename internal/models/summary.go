package models

// FolderActivity is the per-folder breakdown of a summary period. FolderID is
// kept so notification formatters can deep-link back to the folder.
type FolderActivity struct {
	FolderID   string
	FolderName string
	Created    int
	Modified   int
}

// DayActivity is the per-calendar-day breakdown of a weekly summary. Days
// with zero activity are included so the breakdown is dense.
type DayActivity struct {
	Date     string // 2006-01-02
	Created  int
	Modified int
	Deleted  int
	Total    int
}

// SummaryTrends carries percentage deltas versus the immediately preceding
// period of equal length. A zero prior-period baseline yields a 0% delta.
type SummaryTrends struct {
	PreviousTotal int
	TotalPct      int
	ByTypePct     map[ChangeType]int
}

// SummaryRecord is a derived, point-in-time rollup of the change log.
type SummaryRecord struct {
	StartDate string // 2006-01-02, inclusive
	EndDate   string // 2006-01-02, inclusive; equals StartDate for daily summaries
	Total     int
	ByType    map[ChangeType]int
	ByFolder  []FolderActivity
	ByDay     []DayActivity  // weekly summaries only
	Trends    *SummaryTrends // weekly summaries only
}
