package datastore

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/aleister1102/drivewatch/internal/models"
)

// AggregateDaily rolls the change log up for one day. A row is included iff
// the date prefix of its timestamp equals dateKey (layout 2006-01-02).
func (d *DB) AggregateDaily(dateKey string) (*models.SummaryRecord, error) {
	if _, err := time.Parse(DateKeyLayout, dateKey); err != nil {
		return nil, fmt.Errorf("invalid date key %q: %w", dateKey, err)
	}

	rows, err := d.readAllRows()
	if err != nil {
		return nil, err
	}

	summary := newSummaryRecord(dateKey, dateKey)
	folders := make(map[string]*models.FolderActivity)
	for _, row := range rows {
		if !rowInRange(row, dateKey, dateKey) {
			continue
		}
		accumulate(summary, folders, row)
	}

	summary.ByFolder = sortedFolders(folders)
	return summary, nil
}

// AggregateWeekly rolls the change log up for an inclusive date range,
// additionally producing a dense per-day breakdown (zero-activity days
// included) and trend deltas versus the immediately preceding period of
// equal length.
func (d *DB) AggregateWeekly(startDate, endDate string) (*models.SummaryRecord, error) {
	start, err := time.Parse(DateKeyLayout, startDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	end, err := time.Parse(DateKeyLayout, endDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", endDate, err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end date %s precedes start date %s", endDate, startDate)
	}

	rows, err := d.readAllRows()
	if err != nil {
		return nil, err
	}

	summary := newSummaryRecord(startDate, endDate)
	folders := make(map[string]*models.FolderActivity)
	days := make(map[string]*models.DayActivity)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := day.Format(DateKeyLayout)
		days[key] = &models.DayActivity{Date: key}
	}

	for _, row := range rows {
		if !rowInRange(row, startDate, endDate) {
			continue
		}
		accumulate(summary, folders, row)
		if day, ok := days[rowDateKey(row)]; ok {
			day.Total++
			switch models.ChangeType(row.ChangeType) {
			case models.ChangeTypeCreated:
				day.Created++
			case models.ChangeTypeModified:
				day.Modified++
			case models.ChangeTypeDeleted:
				day.Deleted++
			}
		}
	}

	summary.ByFolder = sortedFolders(folders)
	summary.ByDay = sortedDays(days)

	trends, err := d.computeTrends(summary, start, end)
	if err != nil {
		return nil, err
	}
	summary.Trends = trends
	return summary, nil
}

// computeTrends compares the summary against the preceding period of equal
// length by re-running the daily aggregation across the shifted range and
// summing. O(rows x days-in-range), intentionally simple.
func (d *DB) computeTrends(current *models.SummaryRecord, start, end time.Time) (*models.SummaryTrends, error) {
	periodDays := int(end.Sub(start).Hours()/24) + 1

	priorTotal := 0
	priorByType := make(map[models.ChangeType]int)
	for offset := periodDays; offset >= 1; offset-- {
		dayKey := start.AddDate(0, 0, -offset).Format(DateKeyLayout)
		daily, err := d.AggregateDaily(dayKey)
		if err != nil {
			return nil, err
		}
		priorTotal += daily.Total
		for changeType, count := range daily.ByType {
			priorByType[changeType] += count
		}
	}

	byTypePct := make(map[models.ChangeType]int)
	for _, changeType := range []models.ChangeType{models.ChangeTypeCreated, models.ChangeTypeModified, models.ChangeTypeDeleted} {
		byTypePct[changeType] = percentDelta(current.ByType[changeType], priorByType[changeType])
	}

	return &models.SummaryTrends{
		PreviousTotal: priorTotal,
		TotalPct:      percentDelta(current.Total, priorTotal),
		ByTypePct:     byTypePct,
	}, nil
}

// percentDelta rounds to the nearest integer. A zero baseline yields 0%, not
// an error or infinity: absence of history must not block reporting.
func percentDelta(current, prior int) int {
	if prior == 0 {
		return 0
	}
	return int(math.Round(float64(current-prior) / float64(prior) * 100))
}

func newSummaryRecord(startDate, endDate string) *models.SummaryRecord {
	return &models.SummaryRecord{
		StartDate: startDate,
		EndDate:   endDate,
		ByType: map[models.ChangeType]int{
			models.ChangeTypeCreated:  0,
			models.ChangeTypeModified: 0,
			models.ChangeTypeDeleted:  0,
		},
	}
}

func rowDateKey(row logRow) string {
	if len(row.LoggedAt) < len(DateKeyLayout) {
		return ""
	}
	return row.LoggedAt[:len(DateKeyLayout)]
}

// rowInRange matches on the date prefix of the stored timestamp. ISO dates
// compare correctly as strings.
func rowInRange(row logRow, startDate, endDate string) bool {
	key := rowDateKey(row)
	return key != "" && key >= startDate && key <= endDate
}

func accumulate(summary *models.SummaryRecord, folders map[string]*models.FolderActivity, row logRow) {
	summary.Total++
	changeType := models.ChangeType(row.ChangeType)
	summary.ByType[changeType]++

	switch changeType {
	case models.ChangeTypeCreated, models.ChangeTypeModified:
		activity, ok := folders[row.FolderID]
		if !ok {
			activity = &models.FolderActivity{FolderID: row.FolderID, FolderName: row.FolderName}
			folders[row.FolderID] = activity
		}
		if changeType == models.ChangeTypeCreated {
			activity.Created++
		} else {
			activity.Modified++
		}
	}
}

func sortedFolders(folders map[string]*models.FolderActivity) []models.FolderActivity {
	result := make([]models.FolderActivity, 0, len(folders))
	for _, activity := range folders {
		result = append(result, *activity)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].FolderID < result[j].FolderID })
	return result
}

func sortedDays(days map[string]*models.DayActivity) []models.DayActivity {
	result := make([]models.DayActivity, 0, len(days))
	for _, day := range days {
		result = append(result, *day)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result
}
