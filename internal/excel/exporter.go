package excel

import (
	"fmt"

	"github.com/example/studytrack/pkg/models"
	"github.com/xuri/excelize/v2"
)

// ExportResult holds the result of an export operation
type ExportResult struct {
	FilePath string
	Sheets   int
	Rows     int
}

// ExportReport writes the dashboard to an .xlsx workbook, one sheet per
// derived view. The layout is plain cells; styling is left to whoever opens
// the report.
func ExportReport(path string, dash models.Dashboard) (*ExportResult, error) {
	f := excelize.NewFile()
	defer f.Close()

	result := &ExportResult{FilePath: path}

	if err := writeOverview(f, dash, result); err != nil {
		return nil, err
	}
	if err := writePapers(f, dash, result); err != nil {
		return nil, err
	}
	if err := writeTrend(f, dash, result); err != nil {
		return nil, err
	}
	if err := writeSubjects(f, dash, result); err != nil {
		return nil, err
	}
	if err := writePeakHours(f, dash, result); err != nil {
		return nil, err
	}
	if err := writeRevision(f, dash, result); err != nil {
		return nil, err
	}
	if err := writeQuizzes(f, dash, result); err != nil {
		return nil, err
	}

	// The default sheet was replaced by Overview.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %v", err)
	}
	if err := f.SaveAs(path); err != nil {
		return nil, fmt.Errorf("failed to save report: %v", err)
	}
	return result, nil
}

func newSheet(f *excelize.File, name string, result *ExportResult) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %v", name, err)
	}
	result.Sheets++
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values ...interface{}) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("failed to write %s!%s: %v", sheet, cell, err)
		}
	}
	return nil
}

func writeOverview(f *excelize.File, dash models.Dashboard, result *ExportResult) error {
	const sheet = "Overview"
	if err := newSheet(f, sheet, result); err != nil {
		return err
	}
	rows := [][]interface{}{
		{"Generated", dash.GeneratedAt.Format("2006-01-02 15:04")},
		{"Range", dash.Range},
		{"Total hours", dash.TotalHours},
		{"Daily average (h)", dash.DailyAverage},
		{"This week (h)", dash.Weekly.ThisWeekHours},
		{"Last week (h)", dash.Weekly.LastWeekHours},
		{"Weekly change (%)", dash.Weekly.ChangePercent},
		{"Consistency score", dash.ConsistencyScore},
		{"Current streak", dash.CurrentStreak},
		{"Topics due", dash.DueCount},
		{"Average quiz accuracy (%)", dash.AverageAccuracy},
	}
	for i, r := range rows {
		if err := writeRow(f, sheet, i+1, r...); err != nil {
			return err
		}
		result.Rows++
	}
	return nil
}

func writePapers(f *excelize.File, dash models.Dashboard, result *ExportResult) error {
	const sheet = "Papers"
	if err := newSheet(f, sheet, result); err != nil {
		return err
	}
	if err := writeRow(f, sheet, 1, "Paper", "Topics", "Completed", "Progress (%)", "Hours"); err != nil {
		return err
	}
	hours := map[string]float64{}
	for _, ph := range dash.PaperHours {
		hours[ph.ID] = ph.Hours
	}
	row := 2
	for _, p := range dash.Papers {
		if err := writeRow(f, sheet, row, p.Name, p.TotalNodeCount, p.CompletedNodeCount, p.ProgressPercent, hours[p.ID]); err != nil {
			return err
		}
		row++
		result.Rows++
	}
	if other, ok := hours["other"]; ok {
		if err := writeRow(f, sheet, row, "Other", "", "", "", other); err != nil {
			return err
		}
		result.Rows++
	}
	return nil
}

func writeTrend(f *excelize.File, dash models.Dashboard, result *ExportResult) error {
	const sheet = "Daily Trend"
	if err := newSheet(f, sheet, result); err != nil {
		return err
	}
	if err := writeRow(f, sheet, 1, "Day", "Hours", "Sessions"); err != nil {
		return err
	}
	for i, p := range dash.Trend {
		if err := writeRow(f, sheet, i+2, p.Label, p.Hours, p.Sessions); err != nil {
			return err
		}
		result.Rows++
	}
	return nil
}

func writeSubjects(f *excelize.File, dash models.Dashboard, result *ExportResult) error {
	const sheet = "Subjects"
	if err := newSheet(f, sheet, result); err != nil {
		return err
	}
	if err := writeRow(f, sheet, 1, "Subject", "Hours"); err != nil {
		return err
	}
	for i, s := range dash.Subjects {
		if err := writeRow(f, sheet, i+2, s.Subject, s.Hours); err != nil {
			return err
		}
		result.Rows++
	}
	return nil
}

func writePeakHours(f *excelize.File, dash models.Dashboard, result *ExportResult) error {
	const sheet = "Peak Hours"
	if err := newSheet(f, sheet, result); err != nil {
		return err
	}
	if err := writeRow(f, sheet, 1, "Hour", "Hours studied"); err != nil {
		return err
	}
	for i, p := range dash.PeakHours {
		if err := writeRow(f, sheet, i+2, fmt.Sprintf("%02d:00", p.Hour), p.Hours); err != nil {
			return err
		}
		result.Rows++
	}
	return nil
}

func writeRevision(f *excelize.File, dash models.Dashboard, result *ExportResult) error {
	const sheet = "Revision"
	if err := newSheet(f, sheet, result); err != nil {
		return err
	}
	if err := writeRow(f, sheet, 1, "Subject", "Topic", "Minutes studied", "Last studied", "Interval (days)", "Due"); err != nil {
		return err
	}
	row := 2
	for _, g := range dash.TopicGroups {
		for _, t := range g.Topics {
			last := "never"
			if t.LastStudied != nil {
				last = *t.LastStudied
			}
			if err := writeRow(f, sheet, row, g.Subject, t.Title, t.TotalMinutes, last, t.RevisionInterval, t.Due); err != nil {
				return err
			}
			row++
			result.Rows++
		}
	}
	return nil
}

func writeQuizzes(f *excelize.File, dash models.Dashboard, result *ExportResult) error {
	const sheet = "Quizzes"
	if err := newSheet(f, sheet, result); err != nil {
		return err
	}
	if err := writeRow(f, sheet, 1, "Topic", "Attempts", "Score", "Questions", "Accuracy (%)"); err != nil {
		return err
	}
	for i, q := range dash.QuizTopics {
		if err := writeRow(f, sheet, i+2, q.Topic, q.Attempts, q.SumScore, q.SumTotalQuestions, q.AccuracyPercent); err != nil {
			return err
		}
		result.Rows++
	}
	return nil
}
