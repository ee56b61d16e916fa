package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

func TestPercentile90(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		want   float64
		ok     bool
	}{
		{"empty", nil, 0, false},
		{"single value has index -1", []float64{42}, 0, false},
		{"ten values", []float64{100, 10, 90, 20, 80, 30, 70, 40, 60, 50}, 90, true},
		{"two values", []float64{5, 1}, 1, true},
		{"twenty values", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20}, 18, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Percentile90(tt.scores)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("Percentile90 = (%v, %v), want (%v, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestPercentile90DoesNotReorderInput(t *testing.T) {
	scores := []float64{3, 1, 2}
	Percentile90(scores)
	if scores[0] != 3 || scores[1] != 1 || scores[2] != 2 {
		t.Fatalf("input reordered: %v", scores)
	}
}

func TestWriteStatisticsXLSX(t *testing.T) {
	stats := []UserStatistics{
		{ID: "u1", Username: "coach1", LoginCount: 3, TotalTimeSpent: 90 * time.Minute, IsOnline: true},
		{ID: "u2", Username: "player1"},
	}

	var buf bytes.Buffer
	if err := WriteStatisticsXLSX(&buf, stats); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Statistics")
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}
	if rows[1][1] != "coach1" || rows[1][3] != "01:30:00" {
		t.Fatalf("row = %v", rows[1])
	}
}
