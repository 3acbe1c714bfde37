package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bloodgroup-bot/internal/domain/entity"
)

func TestReportService_Issue(t *testing.T) {
	archive := &fakeArchive{err: errors.New("db down")}
	svc := NewReportService(&fakeRenderer{}, archive)
	svc.now = func() time.Time { return time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC) }

	report, doc, err := svc.Issue(context.Background(), john, entity.Classify([]string{"d"}))
	require.NoError(t, err)
	require.Equal(t, "%PDF Patient Name: John, Blood Group: O+ (O Positive), Date: 2024-03-04 05:06:07", string(doc))
	require.Equal(t, []*entity.Report{report}, archive.reports)
}

func TestReportService_RenderError(t *testing.T) {
	svc := NewReportService(&fakeRenderer{err: errors.New("no fonts")}, nil)

	_, _, err := svc.Issue(context.Background(), john, entity.Classify([]string{"d"}))
	require.ErrorContains(t, err, "no fonts")
}

func TestReportService_WithoutArchive(t *testing.T) {
	svc := NewReportService(&fakeRenderer{}, nil)

	report, doc, err := svc.Issue(context.Background(), john, entity.Classify(nil))
	require.NoError(t, err)
	require.True(t, report.Classification.NoMarkers)
	require.Contains(t, string(doc), "Blood Group: Unknown")
}
