package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/opencampus/timetable-api/internal/dto"
	"github.com/opencampus/timetable-api/internal/timetable"
	appErrors "github.com/opencampus/timetable-api/pkg/errors"
	"github.com/opencampus/timetable-api/pkg/storage"
)

type timetableStub struct {
	resp *dto.TimetableResponse
}

func (s timetableStub) Timetable(_ context.Context, scheduleID string, _ dto.TimetableQuery) (*dto.TimetableResponse, error) {
	resp := *s.resp
	resp.ScheduleID = scheduleID
	return &resp, nil
}

func exportView() *dto.TimetableResponse {
	return &dto.TimetableResponse{
		Days: timetable.RenderDays,
		Blocks: []dto.BlockResponse{
			{CourseCode: "CS101", CourseName: "Intro to Computing", Section: "BSCS-1A", Room: "R101", Building: "Main", Capacity: 40, Day: "Monday", TeacherName: "J. Cruz", StartTime: "09:00", EndTime: "10:30", SourceIDs: []string{"a1"}},
			{CourseCode: "CS205", CourseName: "Data Structures", Section: "BSCS-2B", Room: "R202", Building: "Annex", Capacity: 30, Day: "Tuesday", TeacherName: "M. Reyes", StartTime: "10:00", EndTime: "11:00", SourceIDs: []string{"a2"}},
		},
	}
}

func newExportServiceForTest(t *testing.T) *ExportService {
	t.Helper()
	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("secret", time.Hour)
	cfg := ExportConfig{
		APIPrefix:       "/api/v1",
		ResultTTL:       time.Hour,
		DayStartMinute:  timetable.RenderDayStart,
		DayEndMinute:    timetable.RenderDayEnd,
		IntervalMinutes: timetable.DefaultInterval,
		Days:            timetable.RenderDays,
	}
	return NewExportService(timetableStub{resp: exportView()}, files, signer, cfg, nil, zap.NewNop(), nil, nil)
}

func TestExportServiceGenerateCSV(t *testing.T) {
	svc := newExportServiceForTest(t)

	result, err := svc.Generate(context.Background(), "sched-1", dto.ExportRequest{Format: "csv"})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	assert.Contains(t, result.URL, "/api/v1/exports/")
	assert.Equal(t, "csv", result.Format)

	_, relPath, _, err := svc.ParseToken(result.Token, false)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(relPath, ".csv"))

	file, err := svc.Open(relPath)
	require.NoError(t, err)
	defer file.Close()
	info, err := file.Stat()
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestExportServiceGeneratePDF(t *testing.T) {
	svc := newExportServiceForTest(t)

	result, err := svc.Generate(context.Background(), "sched-1", dto.ExportRequest{Format: "pdf", Title: "Room View"})
	require.NoError(t, err)

	_, relPath, _, err := svc.ParseToken(result.Token, false)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(relPath, ".pdf"))

	file, err := svc.Open(relPath)
	require.NoError(t, err)
	defer file.Close()
	info, err := file.Stat()
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	svc := newExportServiceForTest(t)

	_, err := svc.Generate(context.Background(), "sched-1", dto.ExportRequest{Format: "xlsx"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportServiceCleanup(t *testing.T) {
	svc := newExportServiceForTest(t)

	_, err := svc.Generate(context.Background(), "sched-1", dto.ExportRequest{Format: "csv"})
	require.NoError(t, err)

	// Nothing is older than an hour yet.
	removed, err := svc.Cleanup(time.Hour)
	require.NoError(t, err)
	assert.Empty(t, removed)
}
