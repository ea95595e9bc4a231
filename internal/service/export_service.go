package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/opencampus/timetable-api/internal/dto"
	appErrors "github.com/opencampus/timetable-api/pkg/errors"
	"github.com/opencampus/timetable-api/pkg/export"
	"github.com/opencampus/timetable-api/pkg/storage"
)

type timetableReader interface {
	Timetable(ctx context.Context, scheduleID string, q dto.TimetableQuery) (*dto.TimetableResponse, error)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type timetablePDFRenderer interface {
	Render(title string, layout export.TimetableLayout, blocks []export.TimetableBlock) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix       string
	ResultTTL       time.Duration
	DayStartMinute  int
	DayEndMinute    int
	IntervalMinutes int
	Days            []string
}

// ExportService renders the projected timetable into downloadable CSV or PDF
// files, stores them on disk and hands out signed download links.
type ExportService struct {
	view      timetableReader
	storage   fileStorage
	csv       csvRenderer
	pdf       timetablePDFRenderer
	signer    *storage.SignedURLSigner
	validator *validator.Validate
	logger    *zap.Logger
	cfg       ExportConfig
}

// NewExportService constructs an ExportService.
func NewExportService(view timetableReader, files fileStorage, signer *storage.SignedURLSigner, cfg ExportConfig, validate *validator.Validate, logger *zap.Logger, csv csvRenderer, pdf timetablePDFRenderer) *ExportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewTimetablePDFExporter()
	}
	return &ExportService{
		view:      view,
		storage:   files,
		csv:       csv,
		pdf:       pdf,
		signer:    signer,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
	}
}

var csvHeaders = []string{"Day", "Time", "Course Code", "Course Name", "Section", "Building", "Room", "Capacity", "Department"}

// Generate renders the requested view and stores the result.
func (s *ExportService) Generate(ctx context.Context, scheduleID string, req dto.ExportRequest) (*dto.ExportResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export payload")
	}

	view, err := s.view.Timetable(ctx, scheduleID, dto.TimetableQuery{
		Axis:     req.Axis,
		Key:      req.Key,
		Building: req.Building,
	})
	if err != nil {
		return nil, err
	}
	title := req.Title
	if title == "" {
		title = fmt.Sprintf("Timetable %s", scheduleID)
	}

	var payload []byte
	switch req.Format {
	case "csv":
		payload, err = s.csv.Render(s.buildDataset(view))
	case "pdf":
		blocks, convErr := pdfBlocks(view.Blocks)
		if convErr != nil {
			return nil, convErr
		}
		payload, err = s.pdf.Render(title, export.TimetableLayout{
			Days:            s.cfg.Days,
			DayStartMinute:  s.cfg.DayStartMinute,
			DayEndMinute:    s.cfg.DayEndMinute,
			IntervalMinutes: s.cfg.IntervalMinutes,
		}, blocks)
	default:
		err = appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported format %s", req.Format))
	}
	if err != nil {
		return nil, err
	}

	filename := s.buildFilename(scheduleID, req.Format)
	relPath, err := s.storage.Save(filename, payload)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store export")
	}

	exportID := uuid.NewString()
	token, expiresAt, err := s.signer.Generate(exportID, relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign export link")
	}
	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}

	s.logger.Info("export generated",
		zap.String("scheduleId", scheduleID),
		zap.String("format", req.Format),
		zap.String("file", relPath))
	return &dto.ExportResponse{
		Token:     token,
		URL:       fmt.Sprintf("%s/exports/%s", prefix, token),
		Format:    req.Format,
		ExpiresAt: expiresAt,
	}, nil
}

// ParseToken validates download token metadata.
func (s *ExportService) ParseToken(token string, allowExpired bool) (exportID, relPath string, expiresAt time.Time, err error) {
	return s.signer.Parse(token, allowExpired)
}

// Open returns a handle to the stored file.
func (s *ExportService) Open(relPath string) (*os.File, error) {
	return s.storage.Open(relPath)
}

// Delete removes a stored export file.
func (s *ExportService) Delete(relPath string) error {
	return s.storage.Delete(relPath)
}

// Cleanup removes files older than ttl (defaults to configured ResultTTL when ttl <= 0).
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	return s.storage.CleanupOlderThan(ttl)
}

func (s *ExportService) buildDataset(view *dto.TimetableResponse) export.Dataset {
	rows := make([]map[string]string, 0, len(view.Blocks))
	for _, block := range view.Blocks {
		rows = append(rows, map[string]string{
			"Day":         block.Day,
			"Time":        fmt.Sprintf("%s - %s", block.StartTime, block.EndTime),
			"Course Code": block.CourseCode,
			"Course Name": block.CourseName,
			"Section":     block.Section,
			"Building":    block.Building,
			"Room":        block.Room,
			"Capacity":    formatCapacity(block.Capacity),
			"Department":  block.Department,
		})
	}
	return export.Dataset{Headers: csvHeaders, Rows: rows}
}

func (s *ExportService) buildFilename(scheduleID, format string) string {
	timestamp := time.Now().UTC().Format("20060102_150405")
	return fmt.Sprintf("timetable_%s_%s.%s", sanitizeFilename(scheduleID), timestamp, format)
}

func pdfBlocks(blocks []dto.BlockResponse) ([]export.TimetableBlock, error) {
	out := make([]export.TimetableBlock, 0, len(blocks))
	for _, block := range blocks {
		start, err := parseClockValue(block.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := parseClockValue(block.EndTime)
		if err != nil {
			return nil, err
		}
		subtitle := block.Room
		if block.TeacherName != "" {
			if subtitle != "" {
				subtitle += " / "
			}
			subtitle += block.TeacherName
		}
		out = append(out, export.TimetableBlock{
			Day:         block.Day,
			StartMinute: start,
			EndMinute:   end,
			Title:       fmt.Sprintf("%s %s", block.CourseCode, block.Section),
			Subtitle:    subtitle,
			Building:    block.Building,
		})
	}
	return out, nil
}

func parseClockValue(raw string) (int, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(raw, "%d:%d", &hour, &minute); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, fmt.Sprintf("malformed block time %q", raw))
	}
	return hour*60 + minute, nil
}

func formatCapacity(capacity int) string {
	if capacity <= 0 {
		return ""
	}
	return fmt.Sprintf("%d", capacity)
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".", "__", "_")
	result := replacer.Replace(raw)
	if len(result) > 100 {
		return result[:100]
	}
	return result
}
