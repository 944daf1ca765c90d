package usecase_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/xuri/excelize/v2"

	"github.com/karbala-lab/daleel/pkg/domain/model"
	"github.com/karbala-lab/daleel/pkg/domain/types"
	"github.com/karbala-lab/daleel/pkg/repository/memory"
	"github.com/karbala-lab/daleel/pkg/usecase"
)

func seedExportData(t *testing.T) *usecase.UseCases {
	t.Helper()
	ctx := context.Background()
	repo := memory.New()

	gt.NoError(t, repo.Users().Upsert(ctx, 1, "Ali", "ali", testClock)).Required()
	gt.NoError(t, repo.Users().Upsert(ctx, 2, "Sara", "", testClock.Add(time.Minute))).Required()

	gt.NoError(t, repo.Events().Append(ctx, &model.Event{
		Timestamp:  testClock,
		UserID:     1,
		Kind:       types.EventKindSearchHit,
		Department: "القلب",
	})).Required()

	return newTestUseCases(t, repo)
}

func TestExportKindParsing(t *testing.T) {
	for _, s := range []string{"summary", "users_all", "users_used", "top_depts", "top_users", "full"} {
		_, err := usecase.ParseExportKind(s)
		gt.NoError(t, err)
	}
	_, err := usecase.ParseExportKind("everything")
	gt.Value(t, err).NotNil()

	_, err = usecase.ParseExportFormat("csv")
	gt.NoError(t, err)
	_, err = usecase.ParseExportFormat("pdf")
	gt.Value(t, err).NotNil()
}

func TestExportCSV(t *testing.T) {
	ctx := context.Background()
	uc := seedExportData(t)

	t.Run("summary report", func(t *testing.T) {
		filename, data, err := uc.Export.Build(ctx, usecase.ExportSummary, usecase.FormatCSV)
		gt.NoError(t, err).Required()
		gt.Value(t, filename).Equal("summary.csv")

		gt.Bool(t, bytes.HasPrefix(data, []byte("\uFEFF"))).True()

		body := string(data)
		gt.Bool(t, strings.Contains(body, "Summary")).True()
		gt.Bool(t, strings.Contains(body, "TotalUsers,2")).True()
		gt.Bool(t, strings.Contains(body, "Bot,Test Bot")).True()
		gt.Bool(t, strings.Contains(body, "2025-06-01  12:00:00  (UTC)")).True()
	})

	t.Run("full report holds every section", func(t *testing.T) {
		filename, data, err := uc.Export.Build(ctx, usecase.ExportFullPack, usecase.FormatCSV)
		gt.NoError(t, err).Required()
		gt.Value(t, filename).Equal("full_report.csv")

		body := string(data)
		for _, section := range []string{"Summary", "Top10Departments", "Top15Users", "UsersAll", "UsersUsed"} {
			gt.Bool(t, strings.Contains(body, section)).True()
		}
	})

	t.Run("users report carries handles with the at sign", func(t *testing.T) {
		_, data, err := uc.Export.Build(ctx, usecase.ExportUsersAll, usecase.FormatCSV)
		gt.NoError(t, err).Required()

		body := string(data)
		gt.Bool(t, strings.Contains(body, "@ali")).True()
		gt.Bool(t, strings.Contains(body, "Sara")).True()
	})
}

func TestExportXLSX(t *testing.T) {
	ctx := context.Background()
	uc := seedExportData(t)

	t.Run("top departments workbook", func(t *testing.T) {
		filename, data, err := uc.Export.Build(ctx, usecase.ExportTopDepts, usecase.FormatXLSX)
		gt.NoError(t, err).Required()
		gt.Value(t, filename).Equal("top10_departments.xlsx")

		f, err := excelize.OpenReader(bytes.NewReader(data))
		gt.NoError(t, err).Required()
		defer func() { _ = f.Close() }()

		gt.Array(t, f.GetSheetList()).Equal([]string{"Top10Departments"})

		header, err := f.GetCellValue("Top10Departments", "B1")
		gt.NoError(t, err).Required()
		gt.Value(t, header).Equal("Department")

		dept, err := f.GetCellValue("Top10Departments", "B2")
		gt.NoError(t, err).Required()
		gt.Value(t, dept).Equal("القلب")
	})

	t.Run("full report workbook has one sheet per section", func(t *testing.T) {
		_, data, err := uc.Export.Build(ctx, usecase.ExportFullPack, usecase.FormatXLSX)
		gt.NoError(t, err).Required()

		f, err := excelize.OpenReader(bytes.NewReader(data))
		gt.NoError(t, err).Required()
		defer func() { _ = f.Close() }()

		gt.Array(t, f.GetSheetList()).Equal([]string{
			"Summary", "Top10Departments", "Top15Users", "UsersAll", "UsersUsed",
		})
	})
}
