package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/xuri/excelize/v2"

	"github.com/karbala-lab/daleel/pkg/domain/interfaces"
	"github.com/karbala-lab/daleel/pkg/domain/types"
)

// ExportKind selects which report to build
type ExportKind string

const (
	ExportSummary   ExportKind = "summary"
	ExportUsersAll  ExportKind = "users_all"
	ExportUsersUsed ExportKind = "users_used"
	ExportTopDepts  ExportKind = "top_depts"
	ExportTopUsers  ExportKind = "top_users"
	ExportFullPack  ExportKind = "full"
)

// ExportFormat selects the serialization
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
)

// ParseExportKind validates an export kind string
func ParseExportKind(s string) (ExportKind, error) {
	switch k := ExportKind(s); k {
	case ExportSummary, ExportUsersAll, ExportUsersUsed, ExportTopDepts, ExportTopUsers, ExportFullPack:
		return k, nil
	default:
		return "", goerr.New("unknown export kind", goerr.V("kind", s))
	}
}

// ParseExportFormat validates an export format string
func ParseExportFormat(s string) (ExportFormat, error) {
	switch f := ExportFormat(s); f {
	case FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", goerr.New("unknown export format", goerr.V("format", s))
	}
}

// ExportUseCase serializes the aggregate reports as CSV or XLSX documents
type ExportUseCase struct {
	stats    *StatsUseCase
	clock    func() time.Time
	location *time.Location
	tzLabel  string
	botTitle string
}

// table is one report sheet
type table struct {
	name    string
	headers []string
	rows    [][]any
}

// Build produces a downloadable report. All reports are all-time, matching
// the admin panel.
func (x *ExportUseCase) Build(ctx context.Context, kind ExportKind, format ExportFormat) (string, []byte, error) {
	tables, base, err := x.buildTables(ctx, kind)
	if err != nil {
		return "", nil, err
	}

	switch format {
	case FormatXLSX:
		data, err := renderXLSX(tables)
		if err != nil {
			return "", nil, err
		}
		return base + ".xlsx", data, nil

	default:
		data, err := renderCSV(tables)
		if err != nil {
			return "", nil, err
		}
		return base + ".csv", data, nil
	}
}

func (x *ExportUseCase) buildTables(ctx context.Context, kind ExportKind) ([]table, string, error) {
	switch kind {
	case ExportSummary:
		t, err := x.summaryTable(ctx)
		return []table{t}, "summary", err

	case ExportTopDepts:
		t, err := x.topDeptsTable(ctx)
		return []table{t}, "top10_departments", err

	case ExportTopUsers:
		t, err := x.topUsersTable(ctx)
		return []table{t}, "top15_users", err

	case ExportUsersAll:
		t, err := x.usersAllTable(ctx)
		return []table{t}, "users_all", err

	case ExportUsersUsed:
		t, err := x.usersUsedTable(ctx)
		return []table{t}, "users_used", err

	case ExportFullPack:
		var tables []table
		for _, build := range []func(context.Context) (table, error){
			x.summaryTable, x.topDeptsTable, x.topUsersTable, x.usersAllTable, x.usersUsedTable,
		} {
			t, err := build(ctx)
			if err != nil {
				return nil, "", err
			}
			tables = append(tables, t)
		}
		return tables, "full_report", nil

	default:
		return nil, "", goerr.New("unknown export kind", goerr.V("kind", kind))
	}
}

func (x *ExportUseCase) fmtTime(t time.Time) string {
	return formatTime(t, x.location, x.tzLabel)
}

func (x *ExportUseCase) summaryTable(ctx context.Context) (table, error) {
	summary, err := x.stats.Summary(ctx, types.AllTime)
	if err != nil {
		return table{}, goerr.Wrap(err, "failed to build summary")
	}

	lastActivity := "—"
	if summary.HasActivity {
		lastActivity = x.fmtTime(summary.LastActivity)
	}

	return table{
		name:    "Summary",
		headers: []string{"Key", "Value"},
		rows: [][]any{
			{"Bot", x.botTitle},
			{"GeneratedAt", x.fmtTime(x.clock())},
			{"TotalUsers", summary.TotalUsers},
			{"LastActivity", lastActivity},
		},
	}, nil
}

func (x *ExportUseCase) topDeptsTable(ctx context.Context) (table, error) {
	rows, err := x.stats.TopDepartments(ctx, types.AllTime, TopDepartmentsLimit)
	if err != nil {
		return table{}, goerr.Wrap(err, "failed to rank departments")
	}

	t := table{
		name:    "Top10Departments",
		headers: []string{"Rank", "Department", "SearchCount"},
	}
	for i, row := range rows {
		t.rows = append(t.rows, []any{i + 1, row.Department, row.Count})
	}
	return t, nil
}

func (x *ExportUseCase) topUsersTable(ctx context.Context) (table, error) {
	rows, err := x.stats.TopUsers(ctx, types.AllTime, TopUsersLimit)
	if err != nil {
		return table{}, goerr.Wrap(err, "failed to rank users")
	}

	t := table{
		name:    "Top15Users",
		headers: []string{"Rank", "UserID", "Name", "Username", "UsageCount", "FirstUsed", "LastUsed"},
	}
	for i, row := range rows {
		t.rows = append(t.rows, []any{
			i + 1, int64(row.UserID), row.Name, atHandle(row.Handle),
			row.Count, x.fmtTime(row.FirstUsed), x.fmtTime(row.LastUsed),
		})
	}
	return t, nil
}

func (x *ExportUseCase) usersAllTable(ctx context.Context) (table, error) {
	users, err := x.stats.UsersPage(ctx, interfaces.UserOrderFirstSeenAsc, 0, 0)
	if err != nil {
		return table{}, goerr.Wrap(err, "failed to list users")
	}

	t := table{
		name:    "UsersAll",
		headers: []string{"UserID", "Name", "Username", "FirstSeen", "LastSeen"},
	}
	for _, u := range users {
		t.rows = append(t.rows, []any{
			int64(u.ID), u.Name, atHandle(u.Handle),
			x.fmtTime(u.FirstSeen), x.fmtTime(u.LastSeen),
		})
	}
	return t, nil
}

func (x *ExportUseCase) usersUsedTable(ctx context.Context) (table, error) {
	rows, err := x.stats.UsersUsed(ctx, types.AllTime)
	if err != nil {
		return table{}, goerr.Wrap(err, "failed to list used users")
	}

	t := table{
		name:    "UsersUsed",
		headers: []string{"UserID", "Name", "Username", "FirstUsed", "LastUsed", "UsageCount"},
	}
	for _, row := range rows {
		t.rows = append(t.rows, []any{
			int64(row.UserID), row.Name, atHandle(row.Handle),
			x.fmtTime(row.FirstUsed), x.fmtTime(row.LastUsed), row.Count,
		})
	}
	return t, nil
}

func atHandle(handle string) string {
	if handle == "" {
		return ""
	}
	return "@" + handle
}

// renderCSV writes tables as sections of one CSV document, UTF-8 BOM
// prefixed so spreadsheet applications pick the right encoding for Arabic.
func renderCSV(tables []table) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("\uFEFF")

	w := csv.NewWriter(&buf)
	for i, t := range tables {
		if i > 0 {
			if err := w.Write([]string{}); err != nil {
				return nil, goerr.Wrap(err, "failed to write CSV separator")
			}
		}
		records := [][]string{{t.name}, {}, t.headers}
		for _, row := range t.rows {
			record := make([]string, len(row))
			for j, cell := range row {
				record[j] = fmt.Sprint(cell)
			}
			records = append(records, record)
		}
		for _, record := range records {
			if err := w.Write(record); err != nil {
				return nil, goerr.Wrap(err, "failed to write CSV record")
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, goerr.Wrap(err, "failed to flush CSV")
	}
	return buf.Bytes(), nil
}

// renderXLSX writes one sheet per table: bold frozen header row and
// approximate column autosizing.
func renderXLSX(tables []table) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create header style")
	}

	for i, t := range tables {
		sheet := sheetTitle(t.name)
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
				return nil, goerr.Wrap(err, "failed to rename sheet", goerr.V("sheet", sheet))
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, goerr.Wrap(err, "failed to create sheet", goerr.V("sheet", sheet))
		}

		header := make([]any, len(t.headers))
		widths := make([]int, len(t.headers))
		for j, h := range t.headers {
			header[j] = h
			widths[j] = len(h)
		}
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return nil, goerr.Wrap(err, "failed to write header row")
		}

		for r, row := range t.rows {
			cellRef, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return nil, goerr.Wrap(err, "failed to compute cell name")
			}
			if err := f.SetSheetRow(sheet, cellRef, &row); err != nil {
				return nil, goerr.Wrap(err, "failed to write data row")
			}
			for j, cell := range row {
				if j < len(widths) {
					if n := len(fmt.Sprint(cell)); n > widths[j] {
						widths[j] = n
					}
				}
			}
		}

		if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
			return nil, goerr.Wrap(err, "failed to style header row")
		}
		if err := f.SetPanes(sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return nil, goerr.Wrap(err, "failed to freeze header row")
		}

		for j, width := range widths {
			col, err := excelize.ColumnNumberToName(j + 1)
			if err != nil {
				return nil, goerr.Wrap(err, "failed to compute column name")
			}
			w := width + 2
			if w < 10 {
				w = 10
			}
			if w > 45 {
				w = 45
			}
			if err := f.SetColWidth(sheet, col, col, float64(w)); err != nil {
				return nil, goerr.Wrap(err, "failed to set column width")
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to serialize workbook")
	}
	return buf.Bytes(), nil
}

// sheetTitle clips a name to the 31-character sheet title limit
func sheetTitle(name string) string {
	if len(name) > 31 {
		return name[:31]
	}
	return name
}
