package directory

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/xuri/excelize/v2"

	"github.com/karbala-lab/daleel/pkg/domain/model"
	"github.com/karbala-lab/daleel/pkg/service/arabic"
	"github.com/karbala-lab/daleel/pkg/utils/logging"
	"github.com/karbala-lab/daleel/pkg/utils/safe"
)

// Header candidates for column detection. Spreadsheets come from different
// people; the headers vary.
var (
	deptCandidates  = []string{"القسم", "قسم", "الاسم", "اسم القسم"}
	phoneCandidates = []string{"رقم الهاتف", "الهاتف", "رقم", "موبايل", "Phone"}
)

// Loader reads department entries from every .xlsx file in a directory
type Loader struct {
	dataDir string
}

// NewLoader creates a loader over the given data directory
func NewLoader(dataDir string) *Loader {
	return &Loader{dataDir: dataDir}
}

// Load reads all spreadsheets and builds an immutable directory snapshot.
// Files without a recognizable header are skipped with a warning; a
// directory with no spreadsheets at all is an error.
func (x *Loader) Load(ctx context.Context) (*model.Directory, error) {
	files, err := x.listSpreadsheets()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, goerr.New("no .xlsx files found", goerr.V("dir", x.dataDir))
	}

	var entries []model.Department
	for _, path := range files {
		rows, err := x.loadFile(ctx, path)
		if err != nil {
			logging.From(ctx).Warn("skipping spreadsheet", "path", path, "error", err.Error())
			continue
		}
		entries = append(entries, rows...)
	}

	logging.From(ctx).Info("directory loaded", "files", len(files), "departments", len(entries))
	return model.NewDirectory(entries, arabic.Normalize), nil
}

func (x *Loader) listSpreadsheets() ([]string, error) {
	items, err := os.ReadDir(x.dataDir)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read data directory", goerr.V("dir", x.dataDir))
	}

	var files []string
	for _, item := range items {
		if item.IsDir() {
			continue
		}
		name := item.Name()
		if strings.HasPrefix(name, "~$") {
			continue // Excel lock files
		}
		if strings.EqualFold(filepath.Ext(name), ".xlsx") {
			files = append(files, filepath.Join(x.dataDir, name))
		}
	}
	return files, nil
}

func (x *Loader) loadFile(ctx context.Context, path string) ([]model.Department, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open spreadsheet")
	}
	defer safe.Close(ctx, f)

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, goerr.New("spreadsheet has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read sheet", goerr.V("sheet", sheets[0]))
	}
	if len(rows) == 0 {
		return nil, goerr.New("spreadsheet is empty")
	}

	deptCol := findColumn(rows[0], deptCandidates)
	phoneCol := findColumn(rows[0], phoneCandidates)
	if deptCol < 0 || phoneCol < 0 {
		return nil, goerr.New("required columns not found", goerr.V("headers", rows[0]))
	}

	var entries []model.Department
	for _, row := range rows[1:] {
		name := strings.TrimSpace(cell(row, deptCol))
		if name == "" {
			continue
		}
		entries = append(entries, model.Department{
			Name:  name,
			Phone: strings.TrimSpace(cell(row, phoneCol)),
		})
	}
	return entries, nil
}

// findColumn locates a header by normalized comparison: exact candidate
// match first, then candidate-contained-in-header.
func findColumn(headers []string, candidates []string) int {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = arabic.Normalize(h)
	}

	for i, h := range normalized {
		for _, c := range candidates {
			if h == arabic.Normalize(c) {
				return i
			}
		}
	}
	for i, h := range normalized {
		for _, c := range candidates {
			if strings.Contains(h, arabic.Normalize(c)) {
				return i
			}
		}
	}
	return -1
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
