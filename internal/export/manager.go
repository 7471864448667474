package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/julisunkan/Ktrend/internal/research"
)

// Manager writes research results as downloadable files into Dir.
type Manager struct {
	Dir    string
	logger *logrus.Logger

	// now is swappable so tests get stable filenames
	now func() time.Time
}

func NewManager(dir string, logger *logrus.Logger) *Manager {
	if dir == "" {
		dir = os.TempDir()
	}
	return &Manager{Dir: dir, logger: logger, now: time.Now}
}

func (m *Manager) path(prefix, ext string) string {
	name := fmt.Sprintf("%s_%s.%s", prefix, m.now().Format("20060102_150405"), ext)
	return filepath.Join(m.Dir, name)
}

// Export writes results in the named format ("csv", "excel" or "pdf")
// and returns the file path.
func (m *Manager) Export(format string, results []research.KeywordResult) (string, error) {
	switch format {
	case "csv":
		return m.ExportCSV(results)
	case "excel":
		return m.ExportExcel(results)
	case "pdf":
		return m.ExportPDF(results)
	default:
		return "", fmt.Errorf("unsupported export format: %s", format)
	}
}

// ContentType returns the MIME type served for a format, or "" if the
// format is unknown.
func ContentType(format string) string {
	switch format {
	case "csv":
		return "text/csv"
	case "excel":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "pdf":
		return "application/pdf"
	default:
		return ""
	}
}
