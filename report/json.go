package report

import (
	"accircuit/analysis"
	"encoding/json"
	"io"
)

// JSON 以缩进的 JSON 输出完整报告
func JSON(w io.Writer, r *analysis.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
