package output

import (
	"io"
	"strconv"
	"strings"

	"github.com/agentstation/modelprobe/pkg/genlang"
	"github.com/agentstation/modelprobe/pkg/models"
)

// ModelsToTableData converts descriptors to table rows. Wide adds token
// limits and the description.
func ModelsToTableData(descs []models.Descriptor, wide bool) Data {
	headers := []string{"Name", "Display Name", "Methods"}
	align := []Align{AlignLeft, AlignLeft, AlignLeft}
	if wide {
		headers = append(headers, "Input Tokens", "Output Tokens", "Description")
		align = append(align, AlignRight, AlignRight, AlignLeft)
	}

	rows := make([][]string, 0, len(descs))
	for _, d := range descs {
		row := []string{
			d.Name,
			d.Label(),
			strings.Join(d.SupportedGenerationMethods, ", "),
		}
		if wide {
			row = append(row,
				formatTokens(d.InputTokenLimit),
				formatTokens(d.OutputTokenLimit),
				truncate(d.Description, 60),
			)
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// FormatModels writes descs in the requested format.
func FormatModels(w io.Writer, format Format, descs []models.Descriptor) error {
	formatter := NewFormatter(format)
	if format.IsTable() {
		return formatter.Format(w, ModelsToTableData(descs, format == FormatWide))
	}
	if descs == nil {
		descs = []models.Descriptor{}
	}
	return formatter.Format(w, descs)
}

// EmptyResultNotice is printed when a model answers without text.
func EmptyResultNotice(result *genlang.Result) string {
	return "[empty response] " + result.Err().Error()
}

// FormatResult writes a generation result. Table formats print the raw
// text, or a notice for the empty variant; structured formats print the
// whole result.
func FormatResult(w io.Writer, format Format, result *genlang.Result) error {
	if !format.IsTable() {
		return NewFormatter(format).Format(w, result)
	}
	text := result.Text
	if result.Empty() {
		text = EmptyResultNotice(result)
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, err := io.WriteString(w, text)
	return err
}

func formatTokens(n int64) string {
	switch {
	case n <= 0:
		return "-"
	case n >= 1_000_000 && n%1_000_000 == 0:
		return strconv.FormatInt(n/1_000_000, 10) + "M"
	case n >= 1_000_000:
		return strconv.FormatFloat(float64(n)/1_000_000, 'f', 1, 64) + "M"
	case n >= 1_000:
		return strconv.FormatInt(n/1_000, 10) + "K"
	}
	return strconv.FormatInt(n, 10)
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n-3]) + "..."
}
