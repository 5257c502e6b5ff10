package output

import (
	"io"
)

// Render writes data in format. Table formats use the table view built by
// toTable; structured formats encode raw as is.
func Render(w io.Writer, format Format, raw any, toTable func(wide bool) Data) error {
	formatter := NewFormatter(format)
	switch format {
	case FormatTable, FormatWide, "":
		return formatter.Format(w, toTable(format == FormatWide))
	default:
		return formatter.Format(w, raw)
	}
}

// Resolve validates an explicit format and falls back to DetectFormat
// when none was given.
func Resolve(explicit string) (Format, error) {
	format, err := ParseFormat(explicit)
	if err != nil {
		return "", err
	}
	return DetectFormat(string(format)), nil
}
