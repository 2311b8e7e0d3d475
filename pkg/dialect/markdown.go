package dialect

import (
	"fmt"
	"strings"
)

// Documentation renders the function's documentation as markdown: syntax,
// description, arguments, returned value and category, separated by blank
// lines. It returns "" when the function has none of them.
func (f *FunctionInfo) Documentation() string {
	var parts []string
	if f.Syntax != "" {
		parts = append(parts, fmt.Sprintf("**Syntax:** `%s`", f.Syntax))
	}
	if f.Description != "" {
		parts = append(parts, strings.TrimSpace(f.Description))
	}
	if f.Arguments != "" {
		parts = append(parts, "**Arguments:**\n"+strings.TrimSpace(f.Arguments))
	}
	if f.ReturnedValue != "" {
		parts = append(parts, "**Returns:**\n"+strings.TrimSpace(f.ReturnedValue))
	}
	if f.Categories != "" {
		parts = append(parts, "**Category:** "+f.Categories)
	}
	return strings.Join(parts, "\n\n")
}

// Direction describes which way a format can be used: "input/output",
// "input only", "output only", or "" when the dataset marks neither.
func (f *FormatInfo) Direction() string {
	switch {
	case f.IsInput && f.IsOutput:
		return "input/output"
	case f.IsInput:
		return "input only"
	case f.IsOutput:
		return "output only"
	default:
		return ""
	}
}
