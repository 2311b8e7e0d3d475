package hover

import (
	"fmt"
	"strings"

	"github.com/tentacle-scylla/chsql/pkg/dialect"
)

// formatFunctionHover formats hover content for a function. An alias shows
// its target's documentation.
func formatFunctionHover(fn *dialect.FunctionInfo, data *dialect.Data) string {
	var sb strings.Builder
	switch {
	case fn.IsAlias():
		sb.WriteString(fmt.Sprintf("**%s** _(alias for `%s`)_", fn.Name, *fn.AliasTo))
		if target, ok := data.Function(*fn.AliasTo); ok {
			writeSection(&sb, target.Documentation())
		}
		return sb.String()
	case fn.IsAggregate:
		sb.WriteString(fmt.Sprintf("**%s** _(aggregate function)_", fn.Name))
	default:
		sb.WriteString(fmt.Sprintf("**%s** _(function)_", fn.Name))
	}
	writeSection(&sb, fn.Documentation())
	return sb.String()
}

// formatCombinatorHover formats hover content for an aggregate function
// with a combinator suffix, such as sumIf.
func formatCombinatorHover(name string, base *dialect.FunctionInfo, suffix string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("**%s** _(aggregate function `%s` with combinator `-%s`)_", name, base.Name, suffix))
	writeSection(&sb, base.Documentation())
	return sb.String()
}

// formatTableFunctionHover formats hover content for a table function.
func formatTableFunctionHover(tf *dialect.TableFunctionInfo) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("**%s** _(table function)_", tf.Name))
	writeSection(&sb, strings.TrimSpace(tf.Description))
	return sb.String()
}

// formatTypeHover formats hover content for a type.
func formatTypeHover(dt *dialect.DataTypeInfo) string {
	if dt.IsAlias() {
		return fmt.Sprintf("**%s** _(alias for `%s`)_", dt.Name, *dt.AliasTo)
	}
	return fmt.Sprintf("**%s** _(data type)_", dt.Name)
}

func formatFormatHover(f *dialect.FormatInfo) string {
	if dir := f.Direction(); dir != "" {
		return fmt.Sprintf("**%s** _(format: %s)_", f.Name, dir)
	}
	return fmt.Sprintf("**%s** _(format)_", f.Name)
}

func formatSettingHover(s *dialect.SettingInfo, label string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("**%s** _(%s)_", s.Name, label))
	if s.Type != "" {
		sb.WriteString(fmt.Sprintf("\n\nType: `%s`", s.Type))
	}
	writeSection(&sb, strings.TrimSpace(s.Description))
	return sb.String()
}

func writeSection(sb *strings.Builder, text string) {
	if text == "" {
		return
	}
	sb.WriteString("\n\n")
	sb.WriteString(text)
}
