package complete

import (
	"fmt"
	"strings"

	"github.com/tentacle-scylla/chsql/pkg/dialect"
)

// LogicalOperators are offered next to functions inside WHERE and HAVING.
var LogicalOperators = []string{"AND", "OR", "NOT", "IN", "BETWEEN", "LIKE", "IS NULL", "IS NOT NULL"}

// OrderByKeywords are offered next to functions inside ORDER BY and GROUP BY.
var OrderByKeywords = []string{"ASC", "DESC", "NULLS FIRST", "NULLS LAST"}

func newItem(label string, kind CompletionKind, detail string, key SortKey) CompletionItem {
	return CompletionItem{
		Label:    label,
		Kind:     kind,
		Detail:   detail,
		SortKey:  key,
		SortText: key.String(),
	}
}

// callInsert sets the insert text for something that is always called with
// parentheses: a snippet with the cursor inside, or plain "name()".
func callInsert(item *CompletionItem, useSnippets bool) {
	if useSnippets {
		item.InsertText = item.Label + "($1)$0"
		item.InsertTextFormat = Snippet
		return
	}
	item.InsertText = item.Label + "()"
	item.InsertTextFormat = PlainText
}

func functionItem(fn *dialect.FunctionInfo, d *dialect.Data, useSnippets bool) CompletionItem {
	kind := KindFunction
	if fn.IsAggregate {
		kind = KindMethod
	}

	var item CompletionItem
	switch {
	case fn.IsAlias():
		item = newItem(fn.Name, kind, fmt.Sprintf("(alias for %s)", *fn.AliasTo), SortKey{RankAlias, fn.Name})
		item.Documentation = aliasDocumentation(fn, d)
	case fn.IsAggregate:
		item = newItem(fn.Name, kind, "(aggregate function)", SortKey{RankFunction, fn.Name})
		item.Documentation = functionDocumentation(fn)
	default:
		item = newItem(fn.Name, kind, "(function)", SortKey{RankFunction, fn.Name})
		item.Documentation = functionDocumentation(fn)
	}
	callInsert(&item, useSnippets)
	return item
}

// functionDocumentation returns nil when the function has no documentation.
func functionDocumentation(fn *dialect.FunctionInfo) *Documentation {
	doc := fn.Documentation()
	if doc == "" {
		return nil
	}
	return markdown(doc)
}

// aliasDocumentation is a header naming the target followed by the target's
// own documentation, if the target exists and has any.
func aliasDocumentation(fn *dialect.FunctionInfo, d *dialect.Data) *Documentation {
	parts := []string{fmt.Sprintf("**%s** _(alias for `%s`)_", fn.Name, *fn.AliasTo)}
	if target, ok := d.Function(*fn.AliasTo); ok {
		if doc := functionDocumentation(target); doc != nil {
			parts = append(parts, doc.Value)
		}
	}
	return markdown(strings.Join(parts, "\n\n"))
}

func keywordItem(keyword string) CompletionItem {
	item := newItem(keyword, KindKeyword, "(keyword)", SortKey{RankKeyword, keyword})
	item.InsertText = keyword
	item.InsertTextFormat = PlainText
	return item
}

func dataTypeItem(dt *dialect.DataTypeInfo) CompletionItem {
	if dt.IsAlias() {
		return newItem(dt.Name, KindType, fmt.Sprintf("(alias for %s)", *dt.AliasTo), SortKey{RankAlias, dt.Name})
	}
	return newItem(dt.Name, KindType, "(data type)", SortKey{RankDataType, dt.Name})
}

func tableEngineItem(e *dialect.TableEngineInfo) CompletionItem {
	return newItem(e.Name, KindEngine, "(table engine)", SortKey{RankTableEngine, e.Name})
}

func formatItem(f *dialect.FormatInfo) CompletionItem {
	detail := "(format)"
	if dir := f.Direction(); dir != "" {
		detail = fmt.Sprintf("(format: %s)", dir)
	}
	return newItem(f.Name, KindFormat, detail, SortKey{RankFormat, f.Name})
}

func tableFunctionItem(tf *dialect.TableFunctionInfo, useSnippets bool) CompletionItem {
	item := newItem(tf.Name, KindFunction, "(table function)", SortKey{RankTableFunction, tf.Name})
	if tf.Description != "" {
		item.Documentation = markdown(strings.TrimSpace(tf.Description))
	}
	callInsert(&item, useSnippets)
	return item
}

func settingItem(s *dialect.SettingInfo, mergeTree bool) CompletionItem {
	detail := fmt.Sprintf("(setting: %s)", s.Type)
	if mergeTree {
		detail = fmt.Sprintf("(MergeTree setting: %s)", s.Type)
	}
	item := newItem(s.Name, KindSetting, detail, SortKey{RankSetting, s.Name})
	if s.Description != "" {
		item.Documentation = markdown(strings.TrimSpace(s.Description))
	}
	return item
}
