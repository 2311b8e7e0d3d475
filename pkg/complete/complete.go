package complete

import (
	"sort"
)

// GetCompletions detects the context at cursorOffset and returns the items
// cached for it. A nil cache yields no items.
func GetCompletions(sql string, cursorOffset int, cache *Cache) []CompletionItem {
	if cache == nil {
		return []CompletionItem{}
	}
	return Select(DetectContext(sql, cursorOffset), cache)
}

// Select returns the completion items for a context, in cache order. The
// combined contexts list functions first, then the extra keywords; they are
// returned in a new slice so the cache buckets are never appended to. Other
// contexts return the bucket itself, which callers must not modify. The
// result is never nil.
func Select(ctx ContextType, cache *Cache) []CompletionItem {
	if cache == nil {
		return []CompletionItem{}
	}
	if items := bucket(ctx, cache); items != nil {
		return items
	}
	return []CompletionItem{}
}

func bucket(ctx ContextType, cache *Cache) []CompletionItem {
	switch ctx {
	case ContextEngine:
		return cache.TableEngines
	case ContextFormat:
		return cache.Formats
	case ContextWhereClause:
		return concat(cache.Functions, cache.LogicalOperators)
	case ContextOrderByClause:
		return concat(cache.Functions, cache.OrderByKeywords)
	case ContextSelectClause:
		return cache.Functions
	case ContextFromClause:
		return cache.TableFunctions
	case ContextColumnDefinition:
		return cache.DataTypes
	case ContextSettings:
		return cache.Settings
	default:
		return cache.All
	}
}

func concat(a, b []CompletionItem) []CompletionItem {
	out := make([]CompletionItem, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

// Sorted returns a copy of items ordered by sort key, the order editors
// display them in.
func Sorted(items []CompletionItem) []CompletionItem {
	out := make([]CompletionItem, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SortKey.Less(out[j].SortKey)
	})
	return out
}
