package query

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateFormat is the layout used for date-time literals: dd MMM yyyy HH:mm:ss
// with English month abbreviations regardless of locale.
const DateFormat = "02 Jan 2006 15:04:05"

// FormatValue renders a literal for inlining into SQL.
//
// Only date-times and 32-bit-or-platform ints get dedicated forms. Every
// other payload, including bools, floats and wider integers, is converted to
// text and single-quoted, so 3.14 renders as '3.14' and true as 'True'.
// A nil payload (or nil *time.Time) renders as the empty literal '' rather
// than failing. Literals are inlined rather than bound; callers must not feed untrusted
// input through column names, and values rely solely on quote doubling.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "''"
	case time.Time:
		return "'" + val.Format(DateFormat) + "'"
	case *time.Time:
		if val == nil {
			return "''"
		}
		return "'" + val.Format(DateFormat) + "'"
	case int:
		return strconv.Itoa(val)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case bool:
		if val {
			return quoteLiteral("True")
		}
		return quoteLiteral("False")
	case string:
		return quoteLiteral(val)
	default:
		return quoteLiteral(fmt.Sprint(val))
	}
}

func escapeString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func quoteLiteral(s string) string {
	return "'" + escapeString(s) + "'"
}

func quoteColumn(name string) string {
	return "[" + name + "]"
}
