package templates

import (
	"strconv"
	"strings"
)

func prefixedStrings(prefix, suffix string, count int) string {
	var sb strings.Builder
	for i := 0; i < count; i++ {
		sb.WriteString(prefix)
		sb.WriteString(strconv.Itoa(i))
		sb.WriteString(suffix)
		if i < count-1 {
			sb.WriteString(", ")
		}
	}
	return sb.String()
}

func typeParams(count int) string {
	return prefixedStrings("T", "", count)
}

func readableParams(count int) string {
	var sb strings.Builder
	for i := 0; i < count; i++ {
		n := strconv.Itoa(i)
		sb.WriteString("r")
		sb.WriteString(n)
		sb.WriteString(" Readable[T")
		sb.WriteString(n)
		sb.WriteString("]")
		if i < count-1 {
			sb.WriteString(", ")
		}
	}
	return sb.String()
}

func valueCalls(count int) string {
	return prefixedStrings("r", ".Value()", count)
}
