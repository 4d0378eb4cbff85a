package h

import (
	"strings"
)

func IsNotNil(v interface{}) bool {
	return v != nil
}

func IsStrEmpty(v string) bool {
	return len(strings.TrimSpace(v)) == 0
}

func UnwrapStr(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
