package h

import "strings"

func Contains(arr []string, str string) bool {
	for _, v := range arr {
		if strings.TrimSpace(v) == strings.TrimSpace(str) {
			return true
		}
	}
	return false
}

// ContainsAll reports whether every element of subset is present in arr.
// An empty subset is always contained.
func ContainsAll(arr []string, subset []string) bool {
	for _, v := range subset {
		if !Contains(arr, v) {
			return false
		}
	}
	return true
}
