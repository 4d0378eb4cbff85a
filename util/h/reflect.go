package h

import (
	"github.com/jinzhu/copier"
)

func CopyAllFields(dst any, src any, ignoreEmpty bool) error {
	return copier.CopyWithOption(dst, src, copier.Option{
		IgnoreEmpty: ignoreEmpty,
		DeepCopy:    true,
	})
}
