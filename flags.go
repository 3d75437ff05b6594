package genieplot

import (
	"fmt"
	"strings"
)

// StringArrayFlags is a repeatable string flag. Values given on the command
// line replace the default rather than extend it.
type StringArrayFlags struct {
	Array   []string
	beenSet bool
}

func (f *StringArrayFlags) Set(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("empty value")
	}

	if !f.beenSet {
		f.beenSet = true
		f.Array = nil
	}

	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			f.Array = append(f.Array, v)
		}
	}
	return nil
}

func (f *StringArrayFlags) String() string {
	if f == nil {
		return ""
	}
	return strings.Join(f.Array, ",")
}
