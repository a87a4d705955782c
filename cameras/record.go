package cameras

import (
	"fmt"
	"strings"
)

// Record is a single camera as returned by the speed camera API. It is kept
// as a loose JSON object so that fields unknown to us are forwarded to the
// model untouched.
type Record map[string]any

func (r Record) field(name string) string {
	v, ok := r[name]
	if !ok || v == nil {
		return ""
	}
	switch v := v.(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (r Record) ID() string {
	return r.field("id")
}

func (r Record) Zipcode() string {
	return r.field("zipcode")
}

// CrossStreets returns the two streets of the intersection the camera watches.
func (r Record) CrossStreets() (string, string) {
	return r.field("cross_street_1"), r.field("cross_street_2")
}

func (r Record) String() string {
	first, second := r.CrossStreets()
	streets := strings.Trim(strings.Join([]string{first, second}, " & "), " &")
	if streets == "" {
		return fmt.Sprintf("camera %s", r.ID())
	}
	return fmt.Sprintf("camera %s at %s", r.ID(), streets)
}
