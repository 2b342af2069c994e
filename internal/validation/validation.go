package validation

import (
	"strings"
	"time"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func PositiveFloat(field string, val float64, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

func RangeFloat(field string, val, minVal, maxVal float64, v Violations) {
	if val < minVal || val > maxVal {
		v[field] = "out_of_range"
	}
}

// OneOf exige une valeur parmi un ensemble fermé (statuts, secteurs...).
func OneOf(field, value string, allowed []string, v Violations) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v[field] = "invalid_value"
}

// RequiredDate exige une date non nulle.
func RequiredDate(field string, val time.Time, v Violations) {
	if val.IsZero() {
		v[field] = "required"
	}
}
