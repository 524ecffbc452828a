package view

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/studyplan/studyplan/pkg/tag"
)

type Kind int

const (
	Day Kind = iota
	Week
	Month
)

func (k Kind) String() string {
	switch k {
	case Day:
		return "day"
	case Week:
		return "week"
	case Month:
		return "month"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func ParseKind(value string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "day":
		return Day, nil
	case "week":
		return Week, nil
	case "month":
		return Month, nil
	}
	return Day, fmt.Errorf("unknown view %q", value)
}

// TagResolver maps a task's tag reference to the style it is painted with. It must return a
// usable style for every input, including unknown or missing tags.
type TagResolver func(tagId uuid.NullUUID) tag.Style

// FallbackResolver paints everything with the fallback style.
func FallbackResolver(uuid.NullUUID) tag.Style {
	return tag.FallbackStyle
}
