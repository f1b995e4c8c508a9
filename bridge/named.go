package bridge

import (
	"reflect"
	"strings"

	"github.com/iancoleman/strcase"
)

type Named interface {
	SignalName() string
}

// SignalName derives a kebab-case name such as "bridge:set-counter-signal"
// unless the value names itself.
func SignalName(value any) string {
	if named, ok := value.(Named); ok {
		return named.SignalName()
	}

	split := strings.Split(reflect.TypeOf(value).String(), ".")
	segments := make([]string, len(split))
	for i, segment := range split {
		s := strings.TrimLeft(segment, "*")
		segments[i] = strcase.ToKebab(s)
	}

	if len(segments) == 1 {
		return segments[0]
	}

	return segments[0] + ":" + strings.Join(segments[1:], "-")
}
