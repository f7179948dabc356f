package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrUnknownIcon = errors.New("unknown category icon")

// IconKind is the finite set of category icons the storefront can render
type IconKind int

const (
	IconUnknown IconKind = iota
	IconActivity
	IconStethoscope
	IconBed
	IconTrash
	IconFlask
)

var iconNames = map[IconKind]string{
	IconActivity:    "activity",
	IconStethoscope: "stethoscope",
	IconBed:         "bed",
	IconTrash:       "trash-2",
	IconFlask:       "flask",
}

// ParseIconKind maps an icon name to its kind. Unknown names are an error, never a default.
func ParseIconKind(name string) (IconKind, error) {
	for kind, n := range iconNames {
		if n == name {
			return kind, nil
		}
	}
	return IconUnknown, fmt.Errorf("%w: %q", ErrUnknownIcon, name)
}

// Valid reports whether k is one of the renderable icons
func (k IconKind) Valid() bool {
	_, ok := iconNames[k]
	return ok
}

func (k IconKind) String() string {
	if name, ok := iconNames[k]; ok {
		return name
	}
	return "unknown"
}

func (k IconKind) MarshalJSON() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownIcon, int(k))
	}
	return json.Marshal(k.String())
}

func (k *IconKind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	kind, err := ParseIconKind(name)
	if err != nil {
		return err
	}
	*k = kind
	return nil
}
