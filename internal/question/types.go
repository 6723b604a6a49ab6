package question

import "strings"

// Type identifies how a question is answered. The set is closed; anything the
// catalog cannot map resolves to TypeUnknown, which every engine component
// treats as "fail closed".
type Type int

const (
	TypeUnknown Type = iota
	TypeSingleChoice
	TypeMultiChoice
	TypeTextInput
	TypeFillBlank
	TypeGridArithmetic
	TypeDragGroup
	TypeOrdering
	TypePictureWord
	TypeMeasurement
	TypeShadeGrid
)

var typeNames = map[Type]string{
	TypeUnknown:        "unknown",
	TypeSingleChoice:   "single_choice",
	TypeMultiChoice:    "multi_choice",
	TypeTextInput:      "text_input",
	TypeFillBlank:      "fill_blank",
	TypeGridArithmetic: "grid_arithmetic",
	TypeDragGroup:      "drag_group",
	TypeOrdering:       "ordering",
	TypePictureWord:    "picture_word",
	TypeMeasurement:    "measurement",
	TypeShadeGrid:      "shade_grid",
}

// typeAliases maps the spellings content authors actually use.
var typeAliases = map[string]Type{
	"single_choice":   TypeSingleChoice,
	"mcq":             TypeSingleChoice,
	"multiple_choice": TypeSingleChoice,
	"multi_choice":    TypeMultiChoice,
	"multi_select":    TypeMultiChoice,
	"text_input":      TypeTextInput,
	"text":            TypeTextInput,
	"fill_blank":      TypeFillBlank,
	"fill_in_blank":   TypeFillBlank,
	"grid_arithmetic": TypeGridArithmetic,
	"drag_group":      TypeDragGroup,
	"drag_to_group":   TypeDragGroup,
	"ordering":        TypeOrdering,
	"picture_word":    TypePictureWord,
	"measurement":     TypeMeasurement,
	"shade_grid":      TypeShadeGrid,
}

// ParseType maps a wire name to a Type. Hyphens and case are ignored.
func ParseType(s string) Type {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	if t, ok := typeAliases[key]; ok {
		return t
	}
	return TypeUnknown
}

// String returns the canonical wire name.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return typeNames[TypeUnknown]
}

// IsChoice reports whether answers are option indices.
func (t Type) IsChoice() bool {
	return t == TypeSingleChoice || t == TypeMultiChoice
}

// AllTypes returns every known type (excluding TypeUnknown) in declaration order.
func AllTypes() []Type {
	return []Type{
		TypeSingleChoice, TypeMultiChoice, TypeTextInput, TypeFillBlank,
		TypeGridArithmetic, TypeDragGroup, TypeOrdering, TypePictureWord,
		TypeMeasurement, TypeShadeGrid,
	}
}
