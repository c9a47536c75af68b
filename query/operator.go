package query

import "fmt"

// Operator is one member of the closed search operator taxonomy.
// Every operator maps to exactly one evaluator in the eval package.
type Operator byte

const (
	Equals Operator = iota
	NotEquals

	GreaterThan
	GreaterThanOrEqual
	LessThan
	LessThanOrEqual
	Between
	NotBetween

	Contains
	NotContains
	StartsWith
	EndsWith
	IsLike
	IsNotLike

	IsAnyOf
	IsNoneOf
	IsOnAnyOfDates

	IsNull
	IsNotNull
	IsBlank
	IsNotBlank

	Today
	Yesterday
	BetweenDates
	DateInterval

	TopN
	BottomN
	AboveAverage
	BelowAverage

	IsUnique
	IsDuplicate

	GroupedInclusion
	GroupedExclusion
	GroupedCombination

	numOperators
)

// NumOperators sizes the evaluator dispatch table.
const NumOperators = int(numOperators)

func (o Operator) String() string {
	name, known := operatorNames[o]
	if !known {
		panic(fmt.Sprintf("unknown operator %v", byte(o)))
	}
	return name
}

var operatorNames = map[Operator]string{
	Equals:             "Equals",
	NotEquals:          "NotEquals",
	GreaterThan:        "GreaterThan",
	GreaterThanOrEqual: "GreaterThanOrEqual",
	LessThan:           "LessThan",
	LessThanOrEqual:    "LessThanOrEqual",
	Between:            "Between",
	NotBetween:         "NotBetween",
	Contains:           "Contains",
	NotContains:        "NotContains",
	StartsWith:         "StartsWith",
	EndsWith:           "EndsWith",
	IsLike:             "IsLike",
	IsNotLike:          "IsNotLike",
	IsAnyOf:            "IsAnyOf",
	IsNoneOf:           "IsNoneOf",
	IsOnAnyOfDates:     "IsOnAnyOfDates",
	IsNull:             "IsNull",
	IsNotNull:          "IsNotNull",
	IsBlank:            "IsBlank",
	IsNotBlank:         "IsNotBlank",
	Today:              "Today",
	Yesterday:          "Yesterday",
	BetweenDates:       "BetweenDates",
	DateInterval:       "DateInterval",
	TopN:               "TopN",
	BottomN:            "BottomN",
	AboveAverage:       "AboveAverage",
	BelowAverage:       "BelowAverage",
	IsUnique:           "IsUnique",
	IsDuplicate:        "IsDuplicate",
	GroupedInclusion:   "GroupedInclusion",
	GroupedExclusion:   "GroupedExclusion",
	GroupedCombination: "GroupedCombination",
}

// display names used by the breadcrumb token projection
var operatorDisplayNames = map[Operator]string{
	Equals:             "equals",
	NotEquals:          "does not equal",
	GreaterThan:        "is greater than",
	GreaterThanOrEqual: "is greater than or equal to",
	LessThan:           "is less than",
	LessThanOrEqual:    "is less than or equal to",
	Between:            "is between",
	NotBetween:         "is not between",
	Contains:           "contains",
	NotContains:        "does not contain",
	StartsWith:         "starts with",
	EndsWith:           "ends with",
	IsLike:             "is like",
	IsNotLike:          "is not like",
	IsAnyOf:            "is any of",
	IsNoneOf:           "is none of",
	IsOnAnyOfDates:     "is on any of",
	IsNull:             "is null",
	IsNotNull:          "is not null",
	IsBlank:            "is blank",
	IsNotBlank:         "is not blank",
	Today:              "is today",
	Yesterday:          "is yesterday",
	BetweenDates:       "is between dates",
	DateInterval:       "is within interval",
	TopN:               "is in top",
	BottomN:            "is in bottom",
	AboveAverage:       "is above average",
	BelowAverage:       "is below average",
	IsUnique:           "is unique",
	IsDuplicate:        "has duplicates",
	GroupedInclusion:   "includes",
	GroupedExclusion:   "excludes",
	GroupedCombination: "combines",
}

func (o Operator) DisplayName() string {
	name, known := operatorDisplayNames[o]
	if !known {
		panic(fmt.Sprintf("unknown operator %v", byte(o)))
	}
	return name
}

// Known reports whether o is a member of the closed taxonomy.
func (o Operator) Known() bool {
	return o < numOperators
}

// RequiresContext reports whether evaluating o needs the column's
// collection context. Evaluating such operators without one is a
// programming error at the call boundary.
func (o Operator) RequiresContext() bool {
	switch o {
	case TopN, BottomN, AboveAverage, BelowAverage, IsUnique, IsDuplicate:
		return true
	default:
		return false
	}
}

// IsRange reports whether o needs both a primary and secondary operand.
func (o Operator) IsRange() bool {
	switch o {
	case Between, NotBetween, BetweenDates, DateInterval:
		return true
	default:
		return false
	}
}

// IsGrouped reports whether o applies a parent-scoped membership test.
func (o Operator) IsGrouped() bool {
	switch o {
	case GroupedInclusion, GroupedExclusion, GroupedCombination:
		return true
	default:
		return false
	}
}
