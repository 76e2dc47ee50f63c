package pricing

import "strings"

// Line is either a CompleteItem or a PartialItem.
type Line interface {
	Cost() Cost
	Complete() bool
	line()
}

// CompleteItem is an item whose inputs are all resolved.
type CompleteItem struct {
	Input    ItemInput
	BaseCost float64
	Factor   float64
	cost     Cost
}

func (c CompleteItem) Cost() Cost { return c.cost }
func (c CompleteItem) Complete() bool { return true }
func (CompleteItem) line() {}

// PartialItem is an item with at least one missing input. Its cost is zero.
type PartialItem struct {
	Input   ItemInput
	Missing []string
}

func (PartialItem) Cost() Cost { return Cost{} }
func (PartialItem) Complete() bool { return false }
func (PartialItem) line() {}

func (p PartialItem) String() string {
	return "missing " + strings.Join(p.Missing, ", ")
}

// Classify resolves in into a CompleteItem or a PartialItem.
func Classify(in ItemInput) Line {
	var missing []string
	// !(v > 0) also catches NaN.
	if !(in.WidthMM > 0) {
		missing = append(missing, "width_mm")
	}
	if !(in.ThicknessMM > 0) {
		missing = append(missing, "thickness_mm")
	}
	if !(in.LengthMeters > 0) {
		missing = append(missing, "length_meters")
	}
	if in.Material == nil {
		missing = append(missing, "material")
	}
	if in.Service == nil {
		missing = append(missing, "service_type")
	}
	if len(missing) > 0 {
		return PartialItem{Input: in, Missing: missing}
	}

	base := BaseCost(in.WidthMM, in.ThicknessMM, *in.Material)
	factor := in.Service.Factor(in.Difficulty)
	unit := base * factor

	return CompleteItem{
		Input:    in,
		BaseCost: base,
		Factor:   factor,
		cost:     Cost{Unit: unit, Total: unit * in.LengthMeters},
	}
}
