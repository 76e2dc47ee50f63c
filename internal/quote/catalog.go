package quote

import "github.com/Simplici0/calhas/internal/pricing"

// Catalog is the reference data a draft is priced against.
type Catalog struct {
	Materials []pricing.Material
	Services  []pricing.ServiceType
}

// Material returns the material with id, or nil when it is not in the catalog.
func (c Catalog) Material(id int64) *pricing.Material {
	for i := range c.Materials {
		if c.Materials[i].ID == id {
			m := c.Materials[i]
			return &m
		}
	}
	return nil
}

// Service returns the service type with id, or nil when it is not in the catalog.
func (c Catalog) Service(id int64) *pricing.ServiceType {
	for i := range c.Services {
		if c.Services[i].ID == id {
			s := c.Services[i]
			return &s
		}
	}
	return nil
}

func (c Catalog) price(item *Item) pricing.Line {
	line := pricing.Classify(pricing.ItemInput{
		WidthMM:      item.WidthMM,
		ThicknessMM:  item.ThicknessMM,
		LengthMeters: item.LengthMeters,
		Material:     c.Material(item.MaterialID),
		Service:      c.Service(item.ServiceTypeID),
		Difficulty:   item.Difficulty,
	})
	cost := line.Cost()
	item.UnitCost = cost.Unit
	item.TotalCost = cost.Total
	return line
}
