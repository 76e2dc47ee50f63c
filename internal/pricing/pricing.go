package pricing

// Difficulty selects which service multiplier applies to an item.
type Difficulty string

const (
	DifficultyNormal Difficulty = "normal"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty maps a stored or submitted level to a Difficulty.
// Unknown and empty values fall back to DifficultyNormal.
func ParseDifficulty(raw string) Difficulty {
	switch Difficulty(raw) {
	case DifficultyMedium:
		return DifficultyMedium
	case DifficultyHard:
		return DifficultyHard
	default:
		return DifficultyNormal
	}
}

// Material is a sheet material offered for fabrication.
type Material struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Density   float64 `json:"density"`
	CostPerKg float64 `json:"cost_per_kg"`
	Active    bool    `json:"active"`
}

// ServiceType carries the labor multipliers for each difficulty level.
type ServiceType struct {
	ID                     int64   `json:"id"`
	Name                   string  `json:"name"`
	Description            string  `json:"description"`
	DifficultyFactorNormal float64 `json:"difficulty_factor_normal"`
	DifficultyFactorMedium float64 `json:"difficulty_factor_medium"`
	DifficultyFactorHard   float64 `json:"difficulty_factor_hard"`
	Active                 bool    `json:"active"`
}

// Factor returns the multiplier for d. Unknown levels use the normal factor.
func (s ServiceType) Factor(d Difficulty) float64 {
	switch d {
	case DifficultyMedium:
		return s.DifficultyFactorMedium
	case DifficultyHard:
		return s.DifficultyFactorHard
	default:
		return s.DifficultyFactorNormal
	}
}

// ItemInput represents the fields that determine the price of one quote line.
// Material and Service are nil while unresolved.
type ItemInput struct {
	WidthMM      float64
	ThicknessMM  float64
	LengthMeters float64
	Material     *Material
	Service      *ServiceType
	Difficulty   Difficulty
}

// Cost is the derived price of a line: per linear meter and for the full length.
type Cost struct {
	Unit  float64 `json:"unit_cost"`
	Total float64 `json:"total_cost"`
}

// BaseCost is the material-only cost per linear meter.
// The /1000 ratio reconciles millimeter dimensions with density and cost units.
func BaseCost(widthMM, thicknessMM float64, m Material) float64 {
	return (widthMM * thicknessMM * m.Density * m.CostPerKg) / 1000
}

// Calculate prices an item. Any missing dimension or unresolved catalog
// reference yields a zero Cost instead of an error.
func Calculate(in ItemInput) Cost {
	return Classify(in).Cost()
}
