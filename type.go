package lossrate

type MeanSource string

const (
	MeanFixed   MeanSource = "fixed"
	MeanMemory  MeanSource = "memory"
	MeanGeoTIFF MeanSource = "geotiff"
)

const (
	InitialAbstraction0   = "Initial Abstraction 0% Sand (in)"
	InitialAbstraction100 = "Initial Abstraction 100% Sand (in)"
	InfiltrationRate0     = "Infiltration Rate 0% Sand (in/hr)"
	InfiltrationRate100   = "Infiltration Rate 100% Sand (in/hr)"

	// output names are written verbatim, typos included
	InitialAbstractionOut = "Initial Abstrasction (in)"
	InfiltrationRateOut   = "Infitration Rate (in/hr)"
)

const DefaultVariable = "GLDAS_soilfraction_sand"

// Measurement names the two endpoint columns of one loss parameter and the
// column its interpolated value is written to.
type Measurement struct {
	Sand0   string
	Sand100 string
	Output  string
}

var Measurements = []Measurement{
	{Sand0: InitialAbstraction0, Sand100: InitialAbstraction100, Output: InitialAbstractionOut},
	{Sand0: InfiltrationRate0, Sand100: InfiltrationRate100, Output: InfiltrationRateOut},
}

type Result struct {
	SandFraction float64
	Source       MeanSource
	Cells        int
	Table        *LossRateTable
}
