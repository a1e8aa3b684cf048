package content

// Climate lookup tables. Keys are the climate class strings carried by the
// location catalog; unknown classes fall back to the temperate row so a new
// catalog entry can never render an empty weather section.

type climateFactors struct {
	waterRisk   string
	description string
	humidity    string
}

var climateTable = map[string]climateFactors{
	"Tropical savanna": {
		waterRisk:   "monsoon flooding and extreme humidity damage",
		description: "heavy wet seasons create persistent moisture problems",
		humidity:    "extreme",
	},
	"Tropical monsoon": {
		waterRisk:   "cyclonic flooding and storm surge damage",
		description: "extreme rainfall events cause catastrophic water intrusion",
		humidity:    "very high",
	},
	"Humid subtropical": {
		waterRisk:   "storm water damage and chronic humidity issues",
		description: "year-round humidity accelerates water damage progression",
		humidity:    "high",
	},
	"Temperate oceanic": {
		waterRisk:   "persistent rain damage and rising damp",
		description: "regular rainfall requires constant moisture management",
		humidity:    "moderate to high",
	},
	"Mediterranean": {
		waterRisk:   "winter storm flooding and summer drought cycles",
		description: "seasonal extremes create varying water damage patterns",
		humidity:    "seasonal",
	},
	"Temperate continental": {
		waterRisk:   "freeze-thaw damage and storm water intrusion",
		description: "temperature variations cause expansion and contraction damage",
		humidity:    "variable",
	},
	"Subtropical highland": {
		waterRisk:   "flash flooding and elevation-related water flow",
		description: "topographical challenges affect water damage patterns",
		humidity:    "moderate",
	},
	"Temperate": {
		waterRisk:   "seasonal flooding and foundation water issues",
		description: "variable conditions require adaptable restoration approaches",
		humidity:    "moderate",
	},
}

func climateFor(climate string) climateFactors {
	if f, ok := climateTable[climate]; ok {
		return f
	}
	return climateTable["Temperate"]
}

type stormPattern struct {
	description string
	severity    string
	season      string
}

var stormByState = map[string]stormPattern{
	"QLD": {"East Coast Lows, tropical cyclones and severe thunderstorms affect the region", "severe", "October to March"},
	"NSW": {"East Coast Lows and severe thunderstorms affect the region", "severe", "October to March"},
	"NT":  {"Tropical cyclones and monsoon storms dominate weather patterns", "catastrophic", "November to April"},
	"WA":  {"Winter frontal systems and tropical cyclones in the north", "moderate to severe", "May to October"},
	"VIC": {"Frontal systems, hail and flash flooding events", "moderate", "September to February"},
	"SA":  {"Winter storm fronts and summer heat events", "moderate", "May to October"},
	"TAS": {"Winter frontal systems and cold outbreaks", "moderate", "June to September"},
	"ACT": {"Severe thunderstorms and hail events", "moderate", "November to February"},
}

func stormFor(state string) stormPattern {
	if p, ok := stormByState[state]; ok {
		return p
	}
	return stormPattern{"Frontal systems and severe weather events", "moderate", "summer months"}
}

// seasonalRisks mirrors the state groupings of the source data: tropical
// states share cyclone exposure, southern states share winter fronts.
func seasonalRisks(state string) []string {
	switch state {
	case "QLD", "NT":
		return []string{"wet season flooding (November-April)", "cyclone-related water damage"}
	case "NSW", "VIC", "ACT":
		return []string{"East Coast Low storm systems", "La Nina flooding events"}
	case "WA", "SA":
		return []string{"winter storm fronts", "coastal storm surge"}
	case "TAS":
		return []string{"winter flooding", "cold weather pipe bursts"}
	default:
		return []string{"seasonal storm systems"}
	}
}
