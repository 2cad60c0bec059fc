// Package labels holds the shared naming conventions of the model's
// output tables: color codes for downstream plotting tools, display
// renames per language, and the grouping of minor renewable sources.
package labels

// FuelColors maps energy carriers to their plot color hex codes.
var FuelColors = map[string]string{
	"biomass":     "#15b01a",
	"uranium":     "#e50000",
	"lignite":     "#7f2b0a",
	"hardcoal":    "#000000",
	"natgas":      "#ffd966",
	"hydrogen":    "#6fa8dc",
	"mixedfuels":  "#a57e52",
	"otherfossil": "#d8dcd6",
	"waste":       "#c04e01",
	"oil":         "#aaa662",
}

// FuelNames maps carriers to display names per language.
var FuelNames = map[string]map[string]string{
	"German": {
		"biomass":     "Biomasse",
		"uranium":     "Kernenergie",
		"lignite":     "Braunkohle",
		"hardcoal":    "Steinkohle",
		"natgas":      "Erdgas",
		"hydrogen":    "Wasserstoff",
		"mixedfuels":  "gemischte Brennstoffe",
		"otherfossil": "sonstige Konventionelle",
		"waste":       "Abfall",
		"oil":         "Erdöl",
	},
	"English": {
		"biomass":     "biomass",
		"uranium":     "uranium",
		"lignite":     "lignite",
		"hardcoal":    "hard coal",
		"natgas":      "natural gas",
		"hydrogen":    "hydrogen",
		"mixedfuels":  "mixed conventionals",
		"otherfossil": "other conventionals",
		"waste":       "waste",
		"oil":         "oil",
	},
}

// RESColors maps renewable source units to plot colors.
var RESColors = map[string]string{
	"DE_source_solarPV":      "#fcb001",
	"DE_source_windonshore":  "#82cafc",
	"DE_source_windoffshore": "#0504aa",
	"DE_source_biomassEEG":   "#15b01a",
	"DE_source_ROR":          "#c79fef",
	"other RES":              "#757575",
	"DE_source_landfillgas":  "#06c2ac",
	"DE_source_geothermal":   "#ff474c",
	"DE_source_minegas":      "#650021",
	"DE_source_larga":        "#ad8150",
}

// RESGroups collapses minor renewable sources into summary labels.
var RESGroups = map[string][]string{
	"other RES": {
		"DE_source_landfillgas",
		"DE_source_geothermal",
		"DE_source_minegas",
		"DE_source_larga",
	},
}

// RESNames maps renewable units to display names per language.
var RESNames = map[string]map[string]string{
	"German": {
		"DE_source_solarPV":      "Solarenergie",
		"DE_source_windoffshore": "Wind offshore",
		"DE_source_windonshore":  "Wind onshore",
		"DE_source_biomassEEG":   "Biomasse",
		"DE_source_ROR":          "Laufwasser",
		"DE_source_landfillgas":  "Deponiegas",
		"DE_source_geothermal":   "Geothermie",
		"DE_source_minegas":      "Grubengas",
		"DE_source_larga":        "Klärgas",
		"other RES":              "andere Erneuerbare",
	},
	"English": {
		"DE_source_solarPV":      "solar PV",
		"DE_source_windoffshore": "wind offshore",
		"DE_source_windonshore":  "wind onshore",
		"DE_source_biomassEEG":   "biomass",
		"DE_source_ROR":          "run of river",
		"DE_source_landfillgas":  "landfillgas",
		"DE_source_geothermal":   "geothermal",
		"DE_source_minegas":      "minegas",
		"DE_source_larga":        "sewage gas",
		"other RES":              "other RES",
	},
}

// StorageColors maps existing storage technologies to plot colors.
var StorageColors = map[string]string{
	"PHS":     "#0c2aac",
	"battery": "#f7e09a",
}

// StorageNewColors maps new-built storage units to lighter shades of the
// same hue so that vintages stay distinguishable in stacked plots.
var StorageNewColors = map[string]string{
	"PHS_new_built":     "#7c90e7",
	"battery_new_built": "#fff5d5",
}

// StorageNames maps storage technologies to display names per language.
// New-built vintages share the display name of their technology.
var StorageNames = map[string]map[string]string{
	"German": {
		"PHS":               "Pumpspeicher",
		"battery":           "Batterien",
		"PHS_new_built":     "Pumpspeicher",
		"battery_new_built": "Batterien",
	},
	"English": {
		"PHS":               "pumped hydro",
		"battery":           "battery",
		"PHS_new_built":     "pumped hydro",
		"battery_new_built": "battery",
	},
}

// Rename returns the display name of a unit for the given language,
// falling back to the raw label when no rename is known. An empty
// language keeps raw labels.
func Rename(unit, language string) string {
	if language == "" {
		return unit
	}
	for _, m := range []map[string]map[string]string{FuelNames, RESNames, StorageNames} {
		if names, ok := m[language]; ok {
			if name, ok := names[unit]; ok {
				return name
			}
		}
	}
	return unit
}

// GroupRES returns the summary label a renewable unit belongs to, or the
// unit itself when it is not part of any group.
func GroupRES(unit string) string {
	for group, members := range RESGroups {
		for _, m := range members {
			if m == unit {
				return group
			}
		}
	}
	return unit
}
