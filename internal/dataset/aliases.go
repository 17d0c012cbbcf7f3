package dataset

// reportAliases maps barangay names as they appear in the daily report PDFs
// to the canonical names used by the boundary dataset. Most entries repair
// encoding damage in the source tables (U+2010 hyphens, underscore-mangled
// diacritics); the rest are administrative naming differences. The set is
// closed: names not listed here pass through untouched.
var reportAliases = map[string]string{
	"Bagong Pag‐Asa":       "Bagong Pag-Asa",
	"Don_a Imelda":         "Doña Imelda",
	"Don_a Josefa":         "Doña Josefa",
	"Duyan‐Duyan":          "Duyan-Duyan",
	"Pag‐Ibig Sa Nayon":    "Pag-Ibig Sa Nayon",
	"Pasong Putik":         "Pasong Putik Proper",
	"Phil‐Am":              "Phil-Am",
	"Quirino 2‐A":          "Quirino 2-A",
	"Quirino 2‐B":          "Quirino 2-B",
	"Quirino 2‐C":          "Quirino 2-C",
	"Quirino 3‐A":          "Quirino 3-A",
	"San Isidro Galas":     "San Isidro",
	"San Martin De Porres": "San Martin de Porres",
	"Santo Nin_o":          "Santo Niño",
	"Siena":                "Sienna",
}

// CanonicalName resolves a report-side barangay name to its canonical form.
func CanonicalName(name string) string {
	if canonical, ok := reportAliases[name]; ok {
		return canonical
	}
	return name
}
