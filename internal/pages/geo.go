package pages

import "strings"

var regionDepartments = map[string][]string{
	"Auvergne-Rhône-Alpes":       {"01", "03", "07", "15", "26", "38", "42", "43", "63", "69", "73", "74"},
	"Bourgogne-Franche-Comté":    {"21", "25", "39", "58", "70", "71", "89", "90"},
	"Bretagne":                   {"22", "29", "35", "56"},
	"Centre-Val de Loire":        {"18", "28", "36", "37", "41", "45"},
	"Corse":                      {"2A", "2B"},
	"Grand Est":                  {"08", "10", "51", "52", "54", "55", "57", "67", "68", "88"},
	"Hauts-de-France":            {"02", "59", "60", "62", "80"},
	"Île-de-France":              {"75", "77", "78", "91", "92", "93", "94", "95"},
	"Normandie":                  {"14", "27", "50", "61", "76"},
	"Nouvelle-Aquitaine":         {"16", "17", "19", "23", "24", "33", "40", "47", "64", "79", "86", "87"},
	"Occitanie":                  {"09", "11", "12", "30", "31", "32", "34", "46", "48", "65", "66", "81", "82"},
	"Pays de la Loire":           {"44", "49", "53", "72", "85"},
	"Provence-Alpes-Côte d'Azur": {"04", "05", "06", "13", "83", "84"},
}

var departmentRegion = func() map[string]string {
	m := make(map[string]string, 96)
	for region, deps := range regionDepartments {
		for _, d := range deps {
			m[d] = region
		}
	}
	return m
}()

// Department returns the French department code of a postal code.
func Department(postalCode string) string {
	pc := strings.TrimSpace(postalCode)
	if len(pc) < 2 {
		return ""
	}
	switch {
	case strings.HasPrefix(pc, "97") && len(pc) >= 3:
		return pc[:3]
	case strings.HasPrefix(pc, "20"):
		if pc >= "20200" {
			return "2B"
		}
		return "2A"
	}
	return pc[:2]
}

// Region returns the administrative region of a department code.
func Region(department string) string {
	return departmentRegion[department]
}
