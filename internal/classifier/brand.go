package classifier

import "strings"

// UnknownBrand is returned by InferBrand when no rule matches.
const UnknownBrand = "Autre"

type brandRule struct {
	brand   string
	needles []string
}

// Order matters: the first matching rule wins.
var brandRules = []brandRule{
	{brand: "Apple", needles: []string{"iphone", "ipad"}},
	{brand: "Samsung", needles: []string{"galaxy", "samsung"}},
	{brand: "Google", needles: []string{"pixel"}},
	{brand: "Huawei", needles: []string{"huawei", "p30", "p40", "mate"}},
	{brand: "Xiaomi", needles: []string{"xiaomi", "redmi", "poco"}},
	{brand: "OnePlus", needles: []string{"oneplus"}},
	{brand: "Oppo", needles: []string{"oppo"}},
	{brand: "Honor", needles: []string{"honor"}},
	{brand: "Nokia", needles: []string{"nokia"}},
	{brand: "Sony", needles: []string{"sony", "xperia"}},
}

// InferBrand guesses the manufacturer of a device model name.
func InferBrand(model string) string {
	m := strings.ToLower(model)
	for _, rule := range brandRules {
		for _, n := range rule.needles {
			if strings.Contains(m, n) {
				return rule.brand
			}
		}
	}
	return UnknownBrand
}

// ModelsOfBrand keeps the models whose inferred brand is brand, preserving order.
func ModelsOfBrand(brand string, modelNames []string) []string {
	out := []string{}
	for _, m := range modelNames {
		if strings.EqualFold(InferBrand(m), brand) {
			out = append(out, m)
		}
	}
	return out
}
