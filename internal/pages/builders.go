package pages

import (
	"fmt"
	"strings"

	"github.com/nitesh/seo_engine/internal/classifier"
	"github.com/nitesh/seo_engine/internal/schemaorg"
	"github.com/nitesh/seo_engine/internal/slug"
	"github.com/nitesh/seo_engine/pkg/models"
)

var (
	commonRepairs = []string{
		"Remplacement d'écran",
		"Remplacement de batterie",
		"Réparation du connecteur de charge",
		"Remplacement de la caméra",
		"Désoxydation",
	}
	modelBenefits = []string{
		"Réparateurs vérifiés",
		"Devis gratuit et sans engagement",
		"Réparation en moins de 2 heures pour les pannes courantes",
		"Garantie sur les pièces et la main d'œuvre",
	}
	defaultServices = []string{
		"Remplacement d'écran",
		"Remplacement de batterie",
		"Diagnostic gratuit",
	}
)

// ModelCityInput holds the facts of a model_city page.
type ModelCityInput struct {
	Model          string
	Brand          string
	City           string
	PostalCode     string
	RepairersCount int
	RepairerIDs    []string
	AverageRating  *float64
	// RatingCount is the number of rated providers behind AverageRating.
	RatingCount int
	// BrandPages restricts the brand link to brands that have a page in the
	// same city. Nil links any known brand.
	BrandPages []string
}

// ModelCity builds the page for one device model in one city.
func ModelCity(in ModelCityInput) *Built {
	brand := in.Brand
	if brand == "" {
		brand = classifier.InferBrand(in.Model)
	}
	n := in.RepairersCount
	title := fmt.Sprintf("Réparation %s à %s | %d %s", in.Model, in.City, n, plural(n, "réparateur", "réparateurs"))
	h1 := fmt.Sprintf("Réparation %s à %s", in.Model, in.City)
	desc := truncate(fmt.Sprintf(
		"Votre %s est en panne ? Comparez %d %s à %s : écran, batterie, connecteur. Devis gratuit et réparation rapide.",
		in.Model, n, plural(n, "réparateur vérifié", "réparateurs vérifiés"), in.City), metaDescriptionMax)

	var brandLink string
	if brand != classifier.UnknownBrand && (in.BrandPages == nil || containsFold(in.BrandPages, brand)) {
		brandLink = slug.BrandCity(brand, in.City)
	}

	return &Built{
		PageType:        models.PageTypeModelCity,
		Slug:            slug.ModelCity(in.Model, in.City),
		Title:           title,
		H1Title:         h1,
		MetaDescription: desc,
		Content: models.ModelCityContent{
			Intro: fmt.Sprintf("Trouvez un réparateur %s de confiance à %s. Nos %d %s interviennent sur toutes les pannes de votre %s %s.",
				in.Model, in.City, n, plural(n, "professionnel", "professionnels"), brand, in.Model),
			Model:          in.Model,
			Brand:          brand,
			City:           in.City,
			PostalCode:     in.PostalCode,
			RepairersCount: n,
			RepairerIDs:    orEmpty(in.RepairerIDs),
			CommonRepairs:  commonRepairs,
			Benefits:       modelBenefits,
		},
		SchemaOrg: schemaorg.LocalBusiness(schemaorg.LocalBusinessInput{
			Name:        h1,
			Description: desc,
			City:        in.City,
			PostalCode:  in.PostalCode,
			Rating:      ratingOf(in.AverageRating, in.RatingCount),
		}),
		InternalLinks:  links(slug.HubCity(in.City), brandLink, SmartphoneHub),
		RepairersCount: n,
		AverageRating:  in.AverageRating,
	}
}

// SymptomInput holds the facts of a symptom page. City is optional.
type SymptomInput struct {
	Symptom         string
	Category        string
	City            string
	Description     string
	Solutions       []string
	RelatedSymptoms []string
	DiagnosticSteps []string
	FAQ             []models.FAQEntry
}

// Symptom builds a symptom page, scoped to a city when one is given.
func Symptom(in SymptomInput) *Built {
	where := ""
	if in.City != "" {
		where = " à " + in.City
	}
	h1 := in.Symptom + where
	title := fmt.Sprintf("%s%s : causes et solutions", in.Symptom, where)
	desc := truncate(fmt.Sprintf("%s%s ? Découvrez les causes, les étapes de diagnostic et les solutions de réparation. %s",
		in.Symptom, where, in.Description), metaDescriptionMax)

	related := make([]string, 0, len(in.RelatedSymptoms)+1)
	for _, r := range in.RelatedSymptoms {
		related = append(related, slug.Symptom(r, in.City))
	}
	if in.City != "" {
		related = append(related, slug.HubCity(in.City))
	}

	faq := in.FAQ
	if faq == nil {
		faq = []models.FAQEntry{}
	}

	return &Built{
		PageType:        models.PageTypeSymptom,
		Slug:            slug.Symptom(in.Symptom, in.City),
		Title:           title,
		H1Title:         h1,
		MetaDescription: desc,
		Content: models.SymptomContent{
			Symptom:         in.Symptom,
			Category:        in.Category,
			City:            in.City,
			Description:     in.Description,
			Solutions:       orEmpty(in.Solutions),
			RelatedSymptoms: orEmpty(in.RelatedSymptoms),
			DiagnosticSteps: orEmpty(in.DiagnosticSteps),
			FAQ:             faq,
		},
		SchemaOrg:     schemaorg.FAQPage(faq),
		InternalLinks: links(related...),
	}
}

// HubCityInput holds the facts of a hub_city page.
type HubCityInput struct {
	City           string
	Department     string
	Region         string
	PostalCodes    []string
	RepairersCount int
	TopRepairerIDs []string
	PopularBrands  []string
	PopularModels  []string
	Services       []string
	NearbyAreas    []string
	AverageRating  *float64
}

// HubCity builds the directory page of one city.
func HubCity(in HubCityInput) *Built {
	n := in.RepairersCount
	title := fmt.Sprintf("Réparateurs de smartphones à %s | %d %s", in.City, n, plural(n, "professionnel", "professionnels"))
	h1 := fmt.Sprintf("Réparateurs de smartphones à %s", in.City)
	brandsText := ""
	if len(in.PopularBrands) > 0 {
		brandsText = " " + strings.Join(in.PopularBrands, ", ") + "."
	}
	desc := truncate(fmt.Sprintf("%d %s à %s pour votre téléphone.%s Comparez les avis et obtenez un devis gratuit.",
		n, plural(n, "réparateur vérifié", "réparateurs vérifiés"), in.City, brandsText), metaDescriptionMax)

	internal := []string{}
	for _, b := range in.PopularBrands {
		internal = append(internal, slug.BrandCity(b, in.City))
	}
	for _, m := range in.PopularModels {
		internal = append(internal, slug.ModelCity(m, in.City))
	}

	return &Built{
		PageType:        models.PageTypeHubCity,
		Slug:            slug.HubCity(in.City),
		Title:           title,
		H1Title:         h1,
		MetaDescription: desc,
		Content: models.HubCityContent{
			City:           in.City,
			Department:     in.Department,
			Region:         in.Region,
			PostalCodes:    orEmpty(in.PostalCodes),
			RepairersCount: n,
			TopRepairerIDs: orEmpty(in.TopRepairerIDs),
			PopularBrands:  orEmpty(in.PopularBrands),
			PopularModels:  orEmpty(in.PopularModels),
			Services:       orEmpty(in.Services),
			NearbyAreas:    orEmpty(in.NearbyAreas),
		},
		SchemaOrg: schemaorg.CollectionPage(schemaorg.CollectionPageInput{
			Name:           h1,
			Description:    desc,
			City:           in.City,
			RepairersCount: n,
		}),
		InternalLinks:  links(internal...),
		RepairersCount: n,
		AverageRating:  in.AverageRating,
	}
}

// BrandCityInput holds the facts of a brand_city page.
type BrandCityInput struct {
	Brand          string
	City           string
	RepairersCount int
	Models         []string
	Services       []string
	AverageRating  *float64
	RatingCount    int
}

// BrandCity builds the page for one manufacturer in one city.
func BrandCity(in BrandCityInput) *Built {
	n := in.RepairersCount
	title := fmt.Sprintf("Réparation %s à %s | Réparateurs spécialisés", in.Brand, in.City)
	h1 := fmt.Sprintf("Réparation %s à %s", in.Brand, in.City)
	desc := truncate(fmt.Sprintf("Smartphone %s en panne à %s ? %d %s pour l'écran, la batterie et plus. Devis gratuit.",
		in.Brand, in.City, n, plural(n, "réparateur spécialisé", "réparateurs spécialisés")), metaDescriptionMax)

	services := in.Services
	if len(services) == 0 {
		services = defaultServices
	}

	internal := []string{slug.HubCity(in.City)}
	for _, m := range in.Models {
		internal = append(internal, slug.ModelCity(m, in.City))
	}

	return &Built{
		PageType:        models.PageTypeBrandCity,
		Slug:            slug.BrandCity(in.Brand, in.City),
		Title:           title,
		H1Title:         h1,
		MetaDescription: desc,
		Content: models.BrandCityContent{
			Brand:          in.Brand,
			City:           in.City,
			RepairersCount: n,
			Models:         orEmpty(in.Models),
			Services:       services,
			WhyChooseUs: []string{
				fmt.Sprintf("Techniciens formés aux appareils %s", in.Brand),
				"Pièces de qualité d'origine ou équivalente",
				fmt.Sprintf("%d %s à %s", n, plural(n, "atelier", "ateliers"), in.City),
				"Devis gratuit avant toute intervention",
			},
		},
		SchemaOrg: schemaorg.Product(schemaorg.ProductInput{
			Name:        h1,
			Description: desc,
			Brand:       in.Brand,
			OfferCount:  n,
			Rating:      ratingOf(in.AverageRating, in.RatingCount),
		}),
		InternalLinks:  links(internal...),
		RepairersCount: n,
		AverageRating:  in.AverageRating,
	}
}
