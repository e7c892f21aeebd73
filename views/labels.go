package views

import "golang.org/x/text/language"

// Labels holds the interface strings of one language.
type Labels struct {
	Home          string
	Articles      string
	Projects      string
	Feed          string
	Latest        string
	AllArticles   string
	NoPosts       string
	Newer         string
	Older         string
	PageOf        string // format: current, total
	Related       string
	NotFound      string
	NotFoundBody  string
	BackHome      string
	Language      string
	RightsReserve string
}

var labels = map[string]Labels{
	"en": {
		Home:          "Home",
		Articles:      "Articles",
		Projects:      "Projects",
		Feed:          "RSS",
		Latest:        "Latest articles",
		AllArticles:   "All articles",
		NoPosts:       "No articles yet.",
		Newer:         "Newer",
		Older:         "Older",
		PageOf:        "Page %d of %d",
		Related:       "Related articles",
		NotFound:      "Page not found",
		NotFoundBody:  "The page you are looking for does not exist.",
		BackHome:      "Back to the home page",
		Language:      "Language",
		RightsReserve: "All rights reserved.",
	},
	"es": {
		Home:          "Inicio",
		Articles:      "Artículos",
		Projects:      "Proyectos",
		Feed:          "RSS",
		Latest:        "Últimos artículos",
		AllArticles:   "Todos los artículos",
		NoPosts:       "Todavía no hay artículos.",
		Newer:         "Más recientes",
		Older:         "Anteriores",
		PageOf:        "Página %d de %d",
		Related:       "Artículos relacionados",
		NotFound:      "Página no encontrada",
		NotFoundBody:  "La página que buscas no existe.",
		BackHome:      "Volver al inicio",
		Language:      "Idioma",
		RightsReserve: "Todos los derechos reservados.",
	},
}

// LabelsFor returns the strings for locale, falling back to English.
func LabelsFor(locale string) Labels {
	base, _ := language.Make(locale).Base()
	if l, ok := labels[base.String()]; ok {
		return l
	}
	return labels["en"]
}
