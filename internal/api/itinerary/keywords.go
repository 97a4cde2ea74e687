package itinerary

// keywordCategories maps the client's category labels to places-search keywords.
// It is never written after init.
var keywordCategories = map[string]string{
	"Muzee și galerii de artă":                                  "museum",
	"Parcuri":                                                   "park",
	"Grădini botanice":                                          "botanical garden",
	"Grădini zoologice":                                         "zoo",
	"Rezervații naturale":                                       "natural feature",
	"Monumente importante":                                      "tourist attraction",
	"Turnuri de observație":                                     "point of interest",
	"Biserici și catedrale vechi":                               "church",
	"Piețe și târguri locale":                                   "park",
	"Centrul vechi al orașului":                                 "neighborhood",
	"Străzi pietonale cu arhitectură specifică":                 "street address",
	"Plaje":                                                     "beach",
	"Lacuri":                                                    "lake",
	"Drumeții montane":                                          "mountain",
	"Cascade":                                                   "waterfall",
	"Clădiri administrative sau faimoase":                       "point of interest",
	"Primăria orașului":                                         "local government office",
	"Clădiri istorice guvernamentale":                           "government office",
	"Biblioteci naționale":                                      "library",
	"Piețe de flori și piețe alimentare":                        "shopping mall",
	"Piața centrală":                                            "market",
	"Bazaruri alimentare":                                       "grocery or supermarket",
	"Priveliști panoramice și puncte de observație":             "panorama_points",
	"Platforme de observare iluminate":                          "point_of_interest",
	"Turnuri sau faruri cu vedere panoramică":                   "lighthouse",
	"Poduri faimoase":                                           "bridges",
	"Piețe principale cu terase și cafenele":                    "cafe",
	"Străzi pietonale cu artiști de stradă și târguri nocturne": "shopping_mall",
	"Săli de operă":                                             "opera",
	"Teatre de comedie sau drame":                               "movie theater",
	"Concerte de muzică live":                                   "night club",
	"Baruri pe acoperiș cu vedere panoramică":                   "bar",
	"Pub-uri cu muzică live":                                    "bar",
	"Cluburi de noapte faimoase":                                "night_club",
	"Casino-uri moderne":                                        "casino",
	"Baruri cu jocuri de societate":                             "bar",
	"Proiecții de filme în aer liber":                           "movie_theater",
	"Cinematografe nocturne drive-in":                           "movie_theater",
	"Restaurante cu priveliște":                                 "restaurant",
	"Terase deschise pe acoperișuri sau lângă apă":              "restaurant",
}

// MapKeywords translates labels to search keywords in request order.
// Unknown labels are dropped; duplicates in the output are kept.
func MapKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if c, ok := keywordCategories[k]; ok {
			out = append(out, c)
		}
	}
	return out
}

// KnownKeyword reports whether label is in the mapping table.
func KnownKeyword(label string) bool {
	_, ok := keywordCategories[label]
	return ok
}

func droppedKeywords(labels []string) []string {
	var out []string
	for _, l := range labels {
		if !KnownKeyword(l) {
			out = append(out, l)
		}
	}
	return out
}
