package catalog

// categorySynonyms maps a normalized category or sub-category slug to the
// keyword fragments that identify matching products. Catalog entries are not
// tagged consistently, so browsing "healthy-cookies" has to catch products
// that only mention "ragi" or "oats" in their name or description.
var categorySynonyms = map[string][]string{
	"cakes":             {"cake", "cakes"},
	"muffins-cupcakes":  {"muffin", "cupcake", "muffins", "cupcakes"},
	"cheese-cupcake":    {"muffin", "cupcake", "muffins", "cupcakes"},
	"cookies":           {"cookie", "cookies"},
	"healthy-cookies":   {"healthy cookie", "oats", "ragi", "wheat", "jowar", "coconut", "almond"},
	"chocolate-cakes":   {"chocolate cake"},
	"vanilla":           {"vanilla"},
	"chocolate":         {"chocolate", "choco"},
	"black-forest":      {"black forest"},
	"chocolate-truffle": {"chocolate truffle", "truffle"},
	"chocolate-mousse":  {"chocolate mousse", "mousse"},
	"pineapple":         {"pineapple"},
	"strawberry":        {"strawberry"},
	"butterscotch":      {"butterscotch"},
	"red-velvet":        {"red velvet"},
	"choco-chip":        {"choco chip", "chocolate chip"},
	"nankhatai":         {"nankhatai", "cookies"},
	"jim-jam":           {"jim jam", "jim-jam"},
	"custard":           {"custard"},
	"jeera":             {"jeera"},
	"thandai":           {"thandai"},
	"oats":              {"oats"},
	"ragi":              {"ragi"},
	"wheat-coin":        {"wheat"},
	"jowar":             {"jowar"},
	"coconut":           {"coconut"},
	"almond":            {"almond"},
	"crunchy-nuts":      {"crunchy nuts"},
}
