package style

const imageParams = "?w=300&h=400&fit=crop"

func unsplash(id string) string {
	return "https://images.unsplash.com/photo-" + id + imageParams
}

// Suggestion image sets.
var (
	FormalImages   = [2]string{unsplash("1507003211169-0a1dd7228f2d"), unsplash("1566479179817-0da9d6d6f1b7")}
	CasualImages   = [2]string{unsplash("1529139574466-a303027c1d8b"), unsplash("1516975080664-ed2fc6a32937")}
	WeddingImages  = [2]string{unsplash("1594736797933-d0401ba2fe65"), unsplash("1583391733956-6c78276477e1")}
	VacationImages = [2]string{unsplash("1515886657613-9f3515b0c78f"), unsplash("1544957992-20514f595d6f")}
	DefaultImages  = [2]string{unsplash("1529139574466-a303027c1d8b"), unsplash("1507003211169-0a1dd7228f2d")}
)

var imageTable = Table[[2]string]{
	Rules: []Rule[[2]string]{
		{Keywords: []string{"formal", "business", "professional"}, Result: FormalImages},
		{Keywords: []string{"casual", "everyday", "weekend"}, Result: CasualImages},
		{Keywords: []string{"wedding", "party", "special occasion"}, Result: WeddingImages},
		{Keywords: []string{"beach", "summer", "vacation"}, Result: VacationImages},
	},
	Default: DefaultImages,
}

// Images returns two suggestion image URLs for text. The returned slice is
// owned by the caller.
func Images(text string) []string {
	set := imageTable.Lookup(text)
	return []string{set[0], set[1]}
}
