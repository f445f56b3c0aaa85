package rates

// Profile describes the column layout of a neighborhood rate table.
type Profile struct {
	Name      string
	NameCol   string
	RegionCol string
	FeeCol    string
}

func (p Profile) requiredCols() []string {
	return []string{p.NameCol, p.FeeCol}
}

// profiles is the ordered list of layouts tried during auto-detection.
var profiles = []Profile{
	{
		Name:      "bairros",
		NameCol:   "bairro",
		RegionCol: "região",
		FeeCol:    "taxa",
	},
	{
		Name:      "zonas",
		NameCol:   "nome",
		RegionCol: "zona",
		FeeCol:    "valor",
	},
}
