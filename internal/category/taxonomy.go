// Package category classifies free marketplace text into the fixed listing
// taxonomy using strong/weak phrase dictionaries.
package category

// Spec holds the vocabulary of one category. Strong phrases are
// category-defining terms; weak phrases are suggestive but ambiguous,
// typically brand names.
type Spec struct {
	Label  string
	Strong []string
	Weak   []string
}

// Option is a selectable category with its display label.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Options is the fixed ordered taxonomy exposed to clients. Earlier entries
// win score ties.
var Options = []Option{
	{ID: "Emlak", Label: "Emlak"},
	{ID: "Otomotiv", Label: "Otomotiv"},
	{ID: "Elektronik", Label: "Elektronik"},
	{ID: "Ev & Yaşam", Label: "Ev & Yaşam"},
	{ID: "Moda & Aksesuar", Label: "Moda & Aksesuar"},
	{ID: "Anne, Bebek & Oyuncak", Label: "Anne, Bebek & Oyuncak"},
	{ID: "Spor & Outdoor", Label: "Spor & Outdoor"},
	{ID: "Hobi, Koleksiyon & Sanat", Label: "Hobi, Koleksiyon & Sanat"},
	{ID: "İş Makineleri & Sanayi", Label: "İş Makineleri & Sanayi"},
	{ID: "Yedek Parça & Aksesuar", Label: "Yedek Parça & Aksesuar"},
	{ID: "Hizmetler", Label: "Ustalar & Hizmetler"},
	{ID: "Eğitim & Kurs", Label: "Özel Ders & Eğitim"},
	{ID: "İş İlanları", Label: "İş İlanları"},
	{ID: "Dijital Ürün & Hizmetler", Label: "Dijital Ürün & Hizmetler"},
	{ID: "Diğer", Label: "Genel / Diğer"},
}

// specs is the scoring vocabulary, evaluated in this order.
var specs = []Spec{
	{
		Label: "Otomotiv",
		Strong: []string{
			"otomotiv", "otomobil", "araba", "arac", "vasita", "kamyonet",
			"motorsiklet", "motosiklet", "scooter", "atv", "pickup", "suv",
			"deniz araci", "jet ski", "tekne",
		},
		Weak: []string{
			"bmw", "mercedes", "mercedes benz", "audi", "volkswagen", "vw",
			"renault", "fiat", "ford", "toyota", "honda", "hyundai", "kia",
			"peugeot", "citroen", "opel", "nissan", "volvo", "skoda", "seat",
			"dacia", "tofas", "togg", "tesla", "porsche", "jeep",
		},
	},
	{
		Label: "Elektronik",
		Strong: []string{
			"elektronik", "telefon", "akilli telefon", "smartphone", "iphone",
			"ipad", "macbook", "laptop", "notebook", "bilgisayar", "pc",
			"masaustu", "monitor", "monitör", "ekran", "ekran karti",
			"playstation", "ps5", "xbox", "nintendo", "kulaklik", "airpods",
			"kamera", "fotograf makinesi", "harddisk", "hard disk",
			"harici disk", "hdd", "ssd", "nvme",
		},
		Weak: []string{
			"apple", "samsung", "xiaomi", "redmi", "huawei", "honor", "oppo",
			"vivo", "oneplus", "realme", "lenovo", "hp", "dell", "asus",
			"acer", "msi", "lg", "sony", "canon", "nikon", "seagate",
			"western digital", "wd", "toshiba",
		},
	},
	{
		Label: "Ev & Yaşam",
		Strong: []string{
			"buzdolabi", "buz dolabi", "camasir makinesi", "bulasik makinesi",
			"kurutma makinesi", "klima", "firin", "ocak", "mikrodalga",
			"derin dondurucu", "mobilya", "koltuk", "kanepe", "masa",
			"sandalye", "yatak", "gardrop", "dolap", "sehpa", "dekorasyon",
			"hali", "halı", "perde",
		},
		Weak: []string{
			"arcelik", "beko", "bosch", "siemens", "vestel", "profilo",
			"regal", "altus", "electrolux", "ariston", "indesit", "lg",
			"samsung",
		},
	},
	{
		Label: "Emlak",
		Strong: []string{
			"emlak", "daire", "ev", "apartman", "apart", "konut", "rezidans",
			"villa", "yazlik", "müstakil", "mustakil", "dubleks", "dupleks",
			"dulex", "triplex", "studyo daire", "stüdyo daire", "arsa",
			"tarla", "dükkan", "dukkan", "ofis",
		},
		Weak: []string{
			"metrekare", "m2", "tapu", "site ici", "site içi", "siteli",
			"havuzlu", "kat", "kiralik", "satilik",
		},
	},
	{
		Label: "Moda & Aksesuar",
		Strong: []string{
			"giyim", "aksesuar", "ayakkabi", "elbise", "mont", "ceket",
			"pantolon", "kazak", "canta", "çanta", "saat", "takı", "taki",
		},
		Weak: []string{"nike", "adidas", "puma", "zara", "hm", "mango"},
	},
	{
		Label: "Spor & Outdoor",
		Strong: []string{
			"spor", "outdoor", "kamp", "çadır", "cadir", "uyku tulumu",
			"bisiklet", "fitness", "dambıl", "dambil",
		},
		Weak: []string{"decathlon"},
	},
	{
		Label: "Hobi, Koleksiyon & Sanat",
		Strong: []string{
			"kitap", "roman", "dergi", "müzik", "muzik", "cd", "plak", "hobi",
			"koleksiyon", "antika", "müzik aleti", "muzik aleti", "gitar",
			"piyano", "keman", "resim", "tablo", "heykel", "sanat",
		},
		Weak: []string{"lego"},
	},
	{
		Label: "Anne, Bebek & Oyuncak",
		Strong: []string{
			"bebek", "anne", "oyuncak", "puset", "bebek arabasi",
			"oto koltugu", "mama",
		},
		Weak: []string{"chicco", "baby"},
	},
	{
		Label: "İş Makineleri & Sanayi",
		Strong: []string{
			"sanayi", "endustri", "endüstri", "is makinasi", "iş makinesi",
			"makine", "forklift", "jenerator", "jeneratör", "insaat",
			"inşaat", "tarim", "tarım",
		},
		Weak: []string{"tesis"},
	},
	{
		Label:  "Eğitim & Kurs",
		Strong: []string{"kurs", "egitim", "eğitim", "özel ders", "ozel ders"},
		Weak:   []string{"sertifika"},
	},
	{
		Label:  "Hizmetler",
		Strong: []string{"hizmet", "tamir", "montaj", "nakliye", "temizlik"},
	},
	{
		Label: "Yedek Parça & Aksesuar",
		Strong: []string{
			"yedek parca", "yedek parça", "parca", "parça", "aksesuar",
			"lastik", "jant", "akü", "aku", "sarj aleti", "şarj aleti",
		},
	},
	{
		Label: "İş İlanları",
		Strong: []string{
			"is ilani", "iş ilanı", "is ariyorum", "iş arıyorum", "ise alım",
			"işe alım", "full time", "tam zamanli", "yarim zamanli",
			"freelance", "cv",
		},
	},
	{
		Label: "Dijital Ürün & Hizmetler",
		Strong: []string{
			"dijital", "abonelik", "hesap", "kod", "lisans", "yazilim",
			"yazılım", "steam", "playstation plus", "ps plus",
		},
	},
	{
		Label:  "Diğer",
		Strong: []string{"diger", "diğer"},
	},
}

// SupportedIDs returns the category ids in taxonomy order.
func SupportedIDs() []string {
	ids := make([]string, len(Options))
	for i, opt := range Options {
		ids[i] = opt.ID
	}
	return ids
}
