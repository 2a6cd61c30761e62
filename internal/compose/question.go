package compose

import (
	"strings"

	"github.com/pazarglobal/agent/internal/domain"
	"github.com/pazarglobal/agent/internal/textnorm"
)

var (
	electronicHints = []string{"telefon", "laptop", "bilgisayar", "tv", "tablet"}
	apparelHints    = []string{"moda", "aksesuar", "giyim", "kiyafet", "ayakkabi"}
	homeHints       = []string{"ev", "yasam", "mobilya", "dekorasyon"}
)

const (
	vehicleQuestion = "Açıklamayı daha iyi hazırlamak için isterseniz şu bilgileri paylaşabilirsiniz: " +
		"Yıl, KM, Yakıt, Vites, Tramer/hasar durumu, servis geçmişi. " +
		"İstemiyorsanız atlayabilirsiniz."
	electronicQuestion = "Açıklamayı netleştirmek için isterseniz ürün özelliklerini paylaşabilirsiniz: " +
		"Depolama/kapasite, RAM, garanti durumu. " +
		"İstemiyorsanız atlayabilirsiniz."
	apparelQuestion = "Açıklama için isterseniz beden ve materyal bilgisini paylaşabilirsiniz. İstemiyorsanız atlayabilirsiniz."
	homeQuestion    = "Açıklama için isterseniz ölçü/boyut bilgisini paylaşabilirsiniz. İstemiyorsanız atlayabilirsiniz."
)

// DescriptionQuestion returns the single category-specific follow-up asked
// once all required fields are present but attributes that would improve the
// description are still missing. Empty when there is nothing worth asking.
func DescriptionQuestion(category string, listingData domain.JSONMap) string {
	catNorm := textnorm.Fold(category)
	attrs := listingData.Map(domain.FieldAttributes)

	missingAny := func(keys ...string) bool {
		for _, k := range keys {
			if attrs.Text(k) == "" {
				return true
			}
		}
		return false
	}

	if isVehicleCategory(category) {
		if missingAny(domain.AttrYear, domain.AttrKM, domain.AttrFuel, domain.AttrTransmission, domain.AttrTramer) {
			return vehicleQuestion
		}
	}

	if catNorm == textnorm.Fold("Elektronik") || containsAnyHint(catNorm, electronicHints) {
		if missingAny(domain.AttrStorage, domain.AttrRAM, domain.AttrWarranty) {
			return electronicQuestion
		}
	}

	if containsAnyHint(catNorm, apparelHints) {
		if missingAny(domain.AttrSize, domain.AttrMaterial) {
			return apparelQuestion
		}
	}

	if containsAnyHint(catNorm, homeHints) {
		if attrs.Text(domain.AttrDimensions) == "" {
			return homeQuestion
		}
	}

	return ""
}

func containsAnyHint(catNorm string, hints []string) bool {
	for _, h := range hints {
		if strings.Contains(catNorm, h) {
			return true
		}
	}
	return false
}
