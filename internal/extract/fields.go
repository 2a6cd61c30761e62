package extract

import (
	"github.com/pazarglobal/agent/internal/category"
	"github.com/pazarglobal/agent/internal/domain"
)

// Fields runs every extractor over the message and assembles a listing_data
// patch. Price is only committed when the message carries a currency marker
// or is a bare amount; the title falls out of the message once the price and
// location spans are removed.
func Fields(message string) domain.JSONMap {
	patch := domain.JSONMap{}

	price, hasPrice := Price(message)
	if hasPrice && HasCurrencyMarker(message) {
		patch[domain.FieldPrice] = price
	}

	location, hasLocation := Location(message)
	if hasLocation {
		patch[domain.FieldLocation] = location
	}

	if cat, ok := category.NormalizeID(message); ok {
		patch[domain.FieldCategory] = cat
	}

	if title, ok := Title(message, hasPrice, location); ok {
		patch[domain.FieldTitle] = title
	}

	if attrs := Attributes(message); attrs != nil {
		patch[domain.FieldAttributes] = attrs
	}

	if len(patch) == 0 {
		return nil
	}
	return patch
}
