package models

// GiftCategory is a fixed UI-side gift grouping with display metadata. The
// set is hard-coded; the backend has no category taxonomy of its own.
type GiftCategory struct {
	ID    string
	Label string
	Icon  string
}

// Categories is the full set, in display order.
var Categories = []GiftCategory{
	{ID: "diapers", Label: "Diapers", Icon: "👶"},
	{ID: "clothing", Label: "Clothing", Icon: "👕"},
	{ID: "hygiene", Label: "Hygiene", Icon: "🧴"},
	{ID: "feeding", Label: "Feeding", Icon: "🍼"},
	{ID: "room", Label: "Room", Icon: "🛏️"},
	{ID: "outing", Label: "Outing", Icon: "🚗"},
}

// CategoryByID looks up a category by its identifier.
func CategoryByID(id string) (GiftCategory, bool) {
	for _, c := range Categories {
		if c.ID == id {
			return c, true
		}
	}
	return GiftCategory{}, false
}
