package entity

// Service is one entry of the shop's price list. The price is an integer
// amount of paise; bills snapshot it at selection time, so editing a
// service later never changes bills that were already composed.
type Service struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PricePaise int64  `json:"price_paise"`
	Active     bool   `json:"active"`
}
