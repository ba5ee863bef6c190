package domain

// Client is a shop customer. Loan is the running unpaid balance across
// sales; it never goes negative, and a client can only be deleted once it
// is back to zero.
type Client struct {
	ID      int64   `json:"id" bson:"id"`
	Name    string  `json:"name" bson:"name"`
	Phone   string  `json:"phone" bson:"phone"`
	Loan    float64 `json:"loan" bson:"loan"`
	Insurer string  `json:"insurer,omitempty" bson:"insurer,omitempty"`
}
