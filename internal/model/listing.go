package model

// Canonical listing field names as stored in the collection.
const (
	FieldID          = "_id"
	FieldTitle       = "title"
	FieldCategory    = "category"
	FieldPrice       = "price"
	FieldRating      = "rating"
	FieldQuantity    = "quantity"
	FieldDescription = "description"
	FieldPicture     = "picture"
	FieldSellerEmail = "sellerEmail"
)

// Listing is a single toy-marketplace document. The collection is schemaless:
// documents are persisted exactly as the caller supplied them, so the model is
// a map rather than a rigid struct. Caller-supplied fields beyond the
// canonical set survive round trips untouched.
type Listing map[string]interface{}

// ListingPatch carries the seven business fields overwritten by an update.
// sellerEmail and the identifier are never touched by a patch.
type ListingPatch struct {
	Title       string  `json:"title" bson:"title"`
	Category    string  `json:"category" bson:"category"`
	Price       float64 `json:"price" bson:"price"`
	Rating      float64 `json:"rating" bson:"rating"`
	Quantity    float64 `json:"quantity" bson:"quantity"`
	Description string  `json:"description" bson:"description"`
	Picture     string  `json:"picture" bson:"picture"`
}

// numericFields and textFields drive the minimal shape checks on insert
// bodies: fields are optional, but when present they must carry the expected
// JSON kind.
var numericFields = []string{FieldPrice, FieldRating, FieldQuantity}

var textFields = []string{
	FieldTitle, FieldCategory, FieldDescription, FieldPicture, FieldSellerEmail,
}

// NumericFields returns the listing fields that must decode as JSON numbers.
func NumericFields() []string { return numericFields }

// TextFields returns the listing fields that must decode as JSON strings.
func TextFields() []string { return textFields }

// Price extracts the price field when it carries a numeric value. The second
// return is false for absent or non-numeric prices.
func (l Listing) Price() (float64, bool) {
	return asNumber(l[FieldPrice])
}

// SellerEmail extracts the sellerEmail field, empty when absent or non-text.
func (l Listing) SellerEmail() string {
	s, _ := l[FieldSellerEmail].(string)
	return s
}

// asNumber normalizes the numeric types a document field can come back as
// from JSON decoding (float64) or BSON decoding (int32/int64/float64).
func asNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// IsNumber reports whether v is one of the numeric representations a stored
// field can decode to.
func IsNumber(v interface{}) bool {
	_, ok := asNumber(v)
	return ok
}
