package intent

// Intent is the closed set of purposes a user message can resolve to.
type Intent string

const (
	IntentGetProducts Intent = "get_products"
	IntentGetProduct  Intent = "get_product"
	IntentCreateCart  Intent = "create_cart"
	IntentUpdateCart  Intent = "update_cart"
	IntentFallback    Intent = "fallback"
)

// Resolution is the classifier's structured output: the intent plus an
// optional free-text query used for catalog search.
type Resolution struct {
	Intent Intent
	Query  string
}

// KnownItem is one product previously shown to the user, rendered into the
// line-extraction prompt so the model can match fuzzy names to ids.
type KnownItem struct {
	ProductID int64
	Name      string
	Quantity  int
}
