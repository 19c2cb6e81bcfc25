package usecase

// Log prefixes
const (
	LogPrefixProcess  = "internal.chat.ProcessUserMessage"
	LogPrefixRephrase = "internal.chat.rephrase"
)

// Rephrase intentions. Each maps to one instruction in rephraseInstructions
// and tells the model what the attached data represents.
const (
	intentionProductList   = "product_list"
	intentionProductDetail = "product_detail"
	intentionCartCreated   = "cart_created"
	intentionCartUpdated   = "cart_updated"
	intentionShortfall     = "stock_shortfall"
	intentionFallback      = "fallback"
)

// Rephrase temperatures. Structured results are rendered conservatively;
// open-ended small talk gets more freedom.
const (
	rephraseTemperature = 0.2
	fallbackTemperature = 0.7
)

const promptRephraseSystem = `You are a friendly shopping assistant for an online store. Write a short, natural reply to the customer based on the structured result below. Stay factual: never invent products, prices, quantities, or stock. Reply in the customer's language.

Task: %s

Result data (JSON):
%s`

var rephraseInstructions = map[string]string{
	intentionProductList:   "Present these products to the customer as a readable list with names and prices. If the list is empty, say nothing matched and invite them to try other words.",
	intentionProductDetail: "Describe this product to the customer: name, description, price, and whether it is in stock.",
	intentionCartCreated:   "Confirm the order: summarize the items and quantities in the cart.",
	intentionCartUpdated:   "Confirm the change: summarize the cart's items and quantities as they are now.",
	intentionShortfall:     "Some requested quantities exceed available stock. For each item, tell the customer the quantity they asked for and the maximum available. Ask if they want to proceed with the available quantities instead, answering yes or no.",
	intentionFallback:      "The customer's message is not a shop operation. Reply briefly, and mention you can show products, create an order, or change an existing one.",
}
