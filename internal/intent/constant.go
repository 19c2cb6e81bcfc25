package intent

// Log prefixes
const (
	LogPrefixClassify           = "internal.intent.Classify"
	LogPrefixExtractSearchQuery = "internal.intent.ExtractSearchQuery"
	LogPrefixExtractCartLines   = "internal.intent.ExtractCartLines"
	LogPrefixExtractTargetCart  = "internal.intent.ExtractTargetCart"
)

// Resolver prompts
const (
	PromptClassifySystem = `You are an intent classifier for a shopping assistant. Analyze the user's latest message in the context of the conversation and determine their intent.

Possible intents:
1. get_products: browse, search, or list products ("what do you have", "show me coffee")
2. get_product: ask about one specific product ("tell me about the green tea", "how much is product 3")
3. create_cart: start a new order with specific products and quantities ("I want 2 coffees and 1 tea")
4. update_cart: change an existing order ("add two more", "remove the tea", "make it 5")
5. fallback: greetings, questions about the service, anything else

Return ONLY a JSON object in this exact format, with no extra text:
{"intent": "get_products|get_product|create_cart|update_cart|fallback", "query": "search keywords or null"}`

	PromptSearchQuery = `Extract the product search keywords from the user's message (product names, categories, attributes). Return ONLY the keywords as plain text, nothing else. If there are no usable keywords, return exactly: null`

	PromptCartLinesSystem = `You extract ordered items from a shopping message. Match product names mentioned by the user against the known products below and return the requested quantities.

%s
Return ONLY a JSON array in this exact format, with no extra text:
[{"product_id": <id>, "quantity": <number>}]

A quantity of 0 means the user wants that item removed. If no items can be identified, return: []`

	PromptKnownItemsHeader = "Known products (id, name, current quantity in cart):\n"

	PromptDesiredStateNote = "Return one entry for EVERY known product above with its final quantity after the user's change. Keep unmentioned products at their current quantity and use 0 for products the user wants removed.\n"
)

// Resolver configuration
const (
	ResolverTemperature = 0.1
)
