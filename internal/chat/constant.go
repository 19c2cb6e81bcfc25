package chat

// Fixed replies. These short-circuit the rephraser: they are either error
// degradations or hard protocol outcomes that must stay deterministic.
const (
	ReplyApology = "Sorry, something went wrong on my side. Please try that again."

	ReplyNoCartFound = "I couldn't find the cart you mean. Could you tell me the cart number?"

	ReplyNoItemsDetected = "I couldn't identify any products in your message. Could you tell me which items and how many you want?"
)

// CartCreatedFormat is the exact announcement later turns pattern-match to
// infer which cart a follow-up refers to. Do not reword it.
const CartCreatedFormat = "Done! Your cart number generated is: %d."

// CartUpdatedFormat announces a successful update.
const CartUpdatedFormat = "Your cart number %d is updated."

// LastIntentCreateCartError marks a turn that ended in a stock negotiation.
const LastIntentCreateCartError = "create_cart_error"
