package domain

// Intent is the classified purpose of a single inbound message.
type Intent string

// Message intents, in matching priority order.
const (
	IntentSmallTalk     Intent = "SMALL_TALK"
	IntentCancel        Intent = "CANCEL"
	IntentCommitRequest Intent = "COMMIT_REQUEST"
	IntentCreateListing Intent = "CREATE_LISTING"
	IntentSearchListing Intent = "SEARCH_LISTING"
	IntentAmbiguous     Intent = "AMBIGUOUS"
	IntentUnknown       Intent = "UNKNOWN"
)
