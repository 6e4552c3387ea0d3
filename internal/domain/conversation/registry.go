package conversation

// DefaultTab identifies the conversation used when a client supplies no
// tab_id, and the slot a legacy unkeyed conversation migrates into.
const DefaultTab = "default"

// Key identifies one conversation: a browser session plus a client-supplied
// tab. Within one session each tab maps to at most one conversation.
type Key struct {
	SessionID string
	TabID     string
}

// NewKey builds a key, substituting DefaultTab for an empty tab id.
func NewKey(sessionID, tabID string) Key {
	if tabID == "" {
		tabID = DefaultTab
	}
	return Key{SessionID: sessionID, TabID: tabID}
}

// Registry maps keys to conversations. Implementations hand out copies:
// callers mutate their copy and write it back with Put, so concurrent turns
// on the same key race with last-put-wins rather than sharing memory.
type Registry interface {
	// GetOrCreate returns a copy of the conversation for key, migrating a
	// legacy unkeyed record into the default tab on first access, or
	// creating a fresh start-stage conversation.
	GetOrCreate(key Key) *Conversation

	// Put overwrites the stored conversation for key.
	Put(key Key, c *Conversation)

	// Remove drops the conversation entirely, unlike the in-dialogue reset
	// keyword which reinitializes but keeps the entry.
	Remove(key Key)
}
