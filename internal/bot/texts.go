package bot

// User-visible strings, kept in one place so copy changes don't touch flow
// logic.
const (
	msgGreeting       = "Hi! I'm your idea archive. Use the buttons below to navigate."
	msgMainMenu       = "Main menu:"
	msgCancelled      = "Action cancelled."
	msgChooseBoard    = "Choose a board to view:"
	msgChooseDelete   = "Choose a board to delete:"
	msgNoBoards       = "You have no boards yet. Create one with '✨ Create board'"
	msgNothingDelete  = "Nothing to delete."
	msgAskBoardName   = "Enter a name for the new board:"
	msgAskBoardIcon   = "Great! Now send one emoji for the icon:"
	msgBoardFailed    = "❌ Failed to create the board."
	msgAskQuery       = "What are we looking for?"
	msgQueryTooShort  = "Enter at least 2 characters to search."
	msgSearchResults  = "Search results:"
	msgSearchNothing  = "Nothing found."
	msgSearchFailed   = "❌ Search failed, try again later."
	msgItemFailed     = "❌ Could not save the item."
	msgSavedUnsorted  = "✅ Saved to 'unsorted'.\nCreate boards with '✨ Create board'"
	msgSavedWhereTo   = "✅ Saved! Where should it go?"
	msgBoardContents  = "Board «%s» contents:"
	msgEmptyBoard     = "This board is empty for now"
	msgChooseAction   = "Choose an action:"
	msgBoardsFailed   = "❌ Could not load boards."
	msgItemsFailed    = "❌ Could not load the board."
	msgItemDeleted    = "✅ Item deleted!"
	msgItemDelFailed  = "❌ Failed to delete."
	msgItemNotFound   = "Error: could not find this item."
	msgShowFailed     = "❌ Could not fetch the item."
	msgBadLocation    = "Unrecognized location: %s"
	msgConfirmDelete  = "Are you sure?"
	msgBoardDeleted   = "✅ Board deleted."
	msgBoardDelFailed = "❌ Failed to delete."
	msgDeleteAborted  = "Deletion cancelled."
	msgItemMoved      = "✅ Done! Item moved."
	msgMoveFailed     = "❌ Could not move the item."
)

const labelBack = "⬅️ Back"
const labelBackToBoards = "⬅️ Back to board list"
const labelShow = "➡️ Show"
const labelDelete = "🗑️ Delete"
const labelConfirmDelete = "🗑️ Yes, delete"
const labelCancel = "Cancel"

// msgAskTitle prompts for an item title, quoting the auto-derived default.
func msgAskTitle(derived string) string {
	return "Got it! Enter a title or send '.' to use: '" + derived + "'"
}
