package bot

import (
	"strconv"
	"strings"
)

// Action is the verb encoded in a callback token.
type Action string

const (
	ActionViewBoard     Action = "view_board"
	ActionManageItem    Action = "manage_item"
	ActionDeleteItem    Action = "delete_item"
	ActionBackToBoards  Action = "back_to_view_list"
	ActionShowItem      Action = "show_item"
	ActionDeleteBoard   Action = "delete_board"
	ActionConfirmDelete Action = "confirm_delete"
	ActionCancelDelete  Action = "cancel_delete"
	ActionMoveItem      Action = "move_item"
	ActionDoNothing     Action = "do_nothing"
)

// Token encodes an action plus entity ids into the "<action>:<id>[:<id2>]"
// callback format.
func Token(action Action, ids ...int64) string {
	var b strings.Builder
	b.WriteString(string(action))
	for _, id := range ids {
		b.WriteByte(':')
		b.WriteString(strconv.FormatInt(id, 10))
	}
	return b.String()
}

// ParseToken splits a callback token back into its action and ids. Tokens
// arrive from the wire, so any malformed input returns ok=false and the
// caller acknowledges it as a no-op.
func ParseToken(data string) (action Action, ids []int64, ok bool) {
	parts := strings.Split(data, ":")
	if parts[0] == "" {
		return "", nil, false
	}
	action = Action(parts[0])
	for _, p := range parts[1:] {
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return "", nil, false
		}
		ids = append(ids, id)
	}
	return action, ids, true
}
