package bot

// Classification is the Event Router's verdict on an inbound event.
type Classification int

const (
	// ClassIgnore marks events the bot has nothing to do with.
	ClassIgnore Classification = iota
	// ClassCallback is a button press; always wins, regardless of flow.
	ClassCallback
	// ClassCommand is a menu command or a reset command issued while idle
	// (reset commands also fire mid-flow).
	ClassCommand
	// ClassFlow continues the user's active dialogue.
	ClassFlow
	// ClassContent is unsolicited savable content received while idle.
	ClassContent
)

// Command identifies a fixed menu or reset command.
type Command int

const (
	CmdNone Command = iota
	CmdStart
	CmdCancel
	CmdViewBoards
	CmdCreateBoard
	CmdManage
	CmdSearch
)

// Main-menu button labels. These are literal match keys: the reply keyboard
// echoes them back as plain text.
const (
	labelViewBoards  = "🧐 View boards"
	labelCreateBoard = "✨ Create board"
	labelManage      = "✏️ Manage"
	labelSearch      = "🔍 Search"
)

var menuCommands = map[string]Command{
	labelViewBoards:  CmdViewBoards,
	labelCreateBoard: CmdCreateBoard,
	labelManage:      CmdManage,
	labelSearch:      CmdSearch,
}

// Classify routes an event given the user's current flow.
//
// Decision order: callback presses first, then the reset commands /start and
// /cancel (which cut through any active flow), then menu commands when idle,
// then active-flow continuation, and finally unsolicited content.
func Classify(ev *Event, flow Flow) (Classification, Command) {
	if ev.Callback != nil {
		return ClassCallback, CmdNone
	}
	switch ev.Text {
	case "/start":
		return ClassCommand, CmdStart
	case "/cancel":
		return ClassCommand, CmdCancel
	}
	if flow == FlowIdle {
		if cmd, ok := menuCommands[ev.Text]; ok {
			return ClassCommand, cmd
		}
	}
	if flow != FlowIdle {
		return ClassFlow, CmdNone
	}
	if ev.Content != nil {
		return ClassContent, CmdNone
	}
	return ClassIgnore, CmdNone
}
