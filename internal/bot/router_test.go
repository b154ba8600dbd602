package bot

import (
	"testing"

	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/model"
	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/telegram"
)

func TestClassifyCallbackAlwaysWins(t *testing.T) {
	ev := &Event{UserID: 1, Callback: &Callback{ID: "x", Data: "view_board:1"}}
	for _, flow := range []Flow{FlowIdle, FlowBoardName, FlowSearchQuery, FlowItemTitle} {
		class, _ := Classify(ev, flow)
		if class != ClassCallback {
			t.Fatalf("flow %v: class = %v, want ClassCallback", flow, class)
		}
	}
}

func TestClassifyResetCommandsCutThroughFlows(t *testing.T) {
	for _, text := range []string{"/start", "/cancel"} {
		ev := &Event{UserID: 1, Text: text}
		class, _ := Classify(ev, FlowBoardIcon)
		if class != ClassCommand {
			t.Fatalf("%q mid-flow: class = %v, want ClassCommand", text, class)
		}
	}
}

func TestClassifyMenuLabelsOnlyWhenIdle(t *testing.T) {
	ev := &Event{UserID: 1, Text: labelSearch}

	class, cmd := Classify(ev, FlowIdle)
	if class != ClassCommand || cmd != CmdSearch {
		t.Fatalf("idle: got (%v, %v)", class, cmd)
	}

	// Mid-flow the label is just text input.
	class, _ = Classify(ev, FlowBoardName)
	if class != ClassFlow {
		t.Fatalf("mid-flow: class = %v, want ClassFlow", class)
	}
}

func TestClassifyIdleContentIsUnsolicited(t *testing.T) {
	ev := &Event{UserID: 1, Text: "hello", Content: &ItemDraft{Type: model.ItemText, Title: "hello", Content: "hello"}}
	class, _ := Classify(ev, FlowIdle)
	if class != ClassContent {
		t.Fatalf("class = %v, want ClassContent", class)
	}
}

func TestClassifyEmptyMessageIgnoredWhenIdle(t *testing.T) {
	class, _ := Classify(&Event{UserID: 1}, FlowIdle)
	if class != ClassIgnore {
		t.Fatalf("class = %v, want ClassIgnore", class)
	}
}

func TestClassifyContentKinds(t *testing.T) {
	cases := []struct {
		name    string
		msg     telegram.Message
		typ     model.ItemType
		title   string
		content string
	}{
		{
			name:    "text",
			msg:     telegram.Message{Text: "Buy milk"},
			typ:     model.ItemText,
			title:   "Buy milk",
			content: "Buy milk",
		},
		{
			name:    "photo picks largest size",
			msg:     telegram.Message{Photo: []telegram.PhotoSize{{FileID: "small"}, {FileID: "big"}}},
			typ:     model.ItemPhoto,
			title:   "Photo",
			content: "big",
		},
		{
			name:    "video title carries duration",
			msg:     telegram.Message{Video: &telegram.Video{FileID: "v1", Duration: 17}},
			typ:     model.ItemVideo,
			title:   "Video (17 sec)",
			content: "v1",
		},
		{
			name:    "voice title carries duration",
			msg:     telegram.Message{Voice: &telegram.Voice{FileID: "a1", Duration: 4}},
			typ:     model.ItemVoice,
			title:   "Voice message (4 sec)",
			content: "a1",
		},
		{
			name:    "document title carries file name",
			msg:     telegram.Message{Document: &telegram.Document{FileID: "d1", FileName: "cv.pdf"}},
			typ:     model.ItemDocument,
			title:   "Document: cv.pdf",
			content: "d1",
		},
		{
			name:    "video note",
			msg:     telegram.Message{VideoNote: &telegram.VideoNote{FileID: "vn1"}},
			typ:     model.ItemVideoNote,
			title:   "Video note",
			content: "vn1",
		},
		{
			name:    "location serializes coordinates",
			msg:     telegram.Message{Location: &telegram.Location{Latitude: 55.75, Longitude: 37.62}},
			typ:     model.ItemLocation,
			title:   "Location",
			content: "55.75,37.62",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			draft := classifyContent(&tc.msg)
			if draft == nil {
				t.Fatal("draft is nil")
			}
			if draft.Type != tc.typ || draft.Title != tc.title || draft.Content != tc.content {
				t.Fatalf("got %+v", draft)
			}
		})
	}
}

func TestClassifyContentLongTextTitleTruncated(t *testing.T) {
	long := ""
	for i := 0; i < 60; i++ {
		long += "x"
	}
	draft := classifyContent(&telegram.Message{Text: long})
	if len([]rune(draft.Title)) != textTitleLimit {
		t.Fatalf("title length = %d, want %d", len([]rune(draft.Title)), textTitleLimit)
	}
	if draft.Content != long {
		t.Fatal("content must not be truncated")
	}
}
