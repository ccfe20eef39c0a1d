package domain

// ReplyKind distinguishes the three outcomes of a dispatch: nothing to say,
// a normal response, or a user-facing error response.
type ReplyKind int

const (
	ReplyNone ReplyKind = iota
	ReplyText
	ReplyError
)

type Reply struct {
	Kind ReplyKind
	Text string
}

func NoReply() Reply {
	return Reply{Kind: ReplyNone}
}

func TextReply(text string) Reply {
	return Reply{Kind: ReplyText, Text: text}
}

func ErrorReply(text string) Reply {
	return Reply{Kind: ReplyError, Text: text}
}
