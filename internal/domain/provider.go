package domain

import "context"

// DeviceFlow is the port the login orchestration talks to.
// The domain does not know which identity provider sits behind it.
type DeviceFlow interface {
	RequestCode(ctx context.Context) (DeviceCode, error)
	ExchangeToken(ctx context.Context, deviceCode string) (Token, error)
}

// Tone tells a Printer how to present a piece of text.
type Tone int

const (
	TonePlain Tone = iota
	ToneOK
	ToneError
	ToneHeading
	ToneCode
	ToneLink
	ToneSecret
	ToneRule
)

// Printer is the print-line output port. Highlight returns text decorated for
// tone so it can be embedded in a line; implementations without styling
// return text unchanged.
type Printer interface {
	Println(tone Tone, text string)
	Highlight(tone Tone, text string) string
}

// Gate blocks until the user confirms they finished signing in.
type Gate interface {
	Wait(ctx context.Context, prompt string) error
}

// Reporter presents the issued tokens.
type Reporter interface {
	Report(tok Token) error
}
