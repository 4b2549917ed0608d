// Package flash defines the one-shot import notification shown after a redirect.
package flash

// Kind classifies a flash message.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Message is a single-use notification written immediately before an import
// redirect and read-and-cleared on the next page render. At most one message
// exists at a time; it expires on its own if never read.
type Message struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}
