// Package chat turns a guest message into a deterministic reply: an ordered rule table picks
// the intent and the Responder renders it from the catalog. Nothing here blocks or mutates
// shared state, so one Engine serves all requests concurrently.
package chat

import "github.com/imkonsowa/restaurant-concierge/catalog"

type Engine struct {
	classifier *Classifier
	responder  *Responder
}

func NewEngine(c *catalog.Catalog) *Engine {
	return &Engine{
		classifier: NewClassifier(DefaultRules()),
		responder:  NewResponder(c),
	}
}

// Respond classifies a trimmed, non-empty message and renders the reply.
func (e *Engine) Respond(message string) (Intent, Reply) {
	intent := e.classifier.Classify(message)

	return intent, e.responder.Render(intent)
}
