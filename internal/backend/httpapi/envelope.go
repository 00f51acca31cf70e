package httpapi

import "todos/internal/service"

// listEnvelope is the body of GET <endpoint>. Todos is nil when the field
// is missing or null, which a success envelope must not be.
type listEnvelope struct {
	Status  string          `json:"status"`
	Results int             `json:"results"`
	Todos   *[]service.Todo `json:"todos"`
}

// singleEnvelope is the body of POST <endpoint>.
type singleEnvelope struct {
	Status string         `json:"status"`
	Data   *singlePayload `json:"data"`
}

type singlePayload struct {
	Todo *service.Todo `json:"todo"`
}

// todo returns the created todo, or false if the payload is missing.
func (e singleEnvelope) todo() (service.Todo, bool) {
	if e.Data == nil || e.Data.Todo == nil {
		return service.Todo{}, false
	}
	return *e.Data.Todo, true
}
