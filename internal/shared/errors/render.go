package errors

import (
	"encoding/json"
	"net/http"
)

// problemRender writes a problem without letting gin override the content type.
type problemRender struct {
	problem ProblemDetail
}

func (p problemRender) Render(w http.ResponseWriter) error {
	p.WriteContentType(w)
	body, err := json.Marshal(p.problem)
	if err != nil {
		return err
	}
	_, err = w.Write(body)
	return err
}

func (p problemRender) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", ContentTypeProblemJSON)
}
