package apierror

import (
	"net/http"

	json "github.com/goccy/go-json"
)

// problemRender is a gin render.Render that keeps the problem+json content
// type; c.JSON would overwrite it with application/json.
type problemRender struct {
	problem *ProblemDetails
}

func (r problemRender) Render(w http.ResponseWriter) error {
	r.WriteContentType(w)
	data, err := json.Marshal(r.problem)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func (r problemRender) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", ContentTypeProblemJSON)
}
