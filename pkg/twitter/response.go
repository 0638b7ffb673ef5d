package twitter

// actionRequest is the body of an action execution call.
type actionRequest struct {
	EntityID string         `json:"entity_id"`
	Input    map[string]any `json:"input"`
}

// actionResponse decodes the backend's loose response schema. The success
// indicator has shipped under three spellings over time; all are accepted
// here so the rest of the codebase only ever sees the normalized form.
type actionResponse struct {
	Success     *bool          `json:"success"`
	Successful  *bool          `json:"successful"`
	Successfull *bool          `json:"successfull"`
	Error       string         `json:"error"`
	MediaID     string         `json:"media_id"`
	Data        map[string]any `json:"data"`
}

// succeeded reports whether the response carries an affirmative success
// indicator. A response with no recognizable indicator is a failure.
func (r *actionResponse) succeeded() bool {
	for _, v := range []*bool{r.Success, r.Successful, r.Successfull} {
		if v != nil {
			return *v
		}
	}
	return false
}

// errorMessage returns the backend's error message, or a placeholder when
// the response was ambiguous about why it failed.
func (r *actionResponse) errorMessage() string {
	if r.Error != "" {
		return r.Error
	}
	return "unknown or missing success key"
}

// mediaID returns the uploaded media id, checking the top level first and
// then data.media_id.
func (r *actionResponse) mediaID() string {
	if r.MediaID != "" {
		return r.MediaID
	}
	if v, ok := r.Data["media_id"].(string); ok {
		return v
	}
	return ""
}

// tweetID returns the created post's id from data.data.id.
func (r *actionResponse) tweetID() string {
	nested, ok := r.Data["data"].(map[string]any)
	if !ok {
		return ""
	}
	if v, ok := nested["id"].(string); ok {
		return v
	}
	return ""
}
