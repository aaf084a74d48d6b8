package response_models

// PointOfInterest is the read projection of one search-index feature,
// localized to the language the caller asked for. It is never written back.
type PointOfInterest struct {
	ID          string  `json:"id"`
	Source      string  `json:"source"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Category    string  `json:"category"`
	Icon        string  `json:"icon"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url,omitempty"`
	URL         string  `json:"url,omitempty"`
}

// PointOfInterestExtended adds the raw editable fields a client needs for a
// subsequent update, plus source-specific augmentation.
type PointOfInterestExtended struct {
	PointOfInterest

	CurrentIcon           string                 `json:"current_icon"`
	TitleByLanguage       map[string]string      `json:"title_by_language"`
	DescriptionByLanguage map[string]string      `json:"description_by_language"`
	Augmentation          map[string]interface{} `json:"augmentation,omitempty"`
}
