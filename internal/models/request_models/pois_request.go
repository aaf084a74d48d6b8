package request_models

type CreatePoiRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	URL         string  `json:"url"`
	Icon        string  `json:"icon"`
	Latitude    float64 `json:"latitude" binding:"gte=-90,lte=90"`
	Longitude   float64 `json:"longitude" binding:"gte=-180,lte=180"`
}

type UpdatePoiRequest struct {
	ID          string  `json:"id" binding:"required"`
	Source      string  `json:"source"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	URL         string  `json:"url"`
	Icon        string  `json:"icon"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

type BoundingBoxRequest struct {
	NorthEastLat float64 `form:"ne_lat" json:"ne_lat"`
	NorthEastLng float64 `form:"ne_lng" json:"ne_lng"`
	SouthWestLat float64 `form:"sw_lat" json:"sw_lat"`
	SouthWestLng float64 `form:"sw_lng" json:"sw_lng"`
}
