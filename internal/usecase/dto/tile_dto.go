package dto

// TileConfigResponse - XYZ-шаблон тайлов и обязательная атрибуция,
// которую UI обязан отобразить рядом с картой
type TileConfigResponse struct {
	URLTemplate string `json:"url_template"`
	Attribution string `json:"attribution"`
	MinZoom     int    `json:"min_zoom"`
	MaxZoom     int    `json:"max_zoom"`
}

// TileCoverageRequest - запрос набора тайлов, покрывающих прямоугольник
type TileCoverageRequest struct {
	MinLat float64 `json:"min_lat" validate:"latitude"`
	MinLng float64 `json:"min_lng" validate:"longitude"`
	MaxLat float64 `json:"max_lat" validate:"latitude"`
	MaxLng float64 `json:"max_lng" validate:"longitude"`
	Zoom   int     `json:"zoom" validate:"gte=0,lte=22"`
}

// TileRef - один тайл покрытия с готовым URL
type TileRef struct {
	Z   int    `json:"z"`
	X   int    `json:"x"`
	Y   int    `json:"y"`
	URL string `json:"url"`
}

// TileCoverageResponse - набор тайлов покрытия
type TileCoverageResponse struct {
	Tiles       []TileRef `json:"tiles"`
	Attribution string    `json:"attribution"`
}
