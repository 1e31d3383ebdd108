package media

import "time"

// PhotoView answer of a photo upload and entries of GET /user/photo
type PhotoView struct {
	ID        uint      `json:"id"`
	UID       string    `json:"uid"`
	Photo     string    `json:"photo"`
	CreatedAt time.Time `json:"created_at"`
}

type VideoView struct {
	ID    uint   `json:"id"`
	UID   string `json:"uid"`
	Title string `json:"title"`
	Video string `json:"video"`
}
