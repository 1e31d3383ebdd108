package activation

import "time"

// RedeemRequest body of POST /course/activate
type RedeemRequest struct {
	KeyActive string `json:"key_active"`
}

// RedeemResponse identifies the course a token unlocked
type RedeemResponse struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

// KeyView a token in a course's pool, shown to its owner
type KeyView struct {
	ID        uint      `json:"id"`
	KeyActive string    `json:"key_active"`
	CreatedAt time.Time `json:"created_at"`
}

// PoolResponse the current pool of a course
type PoolResponse struct {
	CourseID uint      `json:"course_id"`
	Count    int       `json:"count"`
	Keys     []KeyView `json:"keys"`
}
