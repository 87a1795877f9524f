package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

// Required fields are pointers so validation checks presence rather than
// rejecting zero values such as a price of 0.
type createAdvertisementRequest struct {
	Title       *string `json:"title"       validate:"required"`
	Description *string `json:"description" validate:"required"`
	Price       *int64  `json:"price"       validate:"required"`
	Author      *string `json:"author"      validate:"required"`
}

// updateAdvertisementRequest carries a partial update; absent fields are left
// untouched.
type updateAdvertisementRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Price       *int64  `json:"price,omitempty"`
	Author      *string `json:"author,omitempty"`
}

type credentialsRequest struct {
	Name     *string `json:"name"     validate:"required"`
	Password *string `json:"password" validate:"required"`
}

type updateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty"`
}

type idResponse struct {
	ID int64 `json:"id"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type advertisementResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	Author      string    `json:"author"`
	CreatedAt   time.Time `json:"created_at"`
}

type userResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}
