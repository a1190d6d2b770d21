package api

import "time"

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type RegisterUserRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// SessionResponse answers both RegisterUser and Login.
type SessionResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ListImagesRequest struct {
	Category    string  `json:"category,omitempty"`
	Search      string  `json:"search,omitempty"`
	OnlyFree    bool    `json:"only_free,omitempty"`
	OnlyPremium bool    `json:"only_premium,omitempty"`
	MinPrice    float64 `json:"min_price,omitempty"`
	MaxPrice    float64 `json:"max_price,omitempty"`
}

type Image struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	ImageURL  string  `json:"image_url"`
	IsPremium bool    `json:"is_premium"`
	Price     float64 `json:"price"`
	Category  string  `json:"category"`
}

type ListImagesResponse struct {
	Images []*Image `json:"images"`
}

type GetImageRequest struct {
	ID int64 `json:"id"`
}

type PurchaseRequest struct {
	ImageIDs []int64 `json:"image_ids"`
	Method   string  `json:"method"`
	UPIID    string  `json:"upi_id,omitempty"`
}

type PurchasedImage struct {
	ID            string    `json:"id"`
	TransactionID string    `json:"transaction_id"`
	ImageID       int64     `json:"image_id"`
	Title         string    `json:"title"`
	Price         float64   `json:"price"`
	PurchasedAt   time.Time `json:"purchased_at"`
}

type Transaction struct {
	ID        string            `json:"id"`
	Method    string            `json:"method"`
	UPIID     string            `json:"upi_id,omitempty"`
	Items     []*PurchasedImage `json:"items"`
	CreatedAt time.Time         `json:"created_at"`
}

type ListPurchasesResponse struct {
	Items []*PurchasedImage `json:"items"`
}

type GetReceiptRequest struct {
	TransactionID string `json:"transaction_id"`
	// IncludeDocument asks for the PDF bytes even when a download URL is
	// available.
	IncludeDocument bool `json:"include_document,omitempty"`
}

type ReceiptResponse struct {
	Filename string  `json:"filename"`
	Total    float64 `json:"total"`
	URL      string  `json:"url,omitempty"`
	Document []byte  `json:"document,omitempty"`
}
