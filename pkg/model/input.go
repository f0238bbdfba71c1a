package model

// Request payloads for the write endpoints. Validation tags are enforced by
// the per-context validators; date fields travel as "2006-01-02" strings and
// are parsed at the handler boundary.

type HotelInput struct {
	ID         string `json:"id" validate:"omitempty,max=64"`
	Name       string `json:"name" validate:"required,min=1,max=200"`
	Address    string `json:"address" validate:"required,min=1,max=300"`
	StarRating int    `json:"star_rating" validate:"required,min=1,max=5"`
}

type RoomInput struct {
	ID         string `json:"id" validate:"omitempty,max=64"`
	Number     int    `json:"number" validate:"required,min=1"`
	Type       string `json:"type" validate:"required,min=1,max=50"`
	PriceCents int64  `json:"price_cents" validate:"min=0"`
	Capacity   int    `json:"capacity" validate:"required,min=1"`
}

type ReservationInput struct {
	HotelID string `json:"hotel_id" validate:"required"`
	RoomID  string `json:"room_id" validate:"required"`
	UserID  string `json:"user_id" validate:"required"`
	Start   string `json:"start_date" validate:"required,datetime=2006-01-02"`
	End     string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

type UserRegistration struct {
	FirstName string `json:"first_name" validate:"required,max=100,person_name"`
	LastName  string `json:"last_name" validate:"required,person_name"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,phone_number"`
	Password  string `json:"password" validate:"required,strong_password"`
}

type Credentials struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type PasswordChange struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,strong_password"`
}
