package request

// CreateReviewRequest attaches a review to a completed booking. CustomerID and
// VendorID are optional and, when sent, must match the booking.
type CreateReviewRequest struct {
	BookingID  string  `json:"booking_id" validate:"required,uuid"`
	CustomerID string  `json:"customer_id,omitempty" validate:"omitempty,uuid"`
	VendorID   string  `json:"vendor_id,omitempty" validate:"omitempty,uuid"`
	Rating     int     `json:"rating" validate:"required,gte=1,lte=5"`
	Comment    *string `json:"comment,omitempty" validate:"omitempty,max=2000"`
}

// UpdateReviewRequest lets the reviewing customer revise rating or comment.
type UpdateReviewRequest struct {
	Rating  *int    `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`
	Comment *string `json:"comment,omitempty" validate:"omitempty,max=2000"`
}
