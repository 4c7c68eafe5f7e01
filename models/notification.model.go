package models

// CodeNotificationRequest is the body of the discount-code notification
// endpoints. RedeemedAt is an ISO timestamp string set by the client on
// redemption notifications.
type CodeNotificationRequest struct {
	Email           string `json:"email"`
	RestaurantName  string `json:"restaurantName"`
	Code            string `json:"code"`
	DiscountPercent int    `json:"discountPercent"`
	People          int    `json:"people"`
	RedeemedAt      string `json:"redeemedAt,omitempty"`
}
