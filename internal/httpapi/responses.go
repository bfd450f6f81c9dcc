package httpapi

import (
	"github.com/mmynk/packs/internal/calculator"
	"github.com/mmynk/packs/internal/models"
)

type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type tokensResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type accessTokenResponse struct {
	AccessToken string `json:"access_token"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type itemResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	PackID    int64   `json:"pack_id"`
	CreatedAt int64   `json:"created_at"`
	UpdatedAt int64   `json:"updated_at"`
}

type packResponse struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	OwnerID     *int64         `json:"owner_id"`
	CreatedAt   int64          `json:"created_at"`
	UpdatedAt   int64          `json:"updated_at"`
	Items       []itemResponse `json:"items"`
}

type summaryResponse struct {
	PackID       int64   `json:"pack_id"`
	ItemCount    int     `json:"item_count"`
	TotalPrice   float64 `json:"total_price"`
	AveragePrice float64 `json:"average_price"`
	MinPrice     float64 `json:"min_price"`
	MaxPrice     float64 `json:"max_price"`
}

func newUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username}
}

func newItemResponse(item *models.Item) itemResponse {
	return itemResponse{
		ID:        item.ID,
		Name:      item.Name,
		Price:     item.Price,
		PackID:    item.PackID,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func newPackResponse(p *models.Pack) packResponse {
	items := make([]itemResponse, 0, len(p.Items))
	for i := range p.Items {
		items = append(items, newItemResponse(&p.Items[i]))
	}
	return packResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		OwnerID:     p.OwnerID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Items:       items,
	}
}

func newSummaryResponse(packID int64, s calculator.Summary) summaryResponse {
	return summaryResponse{
		PackID:       packID,
		ItemCount:    s.ItemCount,
		TotalPrice:   s.Total,
		AveragePrice: s.Average,
		MinPrice:     s.Min,
		MaxPrice:     s.Max,
	}
}
