package response

import (
	"time"

	"classifieds-market/internal/data/entity"
	"classifieds-market/pkg/utils"
)

// ItemDetailResponse is the full item page.
type ItemDetailResponse struct {
	Seq           int64               `json:"seq"`
	MiddlemanName string              `json:"middleman_name"`
	Name          string              `json:"name"`
	Category      string              `json:"category"`
	Cnt           string              `json:"cnt"`
	Price         string              `json:"price"`
	Description   string              `json:"description"`
	Views         int                 `json:"views"`
	SavedCnt      int                 `json:"saved_cnt"`
	CreatedAt     string              `json:"created_at"`
	Images        []ItemImageResponse `json:"images"`
}

// ItemSummaryResponse is an item card in search, recommend and saved lists.
type ItemSummaryResponse struct {
	Seq       int64   `json:"seq"`
	Name      string  `json:"name"`
	CreatedAt string  `json:"created_at"`
	Price     int     `json:"price"`
	SavedCnt  int     `json:"saved_cnt"`
	ImagePath *string `json:"image_path"`
}

type ItemNameResponse struct {
	Name string `json:"name"`
}

type ItemCreatedResponse struct {
	Seq int64 `json:"seq"`
}

func ItemDetailToResponse(item *entity.ItemDetail, images []*entity.ItemImage, now time.Time) ItemDetailResponse {
	return ItemDetailResponse{
		Seq:           item.Seq,
		MiddlemanName: item.OwnerName,
		Name:          item.Name,
		Category:      item.CategoryName,
		Cnt:           utils.FormatNumber(item.Cnt),
		Price:         utils.FormatNumber(item.Price),
		Description:   item.Description,
		Views:         item.Views,
		SavedCnt:      item.SavedCount,
		CreatedAt:     utils.RelativeTime(item.CreatedAt, now),
		Images:        ItemImagesToResponse(images),
	}
}

func ItemSummariesToResponse(items []*entity.ItemSummary, now time.Time) []ItemSummaryResponse {
	out := make([]ItemSummaryResponse, 0, len(items))
	for _, item := range items {
		out = append(out, ItemSummaryResponse{
			Seq:       item.Seq,
			Name:      item.Name,
			CreatedAt: utils.RelativeTime(item.CreatedAt, now),
			Price:     item.Price,
			SavedCnt:  item.SavedCount,
			ImagePath: item.ImagePath,
		})
	}
	return out
}

func ItemNamesToResponse(names []string) []ItemNameResponse {
	out := make([]ItemNameResponse, 0, len(names))
	for _, name := range names {
		out = append(out, ItemNameResponse{Name: name})
	}
	return out
}
