package response

import (
	"testing"
	"time"

	"classifieds-market/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemDetailToResponse(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)
	detail := &entity.ItemDetail{
		Item: entity.Item{
			Seq: 5, Name: "camera", Cnt: 1200, Price: 1500000,
			Description: "mint", Views: 3, CreatedAt: now.Add(-90 * time.Second),
		},
		OwnerName:    "Alice",
		CategoryName: "디지털 기기",
		SavedCount:   2,
	}
	images := []*entity.ItemImage{{ItemSeq: 5, Index: 0, Path: "a.jpg"}}

	got := ItemDetailToResponse(detail, images, now)
	assert.Equal(t, "Alice", got.MiddlemanName)
	assert.Equal(t, "1,200", got.Cnt)
	assert.Equal(t, "1,500,000", got.Price)
	assert.Equal(t, "1분 전", got.CreatedAt)
	require.Len(t, got.Images, 1)
	assert.Equal(t, "a.jpg", got.Images[0].Path)
}

func TestItemSummariesToResponse_Empty(t *testing.T) {
	got := ItemSummariesToResponse(nil, time.Now())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
