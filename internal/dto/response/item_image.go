package response

import "classifieds-market/internal/data/entity"

type ItemImageResponse struct {
	Path  string `json:"path"`
	Index int    `json:"index"`
}

type ImagePathResponse struct {
	Path string `json:"path"`
}

func ItemImagesToResponse(images []*entity.ItemImage) []ItemImageResponse {
	out := make([]ItemImageResponse, 0, len(images))
	for _, img := range images {
		out = append(out, ItemImageResponse{Path: img.Path, Index: img.Index})
	}
	return out
}
