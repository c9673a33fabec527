package wire

import (
	"classifieds-market/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireItem(r chi.Router, itemHandler *adaptor.ItemHandler) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/item", itemHandler.GetItem)
	r.Get("/item/categories", itemHandler.Categories)
	r.Get("/item/search/{value}", itemHandler.Search)
	r.Get("/item/search_detail/{value}", itemHandler.SearchDetail)
	r.Get("/item/recommend", itemHandler.Recommend)

	// ==================== OWNER ROUTES ====================
	// ownership is checked by the service against user_id
	r.Put("/item/insert", itemHandler.Insert)
	r.Post("/item/update", itemHandler.Update)
	r.Delete("/item/delete", itemHandler.Delete)
}

func wireItemImage(r chi.Router, imageHandler *adaptor.ItemImageHandler) {
	r.Get("/item/images/", imageHandler.Open)
	r.Get("/item/images/{item_seq}", imageHandler.ListPaths)
	r.Get("/item/images/{item_seq}/{index}", imageHandler.GetPath)
	r.Put("/item/images/{item_seq}/{index}", imageHandler.Upload)
	r.Delete("/item/images/{item_seq}", imageHandler.Delete)
}
