package elastic

// ProductDoc - структура документа товара для хранения в ES
type ProductDoc struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CategoryID  string `json:"category_id,omitempty"`
	Price       int64  `json:"price"`
	Image       string `json:"image,omitempty"`
}
