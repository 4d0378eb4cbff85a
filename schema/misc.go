package schema

type IdModel struct {
	Id *string `param:"id" json:"id" validate:"required"`
}

type EntityList[T any] struct {
	Data  []T `json:"data"`
	Page  int `json:"page,omitempty"`
	Total int `json:"total,omitempty"`
}

type CountResult struct {
	Count int64 `json:"count"`
}

type PagingInput struct {
	Page  int `query:"page"`
	Count int `query:"count"`
}

type ErrorResponse struct {
	Kind    string      `json:"kind"`
	Message string      `json:"message"`
	Errors  interface{} `json:"errors,omitempty"`
}
