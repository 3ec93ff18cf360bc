package request

type CreateAssetRequest struct {
	Name string `json:"name"`
}
