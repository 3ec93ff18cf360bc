package model

// Category is a fixed asset class such as crypto or stocks.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CategoryAssets is a category together with the caller's assets in it.
type CategoryAssets struct {
	Category
	Assets []Asset `json:"assets"`
}
