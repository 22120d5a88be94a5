// Package domain holds DTOs for review groups http and service contracts
package domain

// UploadResult is returned after a group upload
type UploadResult struct {
	ID string `json:"id" example:"4c2b8f1e-8e0d-4b5e-9b7c-2a9c7f0e5d11"`
}

// Group is a stored upload without its reviews
type Group struct {
	ID          string `json:"id" example:"4c2b8f1e-8e0d-4b5e-9b7c-2a9c7f0e5d11"`
	Name        string `json:"name" example:"shop-reviews.csv"`
	Date        string `json:"date" example:"2025-12-01T10:00:00Z"`
	ReviewCount int    `json:"review_count" example:"120"`
}

// Review is one classified row of a group
type Review struct {
	ID         string  `json:"id" example:"9b1d7c2e-3f4a-4b5c-8d6e-7f8a9b0c1d2e"`
	Index      int     `json:"index" example:"1"`
	Text       string  `json:"text" example:"Fast delivery, great quality"`
	Src        string  `json:"src" example:"marketplace"`
	Label      string  `json:"label" example:"Positive"`
	Confidence float64 `json:"confidence" example:"0.93"`
}

// ReviewsInput limits how many reviews are returned, zero or less means all
type ReviewsInput struct {
	Count int `query:"count" default:"-1" example:"50"`
}

// ByTitleInput filters reviews by the name of their group
type ByTitleInput struct {
	Title string `query:"title" validate:"notblank,max=200" example:"shop"`
	Count int    `query:"count" default:"-1" example:"50"`
}

// Stats describes the label mix of one group
type Stats struct {
	ReviewCount          int                `json:"review_count" example:"120"`
	LabelCounts          map[string]int     `json:"label_counts"`
	PositivePercent      float64            `json:"positive_percent" example:"61.5"`
	PositivePercentBySrc map[string]float64 `json:"positive_percent_by_src"`
}

// Summary describes the label mix over every group
type Summary struct {
	ReviewCount     int     `json:"review_count" example:"1200"`
	PositivePercent float64 `json:"positive_percent" example:"58.25"`
}

// ExportName is the download name of a group export
const ExportName = "reviews.csv"
