package models

// RawListing holds one CSV row exactly as read from the source file.
// Cells are untouched strings; Line is the 1-based CSV line for error reports.
type RawListing struct {
	Line       int
	PropertyID string
	Price      string
	Bedrooms   string
	Bathrooms  string
	SquareFeet string
	City       string
	DateListed string
}

// Listing is a cleaned record as persisted in the listings table.
// Price is nil when the source cell was empty.
type Listing struct {
	PropertyID string
	Price      *float64
	Bedrooms   float64
	Bathrooms  float64
	SquareFeet float64
	City       string
	DateListed string
}

// Property is the normalised read model served to callers.
type Property struct {
	PropertyID string `json:"property_id"`
	Price      int64  `json:"price"`
	Bedrooms   int64  `json:"bedrooms"`
	Bathrooms  int64  `json:"bathrooms"`
	SquareFeet int64  `json:"square_feet"`
	City       string `json:"city"`
	DateListed string `json:"date_listed"`
}

// Filter carries the optional query predicates. A nil field is not applied.
type Filter struct {
	PriceMin  *float64 `validate:"omitempty,gte=0"`
	PriceMax  *float64 `validate:"omitempty,gte=0"`
	Bedrooms  *int     `validate:"omitempty,gte=0"`
	Bathrooms *int     `validate:"omitempty,gte=0"`
	City      *string  `validate:"omitempty,min=1,max=100"`
}

// Statistics holds the aggregate metrics computed over the whole store.
type Statistics struct {
	AveragePropertyPrice int64      `json:"average_property_price"`
	MedianPropertyPrice  int64      `json:"median_property_price"`
	AveragePricePerSqft  float64    `json:"average_price_per_sqft"`
	TotalProperties      int        `json:"total_properties"`
	OutliersCount        int        `json:"outliers_count"`
	Outliers             []Property `json:"outliers"`
}
